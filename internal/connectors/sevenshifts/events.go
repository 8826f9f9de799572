package sevenshifts

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

// ListEvents returns the events between the filter's start and end dates.
func (c *Client) ListEvents(ctx context.Context, companyID int64, filter domain.EventFilter) ([]domain.Event, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	q, err := encodeQuery(eventQuery{
		StartDate:  civilDate(filter.StartDate),
		EndDate:    civilDate(filter.EndDate),
		LocationID: filter.LocationID,
	})
	if err != nil {
		return nil, err
	}
	return listAll[domain.Event](ctx, c, companyPath(companyID, "events"), q, false)
}

// GetEvent returns one event.
func (c *Client) GetEvent(ctx context.Context, companyID, id int64) (*domain.Event, error) {
	return getOne[domain.Event](ctx, c, "Event", idString(id),
		companyPath(companyID, "events", idString(id)), nil, false)
}

// CreateEvent creates an event and returns it as stored.
func (c *Client) CreateEvent(ctx context.Context, companyID int64, input domain.EventInput) (*domain.Event, error) {
	if input.Title == "" || input.StartDate == "" {
		return nil, fmt.Errorf("%w: event title and start_date are required", domain.ErrInvalidInput)
	}
	return send[domain.Event](ctx, c, http.MethodPost, companyPath(companyID, "events"), nil, input)
}

// UpdateEvent changes an event. For recurring events target selects which
// occurrences change.
func (c *Client) UpdateEvent(
	ctx context.Context, companyID, id int64, input domain.EventInput, target domain.RecurrenceTarget,
) (*domain.Event, error) {
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: unknown recurrence target %q", domain.ErrInvalidInput, target)
	}
	var q url.Values
	if target != "" {
		q = url.Values{"recurrence_target": {string(target)}}
	}
	return send[domain.Event](ctx, c, http.MethodPatch, companyPath(companyID, "events", idString(id)), q, input)
}

// DeleteEvent removes an event. For recurring events target and startDate
// select the occurrences removed.
func (c *Client) DeleteEvent(
	ctx context.Context, companyID, id int64, target domain.RecurrenceTarget, startDate domain.Date,
) error {
	if !target.IsValid() {
		return fmt.Errorf("%w: unknown recurrence target %q", domain.ErrInvalidInput, target)
	}
	q := url.Values{}
	if target != "" {
		q.Set("recurrence_target", string(target))
	}
	if !startDate.IsZero() {
		q.Set("start_date", startDate.String())
	}
	err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   companyPath(companyID, "events", idString(id)),
		query:  q,
	}, nil)
	if IsNotFound(err) {
		return &NotFoundError{Entity: "Event", ID: idString(id)}
	}
	return err
}
