package sevenshifts

import (
	"context"
	"net/url"
	"strconv"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

// ListShifts returns every shift matching filter.
func (c *Client) ListShifts(ctx context.Context, companyID int64, filter domain.ShiftFilter) ([]domain.Shift, error) {
	var all []domain.Shift
	err := c.WalkShifts(ctx, companyID, filter, func(page []domain.Shift) error {
		all = append(all, page...)
		return nil
	})
	return all, err
}

// WalkShifts calls fn with each page of shifts matching filter, so large
// ranges never have to be held in memory at once.
func (c *Client) WalkShifts(
	ctx context.Context, companyID int64, filter domain.ShiftFilter, fn func([]domain.Shift) error,
) error {
	if err := filter.Validate(); err != nil {
		return err
	}
	q, err := encodeQuery(newShiftQuery(filter))
	if err != nil {
		return err
	}
	return walkPages(ctx, c, companyPath(companyID, "shifts"), q, false, fn)
}

// GetShift returns one shift. Deleted shifts are only returned when
// includeDeleted is set.
func (c *Client) GetShift(ctx context.Context, companyID, id int64, includeDeleted bool) (*domain.Shift, error) {
	var q url.Values
	if includeDeleted {
		q = url.Values{"include_deleted": {strconv.FormatBool(true)}}
	}
	return getOne[domain.Shift](ctx, c, "Shift", idString(id),
		companyPath(companyID, "shifts", idString(id)), q, false)
}

// ListTimePunches returns every time punch matching filter.
func (c *Client) ListTimePunches(
	ctx context.Context, companyID int64, filter domain.TimePunchFilter,
) ([]domain.TimePunch, error) {
	var all []domain.TimePunch
	err := c.WalkTimePunches(ctx, companyID, filter, func(page []domain.TimePunch) error {
		all = append(all, page...)
		return nil
	})
	return all, err
}

// WalkTimePunches calls fn with each page of time punches matching filter.
func (c *Client) WalkTimePunches(
	ctx context.Context, companyID int64, filter domain.TimePunchFilter, fn func([]domain.TimePunch) error,
) error {
	if err := filter.Validate(); err != nil {
		return err
	}
	q, err := encodeQuery(newPunchQuery(filter))
	if err != nil {
		return err
	}
	return walkPages(ctx, c, companyPath(companyID, "time_punches"), q, false, fn)
}

// GetTimePunch returns one time punch.
func (c *Client) GetTimePunch(ctx context.Context, companyID, id int64) (*domain.TimePunch, error) {
	return getOne[domain.TimePunch](ctx, c, "TimePunch", idString(id),
		companyPath(companyID, "time_punches", idString(id)), nil, false)
}
