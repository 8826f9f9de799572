package sevenshifts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

// DailySalesAndLabor returns one row per day of actual and projected
// sales and labor for a location.
func (c *Client) DailySalesAndLabor(
	ctx context.Context, filter domain.DailySalesAndLaborFilter,
) ([]domain.DailySalesAndLabor, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	q, err := encodeQuery(dailySalesQuery{
		LocationID:   filter.LocationID,
		StartDate:    civilDate(filter.StartDate),
		EndDate:      civilDate(filter.EndDate),
		DepartmentID: filter.DepartmentID,
	})
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := c.do(ctx, request{method: http.MethodGet, path: "/v2/reports/daily_sales_and_labor", query: q}, &env); err != nil {
		return nil, err
	}
	return decodeList[domain.DailySalesAndLabor](env.Data)
}

// HoursAndWages returns the hours and wages report. Large reports can
// time out upstream, so callers should narrow by location where possible.
func (c *Client) HoursAndWages(
	ctx context.Context, companyID int64, filter domain.HoursAndWagesFilter,
) (*domain.HoursAndWagesReport, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	q, err := encodeQuery(hoursAndWagesQuery{
		CompanyID:    companyID,
		From:         civilDate(filter.From),
		To:           civilDate(filter.To),
		Punches:      textBool(filter.Punches),
		LocationID:   filter.LocationID,
		DepartmentID: filter.DepartmentID,
		RoleID:       filter.RoleID,
		UserID:       filter.UserID,
	})
	if err != nil {
		return nil, err
	}
	var body json.RawMessage
	if err := c.do(ctx, request{method: http.MethodGet, path: "/v2/reports/hours_and_wages", query: q}, &body); err != nil {
		return nil, err
	}

	// The report is usually returned bare, but tolerate a data envelope.
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && !env.empty() && env.Data[0] == '{' {
		body = env.Data
	}
	report, err := decodeItem[domain.HoursAndWagesReport](body)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// LegacySalesAndLabor calls the undocumented v1 daily_reports endpoint
// that backs the web dashboard. It may change without notice.
func (c *Client) LegacySalesAndLabor(
	ctx context.Context, filter domain.LegacySalesAndLaborFilter,
) (*domain.LegacyDailyReport, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	q, err := encodeQuery(legacySalesQuery{
		From:              civilDate(filter.From),
		To:                civilDate(filter.To),
		LocationID:        filter.LocationID,
		IncludeUnapproved: textBool(filter.IncludeUnapproved),
	})
	if err != nil {
		return nil, err
	}
	return c.legacyReport(ctx, "/v1/daily_reports/sales_and_labor", q)
}

// LegacyDailyLabor calls the undocumented v1 daily_labor endpoint for one
// week. It may change without notice.
func (c *Client) LegacyDailyLabor(
	ctx context.Context, filter domain.LegacyDailyLaborFilter,
) (*domain.LegacyDailyReport, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	q, err := encodeQuery(legacyLaborQuery{
		Week:              civilDate(filter.Week),
		LocationID:        filter.LocationID,
		DepartmentID:      filter.DepartmentID,
		IncludeUnapproved: textBool(filter.IncludeUnapproved),
	})
	if err != nil {
		return nil, err
	}
	return c.legacyReport(ctx, "/v1/daily_labor", q)
}

func (c *Client) legacyReport(ctx context.Context, path string, q url.Values) (*domain.LegacyDailyReport, error) {
	var env envelope
	if err := c.do(ctx, request{method: http.MethodGet, path: path, query: q}, &env); err != nil {
		return nil, err
	}
	if env.empty() {
		return nil, fmt.Errorf("%w: %s returned no data", domain.ErrNotFound, path)
	}
	report, err := decodeItem[domain.LegacyDailyReport](env.Data)
	if err != nil {
		return nil, err
	}
	return &report, nil
}
