package sevenshifts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

// ListUsers returns the users matching filter.
func (c *Client) ListUsers(ctx context.Context, companyID int64, filter domain.UserFilter) ([]domain.User, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	q, err := encodeQuery(userQuery{
		Status:        filter.Status,
		ModifiedSince: civilDate(filter.ModifiedSince),
		LocationID:    filter.LocationID,
		DepartmentID:  filter.DepartmentID,
		RoleID:        filter.RoleID,
		Name:          filter.Name,
		Limit:         limitOr(filter.Limit, userPageSize),
	})
	if err != nil {
		return nil, err
	}
	return listAll[domain.User](ctx, c, companyPath(companyID, "users"), q, false)
}

// GetUser returns one user.
func (c *Client) GetUser(ctx context.Context, companyID, id int64) (*domain.User, error) {
	return getOne[domain.User](ctx, c, "User", idString(id),
		companyPath(companyID, "users", idString(id)), nil, false)
}

// ListUserWages returns a user's current and upcoming wages.
func (c *Client) ListUserWages(ctx context.Context, companyID, userID int64) (*domain.UserWages, error) {
	var env envelope
	path := companyPath(companyID, "users", idString(userID), "wages")
	if err := c.do(ctx, request{method: http.MethodGet, path: path}, &env); err != nil {
		if IsNotFound(err) {
			return nil, &NotFoundError{Entity: "UserWages", ID: idString(userID)}
		}
		return nil, err
	}

	var raw struct {
		Current  json.RawMessage `json:"current_wages"`
		Upcoming json.RawMessage `json:"upcoming_wages"`
	}
	if env.empty() {
		return nil, &NotFoundError{Entity: "UserWages", ID: idString(userID)}
	}
	if err := json.Unmarshal(env.Data, &raw); err != nil {
		return nil, fmt.Errorf("decoding wages: %w", err)
	}

	current, err := decodeList[domain.Wage](raw.Current)
	if err != nil {
		return nil, err
	}
	upcoming, err := decodeList[domain.Wage](raw.Upcoming)
	if err != nil {
		return nil, err
	}
	wages := &domain.UserWages{CurrentWages: current, UpcomingWages: upcoming}
	for _, list := range [][]domain.Wage{wages.CurrentWages, wages.UpcomingWages} {
		for i := range list {
			if list[i].UserID == 0 {
				list[i].UserID = userID
			}
		}
	}
	return wages, nil
}

// ListUserAssignments returns the locations, departments and roles a
// user is assigned to.
func (c *Client) ListUserAssignments(ctx context.Context, companyID, userID int64) (*domain.Assignments, error) {
	path := companyPath(companyID, "users", idString(userID), "assignments")
	return getOne[domain.Assignments](ctx, c, "Assignments", idString(userID), path, nil, false)
}
