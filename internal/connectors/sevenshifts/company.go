package sevenshifts

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

// Whoami returns the identity the access token belongs to.
func (c *Client) Whoami(ctx context.Context) (*domain.Identity, error) {
	var env envelope
	if err := c.do(ctx, request{method: http.MethodGet, path: "/v2/whoami"}, &env); err != nil {
		return nil, err
	}
	if env.empty() {
		return nil, fmt.Errorf("%w: whoami returned no identity", domain.ErrNotFound)
	}
	id, err := decodeItem[domain.Identity](env.Data)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ListCompanies returns every company the token can see.
func (c *Client) ListCompanies(ctx context.Context, opts domain.ListOptions) ([]domain.Company, error) {
	q, err := encodeQuery(pageQuery{Limit: opts.Limit})
	if err != nil {
		return nil, err
	}
	return listAll[domain.Company](ctx, c, "/v2/companies", q, true)
}

// GetCompany returns one company.
func (c *Client) GetCompany(ctx context.Context, id int64) (*domain.Company, error) {
	return getOne[domain.Company](ctx, c, "Company", idString(id), "/v2/companies/"+idString(id), nil, true)
}

// ListLocations returns the locations of a company matching filter.
func (c *Client) ListLocations(
	ctx context.Context, companyID int64, filter domain.LocationFilter,
) ([]domain.Location, error) {
	q, err := encodeQuery(locationQuery{
		ModifiedSince: civilDate(filter.ModifiedSince),
		Limit:         limitOr(filter.Limit, locationPageSize),
	})
	if err != nil {
		return nil, err
	}
	return listAll[domain.Location](ctx, c, companyPath(companyID, "locations"), q, true)
}

// GetLocation returns one location.
func (c *Client) GetLocation(ctx context.Context, companyID, id int64) (*domain.Location, error) {
	return getOne[domain.Location](ctx, c, "Location", idString(id),
		companyPath(companyID, "locations", idString(id)), nil, true)
}

// ListDepartments returns the departments matching filter.
func (c *Client) ListDepartments(
	ctx context.Context, companyID int64, filter domain.DepartmentFilter,
) ([]domain.Department, error) {
	q, err := encodeQuery(departmentQuery{
		LocationID:    filter.LocationID,
		ModifiedSince: civilDate(filter.ModifiedSince),
		Limit:         limitOr(filter.Limit, departmentPageSize),
	})
	if err != nil {
		return nil, err
	}
	return listAll[domain.Department](ctx, c, companyPath(companyID, "departments"), q, true)
}

// GetDepartment returns one department.
func (c *Client) GetDepartment(ctx context.Context, companyID, id int64) (*domain.Department, error) {
	return getOne[domain.Department](ctx, c, "Department", idString(id),
		companyPath(companyID, "departments", idString(id)), nil, true)
}

// ListRoles returns the roles matching filter.
func (c *Client) ListRoles(ctx context.Context, companyID int64, filter domain.RoleFilter) ([]domain.Role, error) {
	q, err := encodeQuery(roleQuery{
		LocationID:    filter.LocationID,
		DepartmentID:  filter.DepartmentID,
		ModifiedSince: civilDate(filter.ModifiedSince),
		Limit:         limitOr(filter.Limit, rolePageSize),
	})
	if err != nil {
		return nil, err
	}
	return listAll[domain.Role](ctx, c, companyPath(companyID, "roles"), q, true)
}

// GetRole returns one role.
func (c *Client) GetRole(ctx context.Context, companyID, id int64) (*domain.Role, error) {
	return getOne[domain.Role](ctx, c, "Role", idString(id),
		companyPath(companyID, "roles", idString(id)), nil, true)
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
