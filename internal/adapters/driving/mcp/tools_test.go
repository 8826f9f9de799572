package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

func newTestServer(t *testing.T, workforce *mockWorkforceService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Workforce: workforce, Location: time.UTC})
	require.NoError(t, err)
	return server
}

func ts(s string) domain.Timestamp {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return domain.NewTimestamp(t)
}

func TestServer_handleWhoami(t *testing.T) {
	ctx := context.Background()

	t.Run("returns identity", func(t *testing.T) {
		server := newTestServer(t, &mockWorkforceService{
			identity: &domain.Identity{IdentityID: 9, UserID: 42, CompanyID: 7, FirstName: "Ada", Email: "ada@example.com"},
		})

		_, output, err := server.handleWhoami(ctx, nil, WhoamiInput{})
		require.NoError(t, err)
		assert.Equal(t, int64(9), output.IdentityID)
		assert.Equal(t, int64(42), output.UserID)
		assert.Equal(t, int64(7), output.CompanyID)
		assert.Equal(t, "ada@example.com", output.Email)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		server := newTestServer(t, &mockWorkforceService{err: errors.New("unauthorized")})

		_, _, err := server.handleWhoami(ctx, nil, WhoamiInput{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unauthorized")
	})
}

func TestServer_handleListCompanies(t *testing.T) {
	ctx := context.Background()

	t.Run("returns companies", func(t *testing.T) {
		server := newTestServer(t, &mockWorkforceService{
			companies: []domain.Company{{ID: 1, Name: "Diner", Country: "CA", Status: "active"}},
		})

		_, output, err := server.handleListCompanies(ctx, nil, ListCompaniesInput{})
		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		assert.False(t, output.Truncated)
		assert.Equal(t, CompanyOutput{ID: 1, Name: "Diner", Country: "CA", Status: "active"}, output.Companies[0])
	})

	t.Run("truncates to max results", func(t *testing.T) {
		server := newTestServer(t, &mockWorkforceService{
			companies: []domain.Company{{ID: 1}, {ID: 2}, {ID: 3}},
		})

		_, output, err := server.handleListCompanies(ctx, nil, ListCompaniesInput{MaxResults: 2})
		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		assert.True(t, output.Truncated)
	})
}

func TestServer_handleListLocations(t *testing.T) {
	ctx := context.Background()

	t.Run("uses default company", func(t *testing.T) {
		mock := &mockWorkforceService{
			defaultID: 7,
			locations: []domain.Location{{ID: 3, Name: "Downtown", Timezone: "America/Regina"}},
		}
		server := newTestServer(t, mock)

		_, output, err := server.handleListLocations(ctx, nil, ListInput{})
		require.NoError(t, err)
		assert.Equal(t, int64(7), mock.gotCompanyID)
		assert.Equal(t, int64(7), output.CompanyID)
		require.Len(t, output.Locations, 1)
		assert.Equal(t, "America/Regina", output.Locations[0].Timezone)
	})

	t.Run("uses explicit company", func(t *testing.T) {
		mock := &mockWorkforceService{defaultID: 7}
		server := newTestServer(t, mock)

		_, output, err := server.handleListLocations(ctx, nil, ListInput{CompanyInput: CompanyInput{CompanyID: 11}})
		require.NoError(t, err)
		assert.Equal(t, int64(11), mock.gotCompanyID)
		assert.Equal(t, 0, output.Count)
		assert.NotNil(t, output.Locations)
	})
}

func TestServer_handleListUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("passes filter and formats hire date", func(t *testing.T) {
		mock := &mockWorkforceService{
			defaultID: 7,
			users: []domain.User{{
				ID: 5, FirstName: "Grace", LastName: "Hopper", Active: true,
				HireDate: domain.MustParseDate("2023-04-01"),
			}},
		}
		server := newTestServer(t, mock)

		input := ListUsersInput{Status: "active", LocationID: 3, Name: "grace"}
		_, output, err := server.handleListUsers(ctx, nil, input)
		require.NoError(t, err)
		assert.Equal(t, "active", mock.gotUserFilter.Status)
		assert.Equal(t, int64(3), mock.gotUserFilter.LocationID)
		assert.Equal(t, "grace", mock.gotUserFilter.Name)
		require.Len(t, output.Users, 1)
		assert.Equal(t, "2023-04-01", output.Users[0].HireDate)
		assert.True(t, output.Users[0].Active)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		server := newTestServer(t, &mockWorkforceService{})

		_, _, err := server.handleListUsers(ctx, nil, ListUsersInput{Status: "retired"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleListShifts(t *testing.T) {
	ctx := context.Background()

	t.Run("expands bare dates to whole days", func(t *testing.T) {
		mock := &mockWorkforceService{
			defaultID: 7,
			shifts: []domain.Shift{{
				ID: 100, UserID: 5, Start: ts("2024-03-01T09:00:00Z"), End: ts("2024-03-01T17:30:00Z"),
			}},
		}
		server := newTestServer(t, mock)

		input := ListShiftsInput{Start: "2024-03-01", End: "2024-03-02", UserID: 5}
		_, output, err := server.handleListShifts(ctx, nil, input)
		require.NoError(t, err)

		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), mock.gotShiftFilter.StartGTE)
		assert.Equal(t, time.Date(2024, 3, 2, 23, 59, 59, 0, time.UTC), mock.gotShiftFilter.StartLTE)
		assert.Equal(t, int64(5), mock.gotShiftFilter.UserID)
		require.NotNil(t, mock.gotShiftFilter.Deleted)
		assert.False(t, *mock.gotShiftFilter.Deleted)

		require.Len(t, output.Shifts, 1)
		assert.Equal(t, "2024-03-01T09:00:00Z", output.Shifts[0].Start)
		assert.InDelta(t, 8.5, output.Shifts[0].Hours, 0.001)
	})

	t.Run("accepts RFC 3339 times", func(t *testing.T) {
		mock := &mockWorkforceService{defaultID: 7}
		server := newTestServer(t, mock)

		input := ListShiftsInput{Start: "2024-03-01T12:00:00Z", End: "2024-03-01T18:00:00Z"}
		_, _, err := server.handleListShifts(ctx, nil, input)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC), mock.gotShiftFilter.StartLTE.UTC())
	})

	t.Run("requires a range", func(t *testing.T) {
		server := newTestServer(t, &mockWorkforceService{})

		_, _, err := server.handleListShifts(ctx, nil, ListShiftsInput{Start: "2024-03-01"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects reversed range", func(t *testing.T) {
		server := newTestServer(t, &mockWorkforceService{})

		_, _, err := server.handleListShifts(ctx, nil, ListShiftsInput{Start: "2024-03-05", End: "2024-03-01"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		server := newTestServer(t, &mockWorkforceService{})

		_, _, err := server.handleListShifts(ctx, nil, ListShiftsInput{Start: "March 1", End: "2024-03-01"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleListTimePunches(t *testing.T) {
	ctx := context.Background()

	t.Run("passes approved filter", func(t *testing.T) {
		mock := &mockWorkforceService{
			defaultID: 7,
			punches: []domain.TimePunch{
				{ID: 1, ClockedIn: ts("2024-03-01T09:00:00Z"), ClockedOut: ts("2024-03-01T13:00:00Z"), Tips: 1250},
				{ID: 2, ClockedIn: ts("2024-03-01T14:00:00Z")},
			},
		}
		server := newTestServer(t, mock)

		input := ListTimePunchesInput{Start: "2024-03-01", End: "2024-03-01", Approved: domain.Bool(true)}
		_, output, err := server.handleListTimePunches(ctx, nil, input)
		require.NoError(t, err)

		require.NotNil(t, mock.gotPunchFilter.Approved)
		assert.True(t, *mock.gotPunchFilter.Approved)
		require.Len(t, output.Punches, 2)
		assert.InDelta(t, 4.0, output.Punches[0].Hours, 0.001)
		assert.Equal(t, int64(1250), output.Punches[0].TipsCents)
		assert.Empty(t, output.Punches[1].ClockedOut)
		assert.Zero(t, output.Punches[1].Hours)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		server := newTestServer(t, &mockWorkforceService{err: errors.New("rate limited")})

		_, _, err := server.handleListTimePunches(ctx, nil, ListTimePunchesInput{Start: "2024-03-01", End: "2024-03-01"})
		require.Error(t, err)
	})
}

func TestServer_handleDailySales(t *testing.T) {
	ctx := context.Background()

	t.Run("returns rows", func(t *testing.T) {
		mock := &mockWorkforceService{
			dailySales: []domain.DailySalesAndLabor{
				{Date: domain.MustParseDate("2024-03-01"), ActualSales: 1520.5, LaborPercent: 28.1},
			},
		}
		server := newTestServer(t, mock)

		input := DailySalesInput{LocationID: 3, StartDate: "2024-03-01", EndDate: "2024-03-07"}
		_, output, err := server.handleDailySales(ctx, nil, input)
		require.NoError(t, err)

		assert.Equal(t, int64(3), mock.gotSales.LocationID)
		assert.Equal(t, domain.MustParseDate("2024-03-07"), mock.gotSales.EndDate)
		require.Len(t, output.Days, 1)
		assert.Equal(t, "2024-03-01", output.Days[0].Date)
		assert.InDelta(t, 1520.5, output.Days[0].ActualSales, 0.001)
	})

	t.Run("requires location", func(t *testing.T) {
		server := newTestServer(t, &mockWorkforceService{})

		input := DailySalesInput{StartDate: "2024-03-01", EndDate: "2024-03-07"}
		_, _, err := server.handleDailySales(ctx, nil, input)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestTruncate(t *testing.T) {
	items := make([]int, defaultMaxResults+1)

	got, truncated := truncate(items, 0)
	assert.Len(t, got, defaultMaxResults)
	assert.True(t, truncated)

	got, truncated = truncate(items[:3], 5)
	assert.Len(t, got, 3)
	assert.False(t, truncated)
}
