package mcp

import (
	"context"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driven"
)

// mockWorkforceService implements driving.WorkforceService for the calls
// the MCP server makes. Other methods panic through the nil embedded API.
type mockWorkforceService struct {
	driven.WorkforceAPI

	identity   *domain.Identity
	companies  []domain.Company
	locations  []domain.Location
	users      []domain.User
	shifts     []domain.Shift
	punches    []domain.TimePunch
	dailySales []domain.DailySalesAndLabor
	defaultID  int64
	err        error

	gotCompanyID   int64
	gotUserFilter  domain.UserFilter
	gotShiftFilter domain.ShiftFilter
	gotPunchFilter domain.TimePunchFilter
	gotSales       domain.DailySalesAndLaborFilter
}

func (m *mockWorkforceService) DefaultCompanyID(_ context.Context) (int64, error) {
	return m.defaultID, m.err
}

func (m *mockWorkforceService) Whoami(_ context.Context) (*domain.Identity, error) {
	return m.identity, m.err
}

func (m *mockWorkforceService) ListCompanies(_ context.Context, _ domain.ListOptions) ([]domain.Company, error) {
	return m.companies, m.err
}

func (m *mockWorkforceService) ListLocations(
	_ context.Context, companyID int64, _ domain.LocationFilter,
) ([]domain.Location, error) {
	m.gotCompanyID = companyID
	return m.locations, m.err
}

func (m *mockWorkforceService) ListUsers(
	_ context.Context, companyID int64, filter domain.UserFilter,
) ([]domain.User, error) {
	m.gotCompanyID = companyID
	m.gotUserFilter = filter
	return m.users, m.err
}

func (m *mockWorkforceService) ListShifts(
	_ context.Context, companyID int64, filter domain.ShiftFilter,
) ([]domain.Shift, error) {
	m.gotCompanyID = companyID
	m.gotShiftFilter = filter
	return m.shifts, m.err
}

func (m *mockWorkforceService) ListTimePunches(
	_ context.Context, companyID int64, filter domain.TimePunchFilter,
) ([]domain.TimePunch, error) {
	m.gotCompanyID = companyID
	m.gotPunchFilter = filter
	return m.punches, m.err
}

func (m *mockWorkforceService) DailySalesAndLabor(
	_ context.Context, filter domain.DailySalesAndLaborFilter,
) ([]domain.DailySalesAndLabor, error) {
	m.gotSales = filter
	return m.dailySales, m.err
}

// mockSyncOrchestrator is a mock implementation of driving.SyncOrchestrator.
type mockSyncOrchestrator struct {
	runs []domain.SyncRun
	err  error
}

func (m *mockSyncOrchestrator) Sync(_ context.Context, _ domain.SyncRequest) (*domain.SyncRun, error) {
	return nil, m.err
}

func (m *mockSyncOrchestrator) Status() domain.SyncStatus {
	return domain.SyncStatus{}
}

func (m *mockSyncOrchestrator) History(_ context.Context, _ int) ([]domain.SyncRun, error) {
	return m.runs, m.err
}
