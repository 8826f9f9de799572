package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driven"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driving"
	"github.com/prairiedogbeer/go7shifts/internal/logger"
)

// Ensure WorkforceService implements the interface.
var _ driving.WorkforceService = (*WorkforceService)(nil)

// WorkforceService gives the CLI and MCP server access to the 7shifts API.
// API calls pass straight through to the connector, which validates
// required parameters before sending anything.
type WorkforceService struct {
	driven.WorkforceAPI

	companyID int64

	mu       sync.Mutex
	resolved int64
}

// NewWorkforceService wraps api. A non-zero companyID is returned by
// DefaultCompanyID without asking the API.
func NewWorkforceService(api driven.WorkforceAPI, companyID int64) *WorkforceService {
	return &WorkforceService{
		WorkforceAPI: api,
		companyID:    companyID,
	}
}

// DefaultCompanyID returns the configured company or, failing that, the
// first company the token can see. The lookup is done once.
func (s *WorkforceService) DefaultCompanyID(ctx context.Context) (int64, error) {
	if s.companyID != 0 {
		return s.companyID, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resolved != 0 {
		return s.resolved, nil
	}

	companies, err := s.ListCompanies(ctx, domain.ListOptions{})
	if err != nil {
		return 0, fmt.Errorf("finding default company: %w", err)
	}
	if len(companies) == 0 {
		return 0, fmt.Errorf("%w: the access token cannot see any company", domain.ErrNotConfigured)
	}
	if len(companies) > 1 {
		logger.Warn("Token can see %d companies; using %d (%s). Set sync.company_id or --company-id to choose.",
			len(companies), companies[0].ID, companies[0].Name)
	}

	s.resolved = companies[0].ID
	return s.resolved, nil
}
