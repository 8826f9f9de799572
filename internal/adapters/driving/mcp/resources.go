package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for 7shifts resources.
	uriScheme = "7shifts://"

	// syncRunLimit is how many runs the sync history resource returns.
	syncRunLimit = 20
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "companies",
		Name:        "companies",
		Description: "Companies the access token can see",
		MIMEType:    "application/json",
	}, s.handleCompaniesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "companies/{companyId}/locations",
		Name:        "company-locations",
		Description: "Locations of a specific company",
		MIMEType:    "application/json",
	}, s.handleLocationsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sync/runs",
		Name:        "sync-runs",
		Description: "Most recent local sync runs",
		MIMEType:    "application/json",
	}, s.handleSyncRunsResource)
}

func (s *Server) handleCompaniesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	companies, err := s.ports.Workforce.ListCompanies(ctx, domain.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}

	infos := make([]CompanyOutput, len(companies))
	for i, c := range companies {
		infos[i] = CompanyOutput{ID: c.ID, Name: c.Name, Country: c.Country, Status: c.Status}
	}
	return jsonResource(req.Params.URI, infos)
}

func (s *Server) handleLocationsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	companyID := extractCompanyID(req.Params.URI)
	if companyID <= 0 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	locations, err := s.ports.Workforce.ListLocations(ctx, companyID, domain.LocationFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}

	infos := make([]LocationOutput, len(locations))
	for i, l := range locations {
		infos[i] = LocationOutput{
			ID:       l.ID,
			Name:     l.Name,
			City:     l.City,
			State:    l.State,
			Country:  l.Country,
			Timezone: l.Timezone,
		}
	}
	return jsonResource(req.Params.URI, infos)
}

func (s *Server) handleSyncRunsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Sync == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	runs, err := s.ports.Sync.History(ctx, syncRunLimit)
	if err != nil {
		return nil, fmt.Errorf("listing sync runs: %w", err)
	}

	type runInfo struct {
		ID        string         `json:"id"`
		Status    string         `json:"status"`
		StartedAt string         `json:"started_at"`
		EndedAt   string         `json:"ended_at,omitempty"`
		Window    string         `json:"window"`
		Counts    map[string]int `json:"counts"`
		Error     string         `json:"error,omitempty"`
	}

	infos := make([]runInfo, len(runs))
	for i := range runs {
		run := &runs[i]
		counts := make(map[string]int, len(run.Counts))
		for resource, n := range run.Counts {
			counts[string(resource)] = n
		}
		info := runInfo{
			ID:        run.ID,
			Status:    string(run.Status),
			StartedAt: run.StartedAt.Format(time.RFC3339),
			Window:    run.Window.String(),
			Counts:    counts,
			Error:     run.Error,
		}
		if !run.EndedAt.IsZero() {
			info.EndedAt = run.EndedAt.Format(time.RFC3339)
		}
		infos[i] = info
	}
	return jsonResource(req.Params.URI, infos)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractCompanyID extracts the company ID from a URI like
// 7shifts://companies/{companyId}/locations. Returns 0 when malformed.
func extractCompanyID(uri string) int64 {
	const prefix = uriScheme + "companies/"
	const suffix = "/locations"

	if !strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return 0
	}
	raw := strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
