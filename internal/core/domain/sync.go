package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Resource names a kind of record the sync command can copy locally.
type Resource string

// Syncable resources.
const (
	ResourceCompanies       Resource = "companies"
	ResourceLocations       Resource = "locations"
	ResourceDepartments     Resource = "departments"
	ResourceRoles           Resource = "roles"
	ResourceUsers           Resource = "users"
	ResourceWages           Resource = "wages"
	ResourceAssignments     Resource = "assignments"
	ResourceShifts          Resource = "shifts"
	ResourcePunches         Resource = "punches"
	ResourceReceipts        Resource = "receipts"
	ResourceDailySalesLabor Resource = "daily_sales_labor"
)

// resourceOrder is the order resources are synced in. Reference data
// comes first so reports can join against it.
var resourceOrder = []Resource{
	ResourceCompanies,
	ResourceLocations,
	ResourceDepartments,
	ResourceRoles,
	ResourceUsers,
	ResourceWages,
	ResourceAssignments,
	ResourceShifts,
	ResourcePunches,
	ResourceReceipts,
	ResourceDailySalesLabor,
}

var resourceAliases = map[string]Resource{
	"time_punches":          ResourcePunches,
	"daily_sales_and_labor": ResourceDailySalesLabor,
}

// AllResources returns every syncable resource in sync order.
func AllResources() []Resource {
	return append([]Resource(nil), resourceOrder...)
}

// IsValid reports whether r is a known resource.
func (r Resource) IsValid() bool {
	for _, known := range resourceOrder {
		if r == known {
			return true
		}
	}
	return false
}

// IsTimeBounded reports whether the resource is filtered by the sync window.
func (r Resource) IsTimeBounded() bool {
	switch r {
	case ResourceShifts, ResourcePunches, ResourceReceipts, ResourceDailySalesLabor:
		return true
	default:
		return false
	}
}

// ParseResources turns command-line names into resources in sync order.
// No names, or the name "all", selects every resource.
func ParseResources(names []string) ([]Resource, error) {
	if len(names) == 0 {
		return AllResources(), nil
	}
	seen := make(map[Resource]bool)
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "all" {
			return AllResources(), nil
		}
		r := Resource(name)
		if alias, ok := resourceAliases[name]; ok {
			r = alias
		}
		if !r.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownResource, name)
		}
		seen[r] = true
	}
	resources := make([]Resource, 0, len(seen))
	for _, r := range resourceOrder {
		if seen[r] {
			resources = append(resources, r)
		}
	}
	return resources, nil
}

// SyncWindow bounds the records a sync fetches. Either ModifiedSince is
// set and Start/End are ignored, or Start and End are both set and the
// window is inclusive of both. Location is the zone the window was
// resolved in; nil means time.Local.
type SyncWindow struct {
	Start         time.Time
	End           time.Time
	ModifiedSince Date
	Location      *time.Location
}

// IsModifiedSince reports whether the window selects by modification date.
func (w SyncWindow) IsModifiedSince() bool {
	return !w.ModifiedSince.IsZero()
}

// Days lists every calendar day the window touches, in the window's zone.
func (w SyncWindow) Days() []Date {
	if w.IsModifiedSince() || w.Start.IsZero() || w.End.IsZero() {
		return nil
	}
	first := DateOf(w.Start)
	last := DateOf(w.End.In(w.Start.Location()))
	days := make([]Date, 0, first.DaysUntil(last)+1)
	for d := first; !d.After(last); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// String describes the window for logs and history.
func (w SyncWindow) String() string {
	if w.IsModifiedSince() {
		return "modified since " + w.ModifiedSince.String()
	}
	return w.Start.Format(time.RFC3339) + " to " + w.End.Format(time.RFC3339)
}

// WindowOptions are the user-facing date flags a SyncWindow is resolved from.
type WindowOptions struct {
	ModifiedSince Date
	StartDate     Date
	EndDate       Date
	LastNDays     int
	Location      *time.Location
}

// SyncRequest describes one sync run.
type SyncRequest struct {
	Resources            []Resource
	CompanyID            int64
	Window               SyncWindow
	IncludeInactiveUsers bool
	IncludeUnapproved    bool
	ReceiptChunkSize     int
	DryRun               bool
}

// SyncRunStatus is the outcome of a sync run.
type SyncRunStatus string

// Sync run statuses.
const (
	SyncRunRunning   SyncRunStatus = "running"
	SyncRunSucceeded SyncRunStatus = "succeeded"
	SyncRunFailed    SyncRunStatus = "failed"
)

// SyncRun is the history record of one sync.
type SyncRun struct {
	ID         string
	Resources  []Resource
	CompanyIDs []int64
	Window     SyncWindow
	StartedAt  time.Time
	EndedAt    time.Time
	Status     SyncRunStatus
	Error      string
	Counts     map[Resource]int
	DryRun     bool
}

// Total is the number of records written across all resources.
func (r SyncRun) Total() int {
	total := 0
	for _, n := range r.Counts {
		total += n
	}
	return total
}

// SortedCounts returns the per-resource counts in sync order.
func (r SyncRun) SortedCounts() []ResourceCount {
	counts := make([]ResourceCount, 0, len(r.Counts))
	for res, n := range r.Counts {
		counts = append(counts, ResourceCount{Resource: res, Count: n})
	}
	rank := make(map[Resource]int, len(resourceOrder))
	for i, res := range resourceOrder {
		rank[res] = i
	}
	sort.Slice(counts, func(i, j int) bool {
		return rank[counts[i].Resource] < rank[counts[j].Resource]
	})
	return counts
}

// ResourceCount pairs a resource with a record count.
type ResourceCount struct {
	Resource Resource
	Count    int
}

// SyncStatus is a live snapshot of an in-flight sync.
type SyncStatus struct {
	Running        bool
	RunID          string
	CompanyID      int64
	Resource       Resource
	RecordsWritten int
	StartedAt      time.Time
}
