package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driven"
)

// syncRunStore implements driven.SyncRunStore.
type syncRunStore struct {
	store *Store
}

var _ driven.SyncRunStore = (*syncRunStore)(nil)

const syncRunColumns = `id, resources, company_ids, window_start, window_end, modified_since,
	started_at, ended_at, status, error, counts, dry_run`

// SaveRun creates or updates a run by ID.
func (s *syncRunStore) SaveRun(ctx context.Context, run *domain.SyncRun) error {
	if run == nil || run.ID == "" {
		return domain.ErrInvalidInput
	}

	resources, err := json.Marshal(run.Resources)
	if err != nil {
		return fmt.Errorf("marshalling resources: %w", err)
	}
	companyIDs, err := json.Marshal(run.CompanyIDs)
	if err != nil {
		return fmt.Errorf("marshalling company ids: %w", err)
	}
	counts := run.Counts
	if counts == nil {
		counts = map[domain.Resource]int{}
	}
	countsJSON, err := json.Marshal(counts)
	if err != nil {
		return fmt.Errorf("marshalling counts: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO sync_runs (`+syncRunColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			resources = excluded.resources,
			company_ids = excluded.company_ids,
			window_start = excluded.window_start,
			window_end = excluded.window_end,
			modified_since = excluded.modified_since,
			started_at = excluded.started_at,
			ended_at = excluded.ended_at,
			status = excluded.status,
			error = excluded.error,
			counts = excluded.counts,
			dry_run = excluded.dry_run
	`, run.ID, string(resources), string(companyIDs),
		formatNullableTime(run.Window.Start), formatNullableTime(run.Window.End),
		civilDate(run.Window.ModifiedSince),
		formatNullableTime(run.StartedAt), formatNullableTime(run.EndedAt),
		string(run.Status), nullString(run.Error), string(countsJSON), boolToInt(run.DryRun))
	if err != nil {
		return fmt.Errorf("saving sync run: %w", err)
	}
	return nil
}

// GetRun returns a run by ID.
func (s *syncRunStore) GetRun(ctx context.Context, id string) (*domain.SyncRun, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+syncRunColumns+` FROM sync_runs WHERE id = ?`, id)
	run, err := scanSyncRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return run, err
}

// ListRuns returns up to limit runs, newest first. A limit of zero or
// less returns every run.
func (s *syncRunStore) ListRuns(ctx context.Context, limit int) ([]domain.SyncRun, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+syncRunColumns+` FROM sync_runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sync runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.SyncRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		run, err := scanSyncRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sync runs: %w", err)
	}
	return runs, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSyncRun(row rowScanner) (*domain.SyncRun, error) {
	var run domain.SyncRun
	var resources, companyIDs, status, counts string
	var windowStart, windowEnd, modifiedSince, startedAt, endedAt, errMsg sql.NullString
	var dryRun int

	err := row.Scan(&run.ID, &resources, &companyIDs, &windowStart, &windowEnd, &modifiedSince,
		&startedAt, &endedAt, &status, &errMsg, &counts, &dryRun)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning sync run: %w", err)
	}

	if err := json.Unmarshal([]byte(resources), &run.Resources); err != nil {
		return nil, fmt.Errorf("decoding sync run resources: %w", err)
	}
	if err := json.Unmarshal([]byte(companyIDs), &run.CompanyIDs); err != nil {
		return nil, fmt.Errorf("decoding sync run company ids: %w", err)
	}
	if err := json.Unmarshal([]byte(counts), &run.Counts); err != nil {
		return nil, fmt.Errorf("decoding sync run counts: %w", err)
	}

	run.Window.Start = parseNullableTime(windowStart)
	run.Window.End = parseNullableTime(windowEnd)
	if modifiedSince.Valid {
		if d, err := domain.ParseDate(modifiedSince.String); err == nil {
			run.Window.ModifiedSince = d
		}
	}
	run.StartedAt = parseNullableTime(startedAt)
	run.EndedAt = parseNullableTime(endedAt)
	run.Status = domain.SyncRunStatus(status)
	if errMsg.Valid {
		run.Error = errMsg.String
	}
	run.DryRun = dryRun == 1

	return &run, nil
}
