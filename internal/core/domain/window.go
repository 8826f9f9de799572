package domain

import (
	"fmt"
	"time"
)

// ResolveWindow turns the sync date flags into a concrete window.
//
// A modified-since date wins over every other flag. Otherwise the window
// covers whole days in opts.Location from 00:00:00 on the first day to
// 23:59:59 on the last:
//
//   - no flags: yesterday
//   - start only: start through yesterday
//   - end only: just that day
//   - start and end: both days and everything between
//   - last N days: N days ending on end, or yesterday; ignored when a
//     start date is given
func ResolveWindow(opts WindowOptions, now time.Time) (SyncWindow, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	if !opts.ModifiedSince.IsZero() {
		return SyncWindow{ModifiedSince: opts.ModifiedSince, Location: loc}, nil
	}
	if opts.LastNDays < 0 {
		return SyncWindow{}, fmt.Errorf("%w: last-n-days must be positive", ErrInvalidInput)
	}

	yesterday := DateOf(now.In(loc)).AddDays(-1)

	end := opts.EndDate
	start := opts.StartDate
	switch {
	case opts.LastNDays > 0 && start.IsZero():
		if end.IsZero() {
			end = yesterday
		}
		start = end.AddDays(1 - opts.LastNDays)
	case start.IsZero() && end.IsZero():
		start, end = yesterday, yesterday
	case end.IsZero():
		end = yesterday
	case start.IsZero():
		start = end
	}

	if start.After(end) {
		return SyncWindow{}, fmt.Errorf("%w: start date %s is after end date %s", ErrInvalidInput, start, end)
	}

	return SyncWindow{
		Start:    start.In(loc),
		End:      end.AddDays(1).In(loc).Add(-time.Second),
		Location: loc,
	}, nil
}
