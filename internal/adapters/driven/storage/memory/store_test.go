package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

func TestWorkforceStore_UpsertReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewWorkforceStore()

	n, err := store.UpsertUsers(ctx, []domain.User{{ID: 2, FirstName: "Bo"}, {ID: 1, FirstName: "Al"}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = store.UpsertUsers(ctx, []domain.User{{ID: 2, FirstName: "Bea"}})
	require.NoError(t, err)

	users := store.Users()
	require.Len(t, users, 2)
	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, "Bea", users[1].FirstName)
}

func TestWorkforceStore_DailySalesKeyedByLocationAndDate(t *testing.T) {
	ctx := context.Background()
	store := NewWorkforceStore()
	day1 := domain.MustParseDate("2024-01-01")
	day2 := domain.MustParseDate("2024-01-02")

	_, err := store.UpsertDailySalesAndLabor(ctx, 1, []domain.DailySalesAndLabor{
		{Date: day2, ActualSales: 20}, {Date: day1, ActualSales: 10},
	})
	require.NoError(t, err)
	_, err = store.UpsertDailySalesAndLabor(ctx, 2, []domain.DailySalesAndLabor{{Date: day1, ActualSales: 99}})
	require.NoError(t, err)
	_, err = store.UpsertDailySalesAndLabor(ctx, 1, []domain.DailySalesAndLabor{{Date: day1, ActualSales: 11}})
	require.NoError(t, err)

	rows := store.DailySalesAndLabor(1)
	require.Len(t, rows, 2)
	assert.Equal(t, day1, rows[0].Date)
	assert.InDelta(t, 11.0, rows[0].ActualSales, 0.001)
	assert.Len(t, store.DailySalesAndLabor(2), 1)
}

func TestWorkforceStore_Assignments(t *testing.T) {
	store := NewWorkforceStore()
	n, err := store.UpsertAssignments(context.Background(), 5, domain.Assignments{
		Locations: []domain.AssignedLocation{{ID: 1}},
		Roles:     []domain.AssignedRole{{ID: 2}, {ID: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	a, ok := store.Assignments(5)
	require.True(t, ok)
	assert.Len(t, a.Roles, 2)
	_, ok = store.Assignments(6)
	assert.False(t, ok)
}

func TestSyncRunStore(t *testing.T) {
	ctx := context.Background()
	store := NewSyncRunStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.SaveRun(ctx, &domain.SyncRun{
			ID:        id,
			StartedAt: base.Add(time.Duration(i) * time.Hour),
			Status:    domain.SyncRunSucceeded,
			Counts:    map[domain.Resource]int{domain.ResourceUsers: i},
		}))
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)

	run, err := store.GetRun(ctx, "a")
	require.NoError(t, err)
	run.Counts[domain.ResourceUsers] = 100
	again, err := store.GetRun(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 0, again.Counts[domain.ResourceUsers], "returned runs are copies")

	_, err = store.GetRun(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
