package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResources(t *testing.T) {
	t.Run("empty selects all", func(t *testing.T) {
		resources, err := ParseResources(nil)
		require.NoError(t, err)
		assert.Equal(t, AllResources(), resources)
	})

	t.Run("all keyword", func(t *testing.T) {
		resources, err := ParseResources([]string{"shifts", "all"})
		require.NoError(t, err)
		assert.Len(t, resources, len(AllResources()))
	})

	t.Run("sync order and dedupe", func(t *testing.T) {
		resources, err := ParseResources([]string{"punches", "users", "Punches", "companies"})
		require.NoError(t, err)
		assert.Equal(t, []Resource{ResourceCompanies, ResourceUsers, ResourcePunches}, resources)
	})

	t.Run("aliases", func(t *testing.T) {
		resources, err := ParseResources([]string{"time_punches", "daily_sales_and_labor"})
		require.NoError(t, err)
		assert.Equal(t, []Resource{ResourcePunches, ResourceDailySalesLabor}, resources)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseResources([]string{"tips"})
		assert.ErrorIs(t, err, ErrUnknownResource)
	})
}

func TestResource_IsTimeBounded(t *testing.T) {
	assert.True(t, ResourceShifts.IsTimeBounded())
	assert.True(t, ResourceReceipts.IsTimeBounded())
	assert.False(t, ResourceUsers.IsTimeBounded())
	assert.False(t, ResourceCompanies.IsTimeBounded())
}

func TestSyncWindow_Days(t *testing.T) {
	loc, err := time.LoadLocation("America/Edmonton")
	require.NoError(t, err)

	w := SyncWindow{
		Start: time.Date(2024, 3, 9, 0, 0, 0, 0, loc),
		End:   time.Date(2024, 3, 11, 23, 59, 59, 0, loc),
	}
	days := w.Days()
	require.Len(t, days, 3)
	assert.Equal(t, "2024-03-09", days[0].String())
	assert.Equal(t, "2024-03-11", days[2].String())

	assert.Nil(t, SyncWindow{ModifiedSince: MustParseDate("2024-01-01")}.Days())
}

func TestSyncWindow_String(t *testing.T) {
	w := SyncWindow{ModifiedSince: MustParseDate("2024-01-01")}
	assert.True(t, w.IsModifiedSince())
	assert.Equal(t, "modified since 2024-01-01", w.String())
}

func TestSyncRun_Counts(t *testing.T) {
	run := SyncRun{Counts: map[Resource]int{
		ResourcePunches: 40,
		ResourceUsers:   12,
		ResourceRoles:   3,
	}}

	assert.Equal(t, 55, run.Total())
	counts := run.SortedCounts()
	require.Len(t, counts, 3)
	assert.Equal(t, ResourceRoles, counts[0].Resource)
	assert.Equal(t, ResourceUsers, counts[1].Resource)
	assert.Equal(t, ResourcePunches, counts[2].Resource)
}
