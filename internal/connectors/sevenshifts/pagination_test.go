package sevenshifts

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
)

func TestWalkPages_FollowsCursor(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/company/1/shifts", r.URL.Path)
		assert.Equal(t, "500", r.URL.Query().Get("limit"))
		assert.Equal(t, "4", r.URL.Query().Get("location_id"))

		switch r.URL.Query().Get("cursor") {
		case "":
			fmt.Fprint(w, `{"data": [{"id": 1}, {"id": 2}], "meta": {"cursor": {"next": "p2", "count": 2}}}`)
		case "p2":
			fmt.Fprint(w, `{"data": [{"id": 3}], "meta": {"cursor": {"prev": "p1", "next": "p3"}}}`)
		case "p3":
			fmt.Fprint(w, `{"data": [{"id": 4}], "meta": {"cursor": {"next": null}}}`)
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("cursor"))
		}
	}))

	var pages [][]domain.Shift
	err := client.WalkShifts(context.Background(), 1, domain.ShiftFilter{LocationID: 4}, func(page []domain.Shift) error {
		pages = append(pages, page)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Len(t, pages[0], 2)
	assert.Equal(t, int64(4), pages[2][0].ID)
}

func TestWalkPages_StopsOnRepeatedCursor(t *testing.T) {
	var calls int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{"data": [{"id": 1}], "meta": {"cursor": {"next": "same"}}}`)
	}))

	shifts, err := client.ListShifts(context.Background(), 1, domain.ShiftFilter{})
	require.NoError(t, err)
	assert.Len(t, shifts, 2)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestWalkPages_StopsOnEmptyPage(t *testing.T) {
	var calls int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{"data": [], "meta": {"cursor": {"next": "more"}}}`)
	}))

	punches, err := client.ListTimePunches(context.Background(), 1, domain.TimePunchFilter{})
	require.NoError(t, err)
	assert.Empty(t, punches)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestWalkPages_CallbackErrorStops(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data": [{"id": 1}], "meta": {"cursor": {"next": "x"}}}`)
	}))
	stop := errors.New("stop")

	err := client.WalkTimePunches(context.Background(), 1, domain.TimePunchFilter{}, func([]domain.TimePunch) error {
		return stop
	})
	assert.ErrorIs(t, err, stop)
}

func TestWalkPages_ContextCancelled(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"data": [], "meta": {"cursor": {}}}`)
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListShifts(ctx, 1, domain.ShiftFilter{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeList_KeepsRawPerItem(t *testing.T) {
	users, err := decodeList[domain.User]([]byte(`[{"id": 1, "first_name": "Ada"}, {"id": 2, "custom": true}]`))
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Ada", users[0].FirstName)
	assert.JSONEq(t, `{"id": 2, "custom": true}`, string(users[1].RawBytes()))

	none, err := decodeList[domain.User]([]byte(`null`))
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = decodeList[domain.User]([]byte(`{"id": 1}`))
	assert.Error(t, err)
}

func TestEncodeQuery_Shifts(t *testing.T) {
	start := time.Date(2024, 3, 1, 6, 0, 0, 0, time.FixedZone("MST", -7*3600))
	q, err := encodeQuery(newShiftQuery(domain.ShiftFilter{
		LocationID:    4,
		DepartmentIDs: []int64{7, 8},
		StartGTE:      start,
		Deleted:       domain.Bool(false),
		ModifiedSince: domain.MustParseDate("2024-02-28"),
		SortBy:        "start",
	}))
	require.NoError(t, err)

	assert.Equal(t, "4", q.Get("location_id"))
	assert.Equal(t, "7,8", q.Get("department_ids"))
	assert.Empty(t, q.Get("department_id"))
	assert.Equal(t, "2024-03-01T13:00:00Z", q.Get("start[gte]"))
	assert.False(t, q.Has("start[lte]"))
	assert.Equal(t, "false", q.Get("deleted"))
	assert.False(t, q.Has("draft"))
	assert.Equal(t, "2024-02-28", q.Get("modified_since"))
	assert.Equal(t, "start", q.Get("sort_by"))
	assert.Equal(t, "500", q.Get("limit"))
}

func TestEncodeQuery_SingleDepartment(t *testing.T) {
	q, err := encodeQuery(newShiftQuery(domain.ShiftFilter{DepartmentIDs: []int64{7}}))
	require.NoError(t, err)
	assert.Equal(t, "7", q.Get("department_id"))
	assert.False(t, q.Has("department_ids"))
}

func TestEncodeQuery_LegacyBooleansAlwaysSent(t *testing.T) {
	q, err := encodeQuery(legacySalesQuery{
		From:       civilDate(domain.MustParseDate("2024-01-01")),
		To:         civilDate(domain.MustParseDate("2024-01-07")),
		LocationID: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "false", q.Get("include_unapproved"))
	assert.Equal(t, "2024-01-01", q.Get("from"))
	assert.Equal(t, "2024-01-07", q.Get("to"))
}

func TestEncodeQuery_ReceiptLimit(t *testing.T) {
	q, err := encodeQuery(newReceiptQuery(domain.ReceiptFilter{LocationID: 2, ListOptions: domain.ListOptions{Limit: 25}}))
	require.NoError(t, err)
	assert.Equal(t, "25", q.Get("limit"))
	assert.Equal(t, "2", q.Get("location_id"))
}
