package sevenshifts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
	"github.com/prairiedogbeer/go7shifts/internal/logger"
)

// Default page sizes per endpoint.
const (
	locationPageSize   = 100
	departmentPageSize = 100
	rolePageSize       = 200
	userPageSize       = 100
	shiftPageSize      = 500
	punchPageSize      = 500
	receiptPageSize    = 100
)

// envelope is the wrapper every v2 response shares.
type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta struct {
		Cursor cursor `json:"cursor"`
	} `json:"meta"`
}

// cursor is the v2 pagination state.
type cursor struct {
	Current string `json:"current"`
	Prev    string `json:"prev"`
	Next    string `json:"next"`
	Count   int    `json:"count"`
}

func (e envelope) empty() bool {
	return len(e.Data) == 0 || string(e.Data) == "null"
}

// decodeItem decodes one entity and keeps its raw JSON when T supports it.
func decodeItem[T any](raw json.RawMessage) (T, error) {
	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return item, fmt.Errorf("decoding %T: %w", item, err)
	}
	if setter, ok := any(&item).(domain.RawSetter); ok {
		setter.SetRaw(raw)
	}
	return item, nil
}

func decodeList[T any](data json.RawMessage) ([]T, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decoding list: %w", err)
	}
	items := make([]T, 0, len(raws))
	for _, raw := range raws {
		item, err := decodeItem[T](raw)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// getOne fetches a single entity. A 404 or an empty data field becomes a
// NotFoundError naming the entity.
func getOne[T any](
	ctx context.Context, c *Client, entity, id, path string, query url.Values, cacheable bool,
) (*T, error) {
	var env envelope
	err := c.do(ctx, request{method: http.MethodGet, path: path, query: query, cacheable: cacheable}, &env)
	if err != nil {
		if IsNotFound(err) {
			return nil, &NotFoundError{Entity: entity, ID: id}
		}
		return nil, err
	}
	if env.empty() {
		return nil, &NotFoundError{Entity: entity, ID: id}
	}
	item, err := decodeItem[T](env.Data)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// send issues a write and decodes the returned entity, if any.
func send[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (*T, error) {
	var env envelope
	if err := c.do(ctx, request{method: method, path: path, query: query, body: body}, &env); err != nil {
		return nil, err
	}
	if env.empty() {
		var zero T
		return &zero, nil
	}
	item, err := decodeItem[T](env.Data)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// walkPages follows meta.cursor.next until the API stops returning one,
// calling fn with each non-empty page.
func walkPages[T any](
	ctx context.Context, c *Client, path string, query url.Values, cacheable bool, fn func([]T) error,
) error {
	q := url.Values{}
	for k, v := range query {
		q[k] = append([]string(nil), v...)
	}

	sent := ""
	for page := 1; ; page++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var env envelope
		if err := c.do(ctx, request{method: http.MethodGet, path: path, query: q, cacheable: cacheable}, &env); err != nil {
			return err
		}
		items, err := decodeList[T](env.Data)
		if err != nil {
			return err
		}
		logger.Debug("%s page %d: %d records", path, page, len(items))

		if len(items) > 0 {
			if err := fn(items); err != nil {
				return err
			}
		}

		next := env.Meta.Cursor.Next
		if next == "" || next == sent || len(items) == 0 {
			return nil
		}
		sent = next
		q.Set("cursor", next)
	}
}

// listAll collects every page into one slice.
func listAll[T any](ctx context.Context, c *Client, path string, query url.Values, cacheable bool) ([]T, error) {
	var all []T
	err := walkPages(ctx, c, path, query, cacheable, func(page []T) error {
		all = append(all, page...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}
