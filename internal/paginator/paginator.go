// package paginator collects records from cursor-paginated APIs.
//
// [Collect] is a two-state loop: it stays in [Fetching] while the row limit is not
// reached and the current page reports a next page, and moves to [Done] otherwise.
// Each call to [Source.Next] advances the remote cursor, so the loop always ends.
package paginator

import (
	"context"
	"fmt"

	"github.com/desertthunder/tracktab/internal/table"
)

// MaxPageSize is the largest page size requested from a source.
const MaxPageSize = 100

// State is the collector's state.
type State int

const (
	Fetching State = iota
	Done
)

func (s State) String() string {
	if s == Done {
		return "done"
	}
	return "fetching"
}

// StopReason tells why collection reached [Done].
type StopReason int

const (
	// StopExhausted means the last page reported no next page.
	StopExhausted StopReason = iota
	// StopLimit means the row limit was reached.
	StopLimit
)

func (r StopReason) String() string {
	if r == StopLimit {
		return "limit reached"
	}
	return "pages exhausted"
}

// Page is one batch of items plus whether another batch follows.
//
// Cursor is opaque to the collector; sources use it to find the next page.
type Page[T any] struct {
	Items   []T
	HasNext bool
	Cursor  any
}

// Source fetches pages from an external API.
type Source[T any] interface {
	// First fetches the first page with at most pageSize items.
	First(ctx context.Context, pageSize int) (*Page[T], error)
	// Next fetches the page following prev.
	Next(ctx context.Context, prev *Page[T]) (*Page[T], error)
}

// MapFunc maps one item to a record; ok=false skips the item.
type MapFunc[T any] func(item T) (rec table.Record, ok bool)

// Result is what [Collect] gathered.
type Result struct {
	Records []table.Record
	Fetches int
	Stop    StopReason
}

// Collect maps items page by page until limit records are gathered or the source runs out.
// No page is fetched once the limit is reached. limit <= 0 fetches nothing.
func Collect[T any](ctx context.Context, src Source[T], limit int, fn MapFunc[T]) (*Result, error) {
	res := &Result{Stop: StopLimit}
	if limit <= 0 {
		return res, nil
	}

	page, err := src.First(ctx, min(limit, MaxPageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch first page: %w", err)
	}
	res.Fetches++

	state := Fetching
	for state == Fetching {
		if page == nil {
			res.Stop = StopExhausted
			break
		}
		for _, item := range page.Items {
			rec, ok := fn(item)
			if !ok {
				continue
			}
			res.Records = append(res.Records, rec)
			if len(res.Records) >= limit {
				break
			}
		}

		switch {
		case len(res.Records) >= limit:
			res.Stop = StopLimit
			state = Done
		case !page.HasNext:
			res.Stop = StopExhausted
			state = Done
		default:
			if page, err = src.Next(ctx, page); err != nil {
				return nil, fmt.Errorf("failed to fetch page %d: %w", res.Fetches+1, err)
			}
			res.Fetches++
		}
	}

	return res, nil
}
