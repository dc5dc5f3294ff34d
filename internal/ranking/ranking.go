// package ranking sorts tables by a metric column
package ranking

import (
	"cmp"
	"slices"

	"github.com/desertthunder/tracktab/internal/shared"
	"github.com/desertthunder/tracktab/internal/table"
)

// DefaultMetric is the column Deezer track tables are usually ranked by.
const DefaultMetric = "rank"

// RankBy returns a copy of t with rows sorted by column in descending order.
//
// Missing values sort after everything else and ties keep their input order.
// The result is positionally indexed from 0 again.
func RankBy(t *table.Table, column string) (*table.Table, error) {
	vals, err := t.Column(column)
	if err != nil {
		return nil, err
	}

	order := make([]int, len(vals))
	for i := range order {
		order[i] = i
	}

	slices.SortStableFunc(order, func(a, b int) int {
		return Compare(vals[b], vals[a])
	})

	return t.Reorder(order), nil
}

// CheckColumn reports a [shared.ColumnNotFoundError] when t lacks column. Callers use it
// to validate flags before any output is written.
func CheckColumn(t *table.Table, column string) error {
	if !t.HasColumn(column) {
		return &shared.ColumnNotFoundError{Column: column}
	}
	return nil
}

// kindRank orders kinds when two values differ in kind. Missing is lowest so that it
// lands last in a descending sort.
func kindRank(k table.Kind) int {
	switch k {
	case table.KindNumber:
		return 3
	case table.KindBool:
		return 2
	case table.KindText:
		return 1
	default:
		return 0
	}
}

// Compare orders two cells ascending: numbers numerically, text lexically, false
// before true, and values of different kinds by kind with Missing lowest.
func Compare(a, b table.Value) int {
	if a.Kind() != b.Kind() {
		return cmp.Compare(kindRank(a.Kind()), kindRank(b.Kind()))
	}

	switch a.Kind() {
	case table.KindNumber:
		x, _ := a.Float()
		y, _ := b.Float()
		return cmp.Compare(x, y)
	case table.KindText:
		x, _ := a.Str()
		y, _ := b.Str()
		return cmp.Compare(x, y)
	case table.KindBool:
		x, _ := a.Boolean()
		y, _ := b.Boolean()
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	default:
		return 0
	}
}
