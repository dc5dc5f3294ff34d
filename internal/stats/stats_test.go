package stats

import (
	"math"
	"testing"

	"github.com/desertthunder/tracktab/internal/table"
)

func cell(t *testing.T, tbl *table.Table, row int, col string) float64 {
	t.Helper()
	v, err := tbl.Value(row, col)
	if err != nil {
		t.Fatalf("unexpected error reading %s: %v", col, err)
	}
	f, ok := v.Float()
	if !ok {
		t.Fatalf("expected a number at %s/%s, got %v", tbl.Label(row), col, v)
	}
	return f
}

func TestDescribe(t *testing.T) {
	t.Run("Excludes Non Numeric Columns", func(t *testing.T) {
		tbl := table.Build([]table.Record{
			{table.F("rank", table.Number(10)), table.F("title", table.Text("a"))},
			{table.F("rank", table.Number(20)), table.F("title", table.Text("b"))},
			{table.F("rank", table.Number(30)), table.F("title", table.Text("c"))},
		})

		got := Describe(tbl)

		cols := got.Columns()
		if len(cols) != 1 || cols[0] != "rank" {
			t.Fatalf("expected only the rank column, got %v", cols)
		}
		if got.Len() != 4 {
			t.Fatalf("expected 4 statistic rows, got %d", got.Len())
		}
		for i, label := range []string{Mean, Std, Min, Max} {
			if got.Label(i) != label {
				t.Errorf("row %d label = %s, want %s", i, got.Label(i), label)
			}
		}

		if m := cell(t, got, 0, "rank"); m != 20 {
			t.Errorf("expected mean 20, got %v", m)
		}
		if s := cell(t, got, 1, "rank"); s != 10 {
			t.Errorf("expected sample std 10, got %v", s)
		}
		if m := cell(t, got, 2, "rank"); m != 10 {
			t.Errorf("expected min 10, got %v", m)
		}
		if m := cell(t, got, 3, "rank"); m != 30 {
			t.Errorf("expected max 30, got %v", m)
		}
	})

	t.Run("No Numeric Columns", func(t *testing.T) {
		tbl := table.Build([]table.Record{{table.F("title", table.Text("a"))}})
		got := Describe(tbl)
		if len(got.Columns()) != 0 {
			t.Errorf("expected zero columns, got %v", got.Columns())
		}
	})

	t.Run("Empty Table", func(t *testing.T) {
		got := Describe(table.Build(nil))
		if len(got.Columns()) != 0 {
			t.Errorf("expected zero columns, got %v", got.Columns())
		}
	})

	t.Run("Skips Missing Cells", func(t *testing.T) {
		tbl := table.Build([]table.Record{
			{table.F("nb_fans", table.Number(4))},
			{table.F("nb_fans", table.Missing)},
			{table.F("nb_fans", table.Number(8))},
		})

		got := Describe(tbl)
		if m := cell(t, got, 0, "nb_fans"); m != 6 {
			t.Errorf("expected mean 6, got %v", m)
		}
	})

	t.Run("Single Value Has Missing Std", func(t *testing.T) {
		tbl := table.Build([]table.Record{{table.F("rank", table.Number(5))}})
		got := Describe(tbl)

		v, _ := got.Value(1, "rank")
		if !v.IsMissing() {
			t.Errorf("expected std to be Missing for one value, got %v", v)
		}
	})
}

func TestSummarize(t *testing.T) {
	t.Run("No Numbers", func(t *testing.T) {
		if _, ok := Summarize([]table.Value{table.Text("x"), table.Missing}); ok {
			t.Error("expected ok=false")
		}
	})

	t.Run("Mixed Values", func(t *testing.T) {
		s, ok := Summarize([]table.Value{table.Number(2), table.Text("x"), table.Number(4), table.Number(9)})
		if !ok {
			t.Fatal("expected ok=true")
		}
		if s.Count != 3 || s.Mean != 5 || s.Min != 2 || s.Max != 9 {
			t.Errorf("unexpected summary %+v", s)
		}
		if math.Abs(s.Std-math.Sqrt(13)) > 1e-9 {
			t.Errorf("expected std sqrt(13), got %v", s.Std)
		}
	})
}
