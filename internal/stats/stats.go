// package stats computes descriptive statistics over table columns
package stats

import (
	"math"

	"github.com/desertthunder/tracktab/internal/table"
)

// Row labels of the table returned by [Describe].
const (
	Mean = "mean"
	Std  = "std"
	Min  = "min"
	Max  = "max"
)

// Summary holds the statistics of one column.
type Summary struct {
	Count int
	Mean  float64
	Std   float64 // NaN when Count < 2
	Min   float64
	Max   float64
}

// Summarize computes the summary of the numbers in vals, skipping everything else.
// ok is false when vals holds no numbers.
func Summarize(vals []table.Value) (s Summary, ok bool) {
	var nums []float64
	for _, v := range vals {
		if f, isNum := v.Float(); isNum {
			nums = append(nums, f)
		}
	}
	if len(nums) == 0 {
		return Summary{}, false
	}

	s = Summary{Count: len(nums), Min: nums[0], Max: nums[0], Std: math.NaN()}
	var sum float64
	for _, f := range nums {
		sum += f
		s.Min = math.Min(s.Min, f)
		s.Max = math.Max(s.Max, f)
	}
	s.Mean = sum / float64(len(nums))

	if len(nums) > 1 {
		var sq float64
		for _, f := range nums {
			d := f - s.Mean
			sq += d * d
		}
		s.Std = math.Sqrt(sq / float64(len(nums)-1))
	}

	return s, true
}

// Describe returns a table labeled mean, std, min and max with one column per numeric
// column of t. Non-numeric columns and columns without any number are left out, so a
// table with no numeric columns yields a statistics table with zero columns.
func Describe(t *table.Table) *table.Table {
	cols := t.NumericColumns()
	rows := make([][]table.Value, 4)
	for i := range rows {
		rows[i] = make([]table.Value, len(cols))
	}

	for c, name := range cols {
		vals, err := t.Column(name)
		if err != nil {
			continue
		}
		s, ok := Summarize(vals)
		if !ok {
			continue
		}
		rows[0][c] = table.Number(s.Mean)
		rows[1][c] = table.Number(s.Std)
		rows[2][c] = table.Number(s.Min)
		rows[3][c] = table.Number(s.Max)
	}

	return table.NewLabeled(cols, []string{Mean, Std, Min, Max}, rows)
}
