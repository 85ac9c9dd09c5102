package dataset

import "sort"

// ValueCount is one bar of a categorical chart.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Bin is one bucket of a histogram. Intervals are right-open except the
// last, which includes the maximum so no observation falls off the end.
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// TopN tallies value frequencies over a column, dropping missing cells, and
// returns the n most frequent values ordered by count descending. Ties keep
// first-encountered order. An absent or entirely-missing column yields an
// empty result, not an error.
func TopN(t *Table, column string, n int) []ValueCount {
	if !t.HasColumn(column) {
		return nil
	}
	values := make([]string, 0, t.NumRows())
	for _, row := range t.Rows {
		if v := row.Get(column); !v.IsMissing() {
			values = append(values, v.Display())
		}
	}
	return CountValues(values, n)
}

// CountValues tallies a pre-extracted value slice. Used directly by views
// that project a column first, like the note-name remap.
func CountValues(values []string, n int) []ValueCount {
	if len(values) == 0 || n <= 0 {
		return nil
	}

	counts := make(map[string]int, len(values))
	order := make([]string, 0, len(values))
	for _, v := range values {
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	out := make([]ValueCount, len(order))
	for i, v := range order {
		out[i] = ValueCount{Value: v, Count: counts[v]}
	}
	// Stable sort preserves first-encountered order among equal counts.
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Count > out[b].Count
	})

	if n < len(out) {
		out = out[:n]
	}
	return out
}

// Histogram partitions a numeric column into equal-width buckets over
// [min, max], dropping missing and non-numeric cells. All bins are
// returned, including empty ones, with explicit edges so chart output is
// reproducible. An absent or entirely-missing column yields an empty
// result; bins defaults to 10 when non-positive.
func Histogram(t *Table, column string, bins int) []Bin {
	if !t.HasColumn(column) {
		return nil
	}
	if bins <= 0 {
		bins = 10
	}

	var nums []float64
	for _, row := range t.Rows {
		if v := row.Get(column); v.Kind() == KindNumber {
			nums = append(nums, v.Num())
		}
	}
	if len(nums) == 0 {
		return nil
	}

	minV, maxV := nums[0], nums[0]
	for _, f := range nums[1:] {
		if f < minV {
			minV = f
		}
		if f > maxV {
			maxV = f
		}
	}

	// Degenerate range: one bin holding everything.
	if minV == maxV {
		return []Bin{{Low: minV, High: maxV, Count: len(nums)}}
	}

	width := (maxV - minV) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Low = minV + float64(i)*width
		out[i].High = minV + float64(i+1)*width
	}
	out[bins-1].High = maxV

	for _, f := range nums {
		i := int((f - minV) / width)
		if i >= bins {
			i = bins - 1 // the maximum lands in the closed last bin
		}
		out[i].Count++
	}
	return out
}
