package ratings

import "github.com/shopspring/decimal"

// Summary is the derived (count, average) pair for one store's ratings.
// It is recomputed on every read, never cached.
type Summary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// Aggregate computes the rating summary for the provided values. The average
// is rounded half-up to one fractional digit; zero values yield Average 0.
func Aggregate(values []int) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	sum := int64(0)
	for _, v := range values {
		sum += int64(v)
	}

	avg := decimal.NewFromInt(sum).
		Div(decimal.NewFromInt(int64(len(values)))).
		Round(1)

	return Summary{
		Count:   len(values),
		Average: avg.InexactFloat64(),
	}
}
