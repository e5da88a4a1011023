package task

import (
	"slices"

	"github.com/shopspring/decimal"
)

type SortBy string

const (
	SortNewest    SortBy = "newest"
	SortPriceHigh SortBy = "price_high"
	SortPriceLow  SortBy = "price_low"
)

// PriceRange is inclusive on both ends. Min greater than Max matches nothing.
type PriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

func (r PriceRange) Contains(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(r.Min) && d.LessThanOrEqual(r.Max)
}

// Filter describes a view over the task collection. Zero values mean "no
// constraint": an empty Category keeps every category and a nil PriceRange
// keeps every payment. PostedBy narrows to one poster's tasks by user ID.
// Distance is carried for clients but not applied.
type Filter struct {
	Category   string
	PostedBy   string
	PriceRange *PriceRange
	Distance   float64
	SortBy     SortBy
}

// DefaultFilter mirrors the browse page defaults.
func DefaultFilter() Filter {
	return Filter{
		PriceRange: &PriceRange{
			Min: decimal.Zero,
			Max: decimal.NewFromInt(1000),
		},
		Distance: 50,
		SortBy:   SortNewest,
	}
}

// Apply returns the tasks matching f in the order f asks for. The input slice
// is not modified. Unknown sort keys keep the input order.
func (f Filter) Apply(tasks []*Task) []*Task {
	out := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Category != "" && string(t.Category) != f.Category {
			continue
		}
		if f.PostedBy != "" && !t.IsPostedBy(f.PostedBy) {
			continue
		}
		if f.PriceRange != nil && !f.PriceRange.Contains(t.Payment) {
			continue
		}
		out = append(out, t)
	}

	switch f.SortBy {
	case SortNewest:
		slices.SortStableFunc(out, func(a, b *Task) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case SortPriceHigh:
		slices.SortStableFunc(out, func(a, b *Task) int {
			return b.Payment.Cmp(a.Payment)
		})
	case SortPriceLow:
		slices.SortStableFunc(out, func(a, b *Task) int {
			return a.Payment.Cmp(b.Payment)
		})
	}
	return out
}
