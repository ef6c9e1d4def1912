package core

import "sort"

// CategoryTotal is a category's aggregated amount within one month.
type CategoryTotal struct {
	Name   string
	Amount Money
}

// MonthSummary aggregates the records of one calendar month.
//
// ByCategory preserves first-appearance order. Ranked is sorted by
// amount descending; categories with equal totals keep their
// first-appearance order.
type MonthSummary struct {
	Prefix     string
	Total      Money
	ByCategory []CategoryTotal
	Ranked     []CategoryTotal
}

// Empty reports whether no record fell inside the month.
func (s MonthSummary) Empty() bool {
	return len(s.ByCategory) == 0
}

// Top returns the first n ranked categories, or all of them when
// fewer exist.
func (s MonthSummary) Top(n int) []CategoryTotal {
	if n > len(s.Ranked) {
		n = len(s.Ranked)
	}
	return s.Ranked[:n]
}

// Summarize aggregates every record whose date text starts with the
// given YYYY-MM prefix. Category buckets are keyed by the stored
// category text, case sensitively.
func Summarize(records []Record, prefix string) MonthSummary {
	s := MonthSummary{Prefix: prefix}
	index := make(map[string]int)
	for _, r := range records {
		if !r.Date.InMonth(prefix) {
			continue
		}
		s.Total.Cents += r.Amount.Cents
		i, ok := index[r.Category]
		if !ok {
			i = len(s.ByCategory)
			index[r.Category] = i
			s.ByCategory = append(s.ByCategory, CategoryTotal{Name: r.Category})
		}
		s.ByCategory[i].Amount.Cents += r.Amount.Cents
	}
	s.Ranked = make([]CategoryTotal, len(s.ByCategory))
	copy(s.Ranked, s.ByCategory)
	sort.SliceStable(s.Ranked, func(a, b int) bool {
		return s.Ranked[a].Amount.Cents > s.Ranked[b].Amount.Cents
	})
	return s
}
