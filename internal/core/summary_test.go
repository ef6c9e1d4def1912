package core

import "testing"

func TestSummarize(t *testing.T) {
	records := []Record{
		{Date: "2025-09-01", Category: "Food", Amount: Money{Cents: 1000}},
		{Date: "2025-09-02", Category: "Transport", Amount: Money{Cents: 500}},
		{Date: "2025-10-01", Category: "Food", Amount: Money{Cents: 9900}},
	}
	s := Summarize(records, "2025-09")
	if s.Total.Cents != 1500 {
		t.Fatalf("expected total 1500 cents, got %d", s.Total.Cents)
	}
	if len(s.ByCategory) != 2 {
		t.Fatalf("expected 2 categories, got %+v", s.ByCategory)
	}
	if s.ByCategory[0].Name != "Food" || s.ByCategory[0].Amount.Cents != 1000 {
		t.Fatalf("unexpected first category: %+v", s.ByCategory[0])
	}
	if s.ByCategory[1].Name != "Transport" || s.ByCategory[1].Amount.Cents != 500 {
		t.Fatalf("unexpected second category: %+v", s.ByCategory[1])
	}
	if len(s.Ranked) != 2 || s.Ranked[0].Name != "Food" || s.Ranked[1].Name != "Transport" {
		t.Fatalf("unexpected ranking: %+v", s.Ranked)
	}
}

func TestSummarizeRankingStable(t *testing.T) {
	records := []Record{
		{Date: "2025-09-01", Category: "Bills", Amount: Money{Cents: 500}},
		{Date: "2025-09-02", Category: "Food", Amount: Money{Cents: 500}},
		{Date: "2025-09-03", Category: "Transport", Amount: Money{Cents: 900}},
	}
	s := Summarize(records, "2025-09")
	if len(s.Ranked) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(s.Ranked))
	}
	// equal totals keep first-appearance order
	if s.Ranked[0].Name != "Transport" || s.Ranked[1].Name != "Bills" || s.Ranked[2].Name != "Food" {
		t.Fatalf("unexpected order: %+v", s.Ranked)
	}
}

func TestSummarizeCaseSensitiveBuckets(t *testing.T) {
	// buckets key on stored text; files written elsewhere may mix casing
	records := []Record{
		{Date: "2025-09-01", Category: "Food", Amount: Money{Cents: 100}},
		{Date: "2025-09-02", Category: "FOOD", Amount: Money{Cents: 200}},
	}
	s := Summarize(records, "2025-09")
	if len(s.ByCategory) != 2 {
		t.Fatalf("expected separate buckets, got %+v", s.ByCategory)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, "2025-09")
	if !s.Empty() || s.Total.Cents != 0 {
		t.Fatalf("expected empty summary, got %+v", s)
	}
	s = Summarize([]Record{{Date: "2025-08-31", Category: "Food", Amount: Money{Cents: 100}}}, "2025-09")
	if !s.Empty() {
		t.Fatalf("expected empty summary for non-matching month, got %+v", s)
	}
}

func TestTop(t *testing.T) {
	records := []Record{
		{Date: "2025-09-01", Category: "Coffee", Amount: Money{Cents: 100}},
		{Date: "2025-09-02", Category: "Rent", Amount: Money{Cents: 400}},
		{Date: "2025-09-03", Category: "Food", Amount: Money{Cents: 200}},
		{Date: "2025-09-04", Category: "Bills", Amount: Money{Cents: 300}},
	}
	s := Summarize(records, "2025-09")
	top := s.Top(3)
	if len(top) != 3 || top[0].Name != "Rent" || top[1].Name != "Bills" || top[2].Name != "Food" {
		t.Fatalf("unexpected top: %+v", top)
	}
	if got := s.Top(10); len(got) != 4 {
		t.Fatalf("expected all categories, got %d", len(got))
	}
}
