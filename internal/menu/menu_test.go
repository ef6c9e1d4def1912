package menu

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"spendlog/internal/core"
	"spendlog/internal/ledger/memory"
	"spendlog/internal/services"
)

func disableColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

// runSession feeds the scripted lines to a fresh runner and returns
// the full terminal transcript.
func runSession(t *testing.T, svc Service, script string) string {
	t.Helper()
	disableColor(t)
	var out bytes.Buffer
	r := NewRunner(strings.NewReader(script), &out, svc, nil)
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v\noutput:\n%s", err, out.String())
	}
	return out.String()
}

func seededService(t *testing.T, records ...core.Record) *services.LedgerService {
	t.Helper()
	svc := services.NewLedgerService(memory.New(), nil)
	for _, r := range records {
		if _, err := svc.AddEntry(context.Background(), r); err != nil {
			t.Fatalf("seed entry: %v", err)
		}
	}
	return svc
}

func wantContains(t *testing.T, out, substr string) {
	t.Helper()
	if !strings.Contains(out, substr) {
		t.Fatalf("output missing %q\noutput:\n%s", substr, out)
	}
}

func wantNotContains(t *testing.T, out, substr string) {
	t.Helper()
	if strings.Contains(out, substr) {
		t.Fatalf("output should not contain %q\noutput:\n%s", substr, out)
	}
}

func TestRunExit(t *testing.T) {
	out := runSession(t, seededService(t), "5\n")

	wantContains(t, out, "--- Personal Expense Tracker ---")
	wantContains(t, out, "1. Add a new expense")
	wantContains(t, out, "5. Exit")
	wantContains(t, out, "Exiting application. Goodbye!")
}

func TestRunInvalidChoice(t *testing.T) {
	out := runSession(t, seededService(t), "9\nx\n5\n")

	if n := strings.Count(out, "Invalid choice. Please enter a number from 1 to 5."); n != 2 {
		t.Fatalf("expected 2 rejections, got %d\noutput:\n%s", n, out)
	}
	// Menu reprints after every rejection
	if n := strings.Count(out, "--- Personal Expense Tracker ---"); n != 3 {
		t.Fatalf("expected menu printed 3 times, got %d", n)
	}
}

func TestRunExhaustedInputExitsCleanly(t *testing.T) {
	out := runSession(t, seededService(t), "")
	wantContains(t, out, "Exiting application. Goodbye!")
}

func TestAddExpenseThenView(t *testing.T) {
	script := "1\n" +
		"2025-09-15\n" +
		"12.50\n" +
		"food\n" +
		"coffee beans\n" +
		"2\n" +
		"5\n"
	out := runSession(t, seededService(t), script)

	wantContains(t, out, "--- Add New Expense ---")
	wantContains(t, out, "(leave any field blank to cancel)")
	wantContains(t, out, "Enter date (YYYY-MM-DD): ")
	wantContains(t, out, "Enter amount: ")
	wantContains(t, out, "Enter category (e.g., Food, Transport, Bills): ")
	wantContains(t, out, "Enter a brief description: ")
	wantContains(t, out, "Expense added successfully!")
	wantContains(t, out, "--- All Expenses ---")
	wantContains(t, out, "Date: 2025-09-15, Category: Food, Amount: $12.50, Description: coffee beans")
}

func TestAddExpenseReprompts(t *testing.T) {
	script := "1\n" +
		"2025-13-01\n" + // impossible month
		"09-15-2025\n" + // wrong field order
		"2025-09-15\n" +
		"abc\n" + // not a number
		"-5\n" + // negative
		"0\n" + // zero
		"5.5\n" +
		"Misc\n" +
		"odds and ends\n" +
		"5\n"
	out := runSession(t, seededService(t), script)

	if n := strings.Count(out, "Invalid date format. Please use YYYY-MM-DD."); n != 2 {
		t.Fatalf("expected 2 date rejections, got %d\noutput:\n%s", n, out)
	}
	wantContains(t, out, "Invalid amount. Please enter a number.")
	if n := strings.Count(out, "Amount must be a positive number."); n != 2 {
		t.Fatalf("expected 2 non-positive rejections, got %d\noutput:\n%s", n, out)
	}
	wantContains(t, out, "Expense added successfully!")
}

func TestAddExpenseCancelAtDate(t *testing.T) {
	out := runSession(t, seededService(t), "1\n\n5\n")

	wantContains(t, out, "Entry cancelled.")
	wantNotContains(t, out, "Expense added successfully!")
}

func TestAddExpenseCancelAtAmount(t *testing.T) {
	out := runSession(t, seededService(t), "1\n2025-09-15\n\n5\n")

	wantContains(t, out, "Entry cancelled.")
	wantNotContains(t, out, "Expense added successfully!")
}

func TestAddExpenseCancelAtCategory(t *testing.T) {
	svc := seededService(t)
	out := runSession(t, svc, "1\n2025-09-15\n5.5\n\n5\n")

	wantContains(t, out, "Entry cancelled.")
	wantNotContains(t, out, "Expense added successfully!")

	records, err := svc.ListEntries(context.Background())
	if err != nil || len(records) != 0 {
		t.Fatalf("cancelled entry must not be written: %d records (err=%v)", len(records), err)
	}
}

func TestAddExpenseCancelAtDescription(t *testing.T) {
	svc := seededService(t)
	out := runSession(t, svc, "1\n2025-09-15\n5.5\nFood\n\n5\n")

	wantContains(t, out, "Entry cancelled.")
	wantNotContains(t, out, "Expense added successfully!")

	records, err := svc.ListEntries(context.Background())
	if err != nil || len(records) != 0 {
		t.Fatalf("cancelled entry must not be written: %d records (err=%v)", len(records), err)
	}
}

func TestViewEmptyStore(t *testing.T) {
	out := runSession(t, seededService(t), "2\n5\n")

	wantContains(t, out, "No expenses recorded yet.")
	wantNotContains(t, out, "Date: ")
}

func TestSearchByDate(t *testing.T) {
	svc := seededService(t,
		core.Record{Date: "2025-09-01", Category: "Food", Amount: core.Money{Cents: 1000}, Description: "market"},
		core.Record{Date: "2025-09-02", Category: "Transport", Amount: core.Money{Cents: 500}, Description: "bus"},
	)
	out := runSession(t, svc, "3\ndate\n2025-09-01\n5\n")

	wantContains(t, out, "Search by 'date' or 'category'? ")
	wantContains(t, out, "Enter the date to search for: ")
	wantContains(t, out, "--- Search Results ---")
	wantContains(t, out, "Date: 2025-09-01, Category: Food, Amount: $10.00, Description: market")
	wantNotContains(t, out, "Date: 2025-09-02")
}

func TestSearchByCategoryIgnoresCase(t *testing.T) {
	svc := seededService(t,
		core.Record{Date: "2025-09-01", Category: "Food", Amount: core.Money{Cents: 1000}},
	)
	out := runSession(t, svc, "3\nCATEGORY\nfood\n5\n")

	wantContains(t, out, "Enter the category to search for: ")
	wantContains(t, out, "--- Search Results ---")
	wantContains(t, out, "Category: Food")
}

func TestSearchUnknownModeFindsNothing(t *testing.T) {
	svc := seededService(t,
		core.Record{Date: "2025-09-01", Category: "Food", Amount: core.Money{Cents: 1000}},
	)
	out := runSession(t, svc, "3\namount\n10\n5\n")

	wantContains(t, out, "Enter the amount to search for: ")
	wantContains(t, out, "No matching expenses found.")
	wantNotContains(t, out, "--- Search Results ---")
}

func TestSearchEmptyStoreSkipsPrompts(t *testing.T) {
	out := runSession(t, seededService(t), "3\n5\n")

	wantContains(t, out, "No expenses recorded yet.")
	wantNotContains(t, out, "Search by 'date' or 'category'? ")
}

func TestMonthlySummaryTwoCategories(t *testing.T) {
	svc := seededService(t,
		core.Record{Date: "2025-09-01", Category: "Food", Amount: core.Money{Cents: 1000}},
		core.Record{Date: "2025-09-02", Category: "Transport", Amount: core.Money{Cents: 500}},
		core.Record{Date: "2025-10-01", Category: "Food", Amount: core.Money{Cents: 9900}},
	)
	out := runSession(t, svc, "4\n2025-09\n5\n")

	wantContains(t, out, "--- Monthly Expense Summary ---")
	wantContains(t, out, "Summary for 2025-09:")
	wantContains(t, out, "Total Expenses: $15.00")
	wantContains(t, out, "--- Summary by Category ---")
	wantContains(t, out, "Food: $10.00")
	wantContains(t, out, "Transport: $5.00")
	wantContains(t, out, "--- Top 3 Expense Categories ---")
	wantContains(t, out, "Not enough data to determine top 3 categories.")
	wantContains(t, out, "1. Food: $10.00")
	wantContains(t, out, "2. Transport: $5.00")

	// The shortage notice prints before the partial ranking, never instead of it
	notice := strings.Index(out, "Not enough data to determine top 3 categories.")
	first := strings.Index(out, "1. Food: $10.00")
	if notice == -1 || first == -1 || notice > first {
		t.Fatalf("notice must precede the partial ranking\noutput:\n%s", out)
	}
}

func TestMonthlySummaryThreeCategories(t *testing.T) {
	svc := seededService(t,
		core.Record{Date: "2025-09-01", Category: "Food", Amount: core.Money{Cents: 3000}},
		core.Record{Date: "2025-09-02", Category: "Transport", Amount: core.Money{Cents: 2000}},
		core.Record{Date: "2025-09-03", Category: "Bills", Amount: core.Money{Cents: 4000}},
		core.Record{Date: "2025-09-04", Category: "Games", Amount: core.Money{Cents: 1000}},
	)
	out := runSession(t, svc, "4\n2025-09\n5\n")

	wantNotContains(t, out, "Not enough data to determine top 3 categories.")
	wantContains(t, out, "1. Bills: $40.00")
	wantContains(t, out, "2. Food: $30.00")
	wantContains(t, out, "3. Transport: $20.00")
	wantNotContains(t, out, "4. Games")
}

func TestMonthlySummaryInvalidPrefix(t *testing.T) {
	svc := seededService(t,
		core.Record{Date: "2025-09-01", Category: "Food", Amount: core.Money{Cents: 1000}},
	)
	out := runSession(t, svc, "4\nSeptember 2025\n5\n")

	wantContains(t, out, "Invalid month/year format. Please use YYYY-MM.")
	wantNotContains(t, out, "Summary for")
}

func TestMonthlySummaryEmptyMonth(t *testing.T) {
	svc := seededService(t,
		core.Record{Date: "2025-09-01", Category: "Food", Amount: core.Money{Cents: 1000}},
	)
	out := runSession(t, svc, "4\n2024-01\n5\n")

	wantContains(t, out, "No expenses found for 2024-01.")
	wantNotContains(t, out, "Total Expenses:")
}

type failingService struct{ err error }

func (f failingService) AddEntry(context.Context, core.Record) (string, error) { return "", f.err }
func (f failingService) ListEntries(context.Context) ([]core.Record, error)    { return nil, f.err }
func (f failingService) Search(context.Context, string, string) ([]core.Record, error) {
	return nil, f.err
}
func (f failingService) MonthlySummary(context.Context, string) (core.MonthSummary, error) {
	return core.MonthSummary{}, f.err
}

func TestStorageFailureDoesNotBreakTheLoop(t *testing.T) {
	svc := failingService{err: errors.New("disk unplugged")}
	out := runSession(t, svc, "2\n5\n")

	wantContains(t, out, "Could not read expenses. Please try again.")
	// The loop survives and still offers the menu
	wantContains(t, out, "Exiting application. Goodbye!")
}

func TestSaveFailureReportsAndContinues(t *testing.T) {
	svc := failingService{err: errors.New("disk unplugged")}
	out := runSession(t, svc, "1\n2025-09-15\n5.5\nFood\nlunch\n5\n")

	wantContains(t, out, "Could not save the expense. Please try again.")
	wantContains(t, out, "Exiting application. Goodbye!")
}
