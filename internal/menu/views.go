package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"spendlog/internal/core"
	"spendlog/internal/log"
)

// viewExpenses lists every stored record in insertion order.
func (r *Runner) viewExpenses(ctx context.Context) {
	ctx, logger := log.StartOperation(ctx, r.logger, log.OpList)

	fmt.Fprintln(r.out)
	headingColor.Fprintln(r.out, "--- All Expenses ---")

	records, err := r.service.ListEntries(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to read expenses", log.FieldError, err)
		errorColor.Fprintln(r.out, "Could not read expenses. Please try again.")
		return
	}
	if len(records) == 0 {
		warnColor.Fprintln(r.out, "No expenses recorded yet.")
		return
	}

	r.printRecords(records)
	logger.InfoContext(ctx, "Listed expenses", log.FieldCount, len(records))
}

// searchExpenses prompts for a mode and a term, then lists the
// matches. The mode is folded to lower case; an unrecognized mode
// reads as finding nothing.
func (r *Runner) searchExpenses(ctx context.Context) {
	ctx, logger := log.StartOperation(ctx, r.logger, log.OpSearch)

	fmt.Fprintln(r.out)
	headingColor.Fprintln(r.out, "--- Search Expenses ---")

	if !r.hasEntries(ctx, logger) {
		return
	}

	mode, err := r.prompt("Search by 'date' or 'category'? ")
	if err != nil {
		return
	}
	mode = strings.ToLower(mode)

	term, err := r.prompt(fmt.Sprintf("Enter the %s to search for: ", mode))
	if err != nil {
		return
	}

	matches, err := r.service.Search(ctx, mode, term)
	if err != nil {
		logger.ErrorContext(ctx, "Search failed", log.FieldError, err)
		errorColor.Fprintln(r.out, "Could not read expenses. Please try again.")
		return
	}

	if len(matches) == 0 {
		warnColor.Fprintln(r.out, "No matching expenses found.")
		return
	}

	fmt.Fprintln(r.out)
	headingColor.Fprintln(r.out, "--- Search Results ---")
	r.printRecords(matches)
	logger.InfoContext(ctx, "Search completed", "mode", mode, log.FieldCount, len(matches))
}

// monthlySummary prompts for a YYYY-MM prefix and reports the month's
// total, the per-category breakdown in first-seen order, and the top
// three categories by amount. With fewer than three categories the
// shortage notice prints first, then however many exist.
func (r *Runner) monthlySummary(ctx context.Context) {
	ctx, logger := log.StartOperation(ctx, r.logger, log.OpSummarize)

	fmt.Fprintln(r.out)
	headingColor.Fprintln(r.out, "--- Monthly Expense Summary ---")

	if !r.hasEntries(ctx, logger) {
		return
	}

	prefix, err := r.prompt("Enter month and year to summarize (e.g., 2025-09): ")
	if err != nil {
		return
	}

	summary, err := r.service.MonthlySummary(ctx, prefix)
	if err != nil {
		if errors.Is(err, core.ErrInvalidMonth) {
			errorColor.Fprintln(r.out, "Invalid month/year format. Please use YYYY-MM.")
			return
		}
		logger.ErrorContext(ctx, "Summary failed", log.FieldError, err)
		errorColor.Fprintln(r.out, "Could not read expenses. Please try again.")
		return
	}

	if summary.Empty() {
		warnColor.Fprintf(r.out, "No expenses found for %s.\n", summary.Prefix)
		return
	}

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Summary for %s:\n", summary.Prefix)
	fmt.Fprintf(r.out, "Total Expenses: $%.2f\n", summary.Total.Dollars())

	fmt.Fprintln(r.out)
	headingColor.Fprintln(r.out, "--- Summary by Category ---")
	for _, ct := range summary.ByCategory {
		fmt.Fprintf(r.out, "%s: $%.2f\n", ct.Name, ct.Amount.Dollars())
	}

	fmt.Fprintln(r.out)
	headingColor.Fprintln(r.out, "--- Top 3 Expense Categories ---")
	if len(summary.ByCategory) < 3 {
		warnColor.Fprintln(r.out, "Not enough data to determine top 3 categories.")
	}
	for i, ct := range summary.Top(3) {
		fmt.Fprintf(r.out, "%d. %s: $%.2f\n", i+1, ct.Name, ct.Amount.Dollars())
	}

	logger.InfoContext(ctx, "Summary computed",
		log.FieldMonth, summary.Prefix,
		log.FieldAmountCents, summary.Total.Cents,
		log.FieldCount, len(summary.ByCategory))
}

// hasEntries reports whether any expenses exist at all, printing the
// shared no-data notice otherwise.
func (r *Runner) hasEntries(ctx context.Context, logger *log.Logger) bool {
	records, err := r.service.ListEntries(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to read expenses", log.FieldError, err)
		errorColor.Fprintln(r.out, "Could not read expenses. Please try again.")
		return false
	}
	if len(records) == 0 {
		warnColor.Fprintln(r.out, "No expenses recorded yet.")
		return false
	}
	return true
}

func (r *Runner) printRecords(records []core.Record) {
	for _, rec := range records {
		fmt.Fprintf(r.out, "Date: %s, Category: %s, Amount: $%.2f, Description: %s\n",
			rec.Date, rec.Category, rec.Amount.Dollars(), rec.Description)
	}
}
