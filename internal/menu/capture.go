package menu

import (
	"context"
	"errors"
	"fmt"
	"io"

	"spendlog/internal/core"
	"spendlog/internal/log"
)

// addExpense walks the four capture prompts and appends the composed
// record through the service. A blank line at any prompt abandons the
// entry and returns to the menu; the original validation loops offered
// no way out.
func (r *Runner) addExpense(ctx context.Context) {
	ctx, logger := log.StartOperation(ctx, r.logger, log.OpCapture)

	fmt.Fprintln(r.out)
	headingColor.Fprintln(r.out, "--- Add New Expense ---")
	hintColor.Fprintln(r.out, "(leave any field blank to cancel)")

	date, err := r.promptDate()
	if err != nil {
		r.abandonEntry(ctx, logger, err)
		return
	}

	amount, err := r.promptAmount()
	if err != nil {
		r.abandonEntry(ctx, logger, err)
		return
	}

	category, err := r.promptRequired(r.categoryPrompt)
	if err != nil {
		r.abandonEntry(ctx, logger, err)
		return
	}

	description, err := r.promptRequired("Enter a brief description: ")
	if err != nil {
		r.abandonEntry(ctx, logger, err)
		return
	}

	record := core.Record{
		Date:        date,
		Category:    core.NormalizeCategory(category),
		Amount:      amount,
		Description: description,
	}

	ref, err := r.service.AddEntry(ctx, record)
	if err != nil {
		fields := log.NewFields().
			WithEntry(string(record.Date), record.Category, record.Amount.Cents).
			WithError(err).
			ToSlice()
		logger.ErrorContext(ctx, "Failed to save expense", fields...)
		errorColor.Fprintln(r.out, "Could not save the expense. Please try again.")
		return
	}

	fields := log.NewFields().
		WithEntry(string(record.Date), record.Category, record.Amount.Cents).
		ToSlice()
	logger.InfoContext(ctx, "Expense recorded", append(fields, "ref", ref)...)

	successColor.Fprintln(r.out, "Expense added successfully!")
}

// abandonEntry reports a cancelled capture. Exhausted input falls
// through silently; the main loop prints the exit message.
func (r *Runner) abandonEntry(ctx context.Context, logger *log.Logger, err error) {
	switch {
	case errors.Is(err, ErrCancelled):
		warnColor.Fprintln(r.out, "Entry cancelled.")
	case errors.Is(err, io.EOF):
	default:
		logger.ErrorContext(ctx, "Input read failed", log.FieldError, err)
	}
}

// promptRequired reads one line of free text. A blank line cancels
// the entry.
func (r *Runner) promptRequired(label string) (string, error) {
	text, err := r.prompt(label)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", ErrCancelled
	}
	return text, nil
}

// promptDate loops until it reads a valid calendar date. A blank line
// cancels the entry.
func (r *Runner) promptDate() (core.Date, error) {
	for {
		text, err := r.prompt("Enter date (YYYY-MM-DD): ")
		if err != nil {
			return "", err
		}
		if text == "" {
			return "", ErrCancelled
		}
		date, err := core.ParseDate(text)
		if err == nil {
			return date, nil
		}
		errorColor.Fprintln(r.out, "Invalid date format. Please use YYYY-MM-DD.")
	}
}

// promptAmount loops until it reads a positive amount. A blank line
// cancels the entry.
func (r *Runner) promptAmount() (core.Money, error) {
	for {
		text, err := r.prompt("Enter amount: ")
		if err != nil {
			return core.Money{}, err
		}
		if text == "" {
			return core.Money{}, ErrCancelled
		}
		amount, err := core.ParseAmount(text)
		switch {
		case err == nil:
			return amount, nil
		case errors.Is(err, core.ErrNonPositiveAmount):
			errorColor.Fprintln(r.out, "Amount must be a positive number.")
		default:
			errorColor.Fprintln(r.out, "Invalid amount. Please enter a number.")
		}
	}
}
