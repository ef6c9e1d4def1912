// Package menu implements the interactive terminal loop: a fixed
// five-choice menu driving entry capture, listing, search and the
// monthly summary over the ledger service.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"spendlog/assets"
	"spendlog/internal/core"
	"spendlog/internal/log"
)

// ErrCancelled reports that the user abandoned entry capture by
// submitting a blank line at a required prompt.
var ErrCancelled = errors.New("entry cancelled")

// Service is the operation surface the menu drives.
type Service interface {
	AddEntry(ctx context.Context, r core.Record) (string, error)
	ListEntries(ctx context.Context) ([]core.Record, error)
	Search(ctx context.Context, mode, term string) ([]core.Record, error)
	MonthlySummary(ctx context.Context, prefix string) (core.MonthSummary, error)
}

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	hintColor    = color.New(color.Faint)
)

// Runner drives the menu over a line-oriented terminal.
type Runner struct {
	in             *bufio.Scanner
	out            io.Writer
	service        Service
	logger         *log.Logger
	categoryPrompt string
}

// NewRunner wires the menu to its input, output and service. A nil
// logger discards log output.
func NewRunner(in io.Reader, out io.Writer, service Service, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Runner{
		in:             bufio.NewScanner(in),
		out:            out,
		service:        service,
		logger:         logger.WithComponent(log.ComponentMenu),
		categoryPrompt: categoryPrompt(),
	}
}

// categoryPrompt builds the capture prompt from the embedded category
// suggestions.
func categoryPrompt() string {
	suggestions := assets.SuggestedCategories()
	if len(suggestions) == 0 {
		return "Enter category: "
	}
	return fmt.Sprintf("Enter category (e.g., %s): ", strings.Join(suggestions, ", "))
}

// Run repeats the menu until the user picks exit, input runs out, or
// the context is cancelled. Exhausted input counts as a normal exit so
// piped sessions end cleanly.
func (r *Runner) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(r.out)
		headingColor.Fprintln(r.out, "--- Personal Expense Tracker ---")
		fmt.Fprintln(r.out, "1. Add a new expense")
		fmt.Fprintln(r.out, "2. View all expenses")
		fmt.Fprintln(r.out, "3. Search expenses")
		fmt.Fprintln(r.out, "4. Get monthly summary & analysis")
		fmt.Fprintln(r.out, "5. Exit")

		choice, err := r.prompt("Enter your choice: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out)
				successColor.Fprintln(r.out, "Exiting application. Goodbye!")
				return nil
			}
			return fmt.Errorf("read menu choice: %w", err)
		}

		switch choice {
		case "1":
			r.addExpense(ctx)
		case "2":
			r.viewExpenses(ctx)
		case "3":
			r.searchExpenses(ctx)
		case "4":
			r.monthlySummary(ctx)
		case "5":
			successColor.Fprintln(r.out, "Exiting application. Goodbye!")
			return nil
		default:
			errorColor.Fprintln(r.out, "Invalid choice. Please enter a number from 1 to 5.")
		}
	}
}

// prompt writes the label and returns the next sanitized input line.
func (r *Runner) prompt(label string) (string, error) {
	fmt.Fprint(r.out, label)
	return r.readLine()
}

// readLine returns the next line with control characters removed and
// whitespace trimmed. io.EOF reports exhausted input.
func (r *Runner) readLine() (string, error) {
	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return sanitizeInput(r.in.Text()), nil
}

// sanitizeInput removes potentially dangerous characters and trims whitespace
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	// Remove control characters except tab, newline, carriage return
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1 // remove character
		}
		return r
	}, s)
	return result
}
