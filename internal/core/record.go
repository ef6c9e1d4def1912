package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// DateLayout is the canonical layout for entry dates.
const DateLayout = "2006-01-02"

// MonthLayout is the layout for month prefixes used by summaries.
const MonthLayout = "2006-01"

type (
	// Date holds calendar-date text in YYYY-MM-DD form. Entry capture
	// guarantees canonical zero-padded text; records read back from a
	// ledger carry whatever text the file holds, compared as strings.
	Date string

	// Record is a single ledger entry.
	Record struct {
		Date        Date
		Category    string
		Amount      Money
		Description string
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidMonth  = errors.New("invalid month")
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrNonPositiveAmount marks text that parses as a number but is
	// zero or negative. It matches ErrInvalidAmount under errors.Is so
	// callers that only care about validity need a single check.
	ErrNonPositiveAmount = fmt.Errorf("%w: amount must be positive", ErrInvalidAmount)
)

// ParseDate validates s as a real, zero-padded calendar date.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", ErrInvalidDate
	}
	return Date(s), nil
}

// ParseMonthPrefix validates s as a YYYY-MM month prefix.
func ParseMonthPrefix(s string) (string, error) {
	if _, err := time.Parse(MonthLayout, s); err != nil {
		return "", ErrInvalidMonth
	}
	return s, nil
}

func (d Date) Validate() error {
	_, err := ParseDate(string(d))
	return err
}

// InMonth reports whether the date text starts with the given
// YYYY-MM prefix. Comparison is literal; an unpadded date never
// matches a padded prefix.
func (d Date) InMonth(prefix string) bool {
	return strings.HasPrefix(string(d), prefix)
}

// Validate checks the entry invariant: a parseable date and a
// strictly positive amount. Category and description are free text.
func (r Record) Validate() error {
	if err := r.Date.Validate(); err != nil {
		return err
	}
	return r.Amount.Validate()
}

// NormalizeCategory upper-cases the first rune of the category and
// leaves every other rune untouched ("foOD" becomes "FoOD").
func NormalizeCategory(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// FilterByDate returns the records whose date text equals date exactly.
func FilterByDate(records []Record, date string) []Record {
	var out []Record
	for _, r := range records {
		if string(r.Date) == date {
			out = append(out, r)
		}
	}
	return out
}

// FilterByCategory returns the records whose category equals name
// ignoring case.
func FilterByCategory(records []Record, name string) []Record {
	var out []Record
	for _, r := range records {
		if strings.EqualFold(r.Category, name) {
			out = append(out, r)
		}
	}
	return out
}
