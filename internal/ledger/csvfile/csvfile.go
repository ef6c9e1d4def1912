// Package csvfile implements the canonical ledger backend: a
// comma-separated text file with a fixed four-column header.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"spendlog/internal/core"
	"spendlog/internal/ledger"
)

// Header is the literal first row of every ledger file.
var Header = []string{"Date", "Category", "Amount", "Description"}

// Store persists records to a ledger file. The file path and field
// ordering are carried here as store state, not as package globals.
// Every operation opens and closes the file; nothing is held between
// calls.
type Store struct {
	path string
}

var (
	_ ledger.RecordWriter = (*Store)(nil)
	_ ledger.RecordReader = (*Store)(nil)
)

func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// EnsureInitialized creates the ledger file with its header row when
// absent. Calling it on an existing file is a no-op and never
// truncates.
func (s *Store) EnsureInitialized() error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat ledger %s: %w", s.path, err)
	}
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create ledger directory: %w", err)
		}
	}
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil
		}
		return fmt.Errorf("create ledger %s: %w", s.path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		f.Close()
		return fmt.Errorf("write ledger header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write ledger header: %w", err)
	}
	return f.Close()
}

// Append writes one row in fixed field order and returns its 1-based
// data row index as the reference. The record is assumed to already
// satisfy the entry invariant; no validation happens here.
func (s *Store) Append(_ context.Context, r core.Record) (string, error) {
	if err := s.EnsureInitialized(); err != nil {
		return "", err
	}
	n, err := s.countDataRows()
	if err != nil {
		return "", err
	}
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("open ledger %s: %w", s.path, err)
	}
	w := csv.NewWriter(f)
	row := []string{string(r.Date), r.Category, r.Amount.DecimalString(), r.Description}
	if err := w.Write(row); err != nil {
		f.Close()
		return "", fmt.Errorf("append to ledger %s: %w", s.path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return "", fmt.Errorf("append to ledger %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close ledger %s: %w", s.path, err)
	}
	return strconv.Itoa(n + 1), nil
}

// ReadAll returns every data row in file order. An absent file is an
// empty ledger, not an error. A header mismatch or an unparseable
// amount fails the read with the offending row named.
func (s *Store) ReadAll(_ context.Context) ([]core.Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open ledger %s: %w", s.path, err)
	}
	defer f.Close()

	rd := csv.NewReader(f)
	header, err := rd.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger header: %w", err)
	}
	if !slices.Equal(header, Header) {
		return nil, fmt.Errorf("ledger %s: unexpected header %v", s.path, header)
	}

	var out []core.Record
	rowNum := 1
	for {
		row, err := rd.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			return nil, fmt.Errorf("ledger %s row %d: %w", s.path, rowNum, err)
		}
		amount, err := core.ParseAmount(row[2])
		if err != nil {
			return nil, fmt.Errorf("ledger %s row %d: amount %q: %w", s.path, rowNum, row[2], err)
		}
		out = append(out, core.Record{
			Date:        core.Date(row[0]),
			Category:    row[1],
			Amount:      amount,
			Description: row[3],
		})
	}
	return out, nil
}

// countDataRows counts rows beyond the header. Quoted multi-line
// fields count as one row.
func (s *Store) countDataRows() (int, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return 0, fmt.Errorf("open ledger %s: %w", s.path, err)
	}
	defer f.Close()
	rd := csv.NewReader(f)
	rd.FieldsPerRecord = -1
	n := -1 // header does not count
	for {
		if _, err := rd.Read(); err != nil {
			if err == io.EOF {
				break
			}
			return 0, fmt.Errorf("scan ledger %s: %w", s.path, err)
		}
		n++
	}
	if n < 0 {
		n = 0
	}
	return n, nil
}
