package services

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"spendlog/internal/amqp"
	"spendlog/internal/core"
	"spendlog/internal/ledger"
	"spendlog/internal/log"
)

// Search modes accepted by Search.
const (
	SearchByDate     = "date"
	SearchByCategory = "category"
)

// EventPublisher sends entry events after a durable append. The AMQP
// client satisfies it.
type EventPublisher interface {
	PublishEntryRecorded(ctx context.Context, msg *amqp.EntryRecordedMessage) error
}

// LedgerService orchestrates the interactive operations over a record
// store and an optional event publisher.
type LedgerService struct {
	store     ledger.Store
	publisher EventPublisher
}

func NewLedgerService(store ledger.Store, publisher EventPublisher) *LedgerService {
	return &LedgerService{
		store:     store,
		publisher: publisher,
	}
}

// AddEntry validates the record, appends it through the store, and
// publishes an entry event when a publisher is configured. The store
// itself never validates; this is the single gate that keeps bad
// records out of it.
func (s *LedgerService) AddEntry(ctx context.Context, r core.Record) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}

	ref, err := s.store.Append(ctx, r)
	if err != nil {
		return "", fmt.Errorf("save entry: %w", err)
	}

	s.publishEntryEvent(ctx, ref, r)

	return ref, nil
}

func (s *LedgerService) publishEntryEvent(ctx context.Context, ref string, r core.Record) {
	if s.publisher == nil {
		return
	}
	logger := log.FromContext(ctx)

	row, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to parse row reference", "ref", ref, log.FieldError, err)
		return
	}

	if err := s.publisher.PublishEntryRecorded(ctx, amqp.NewEntryRecordedMessage(row, r)); err != nil {
		logger.ErrorContext(ctx, "Failed to publish entry event",
			log.FieldRow, row, log.FieldError, err)
		// Don't fail the operation - the entry is saved locally
	}
}

// ListEntries returns every stored record in insertion order.
func (s *LedgerService) ListEntries(ctx context.Context) ([]core.Record, error) {
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}
	return records, nil
}

// Search filters records by the given mode. Mode "date" matches the
// date text exactly; mode "category" matches ignoring case. Any other
// mode yields no matches rather than an error.
func (s *LedgerService) Search(ctx context.Context, mode, term string) ([]core.Record, error) {
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}
	switch mode {
	case SearchByDate:
		return core.FilterByDate(records, term), nil
	case SearchByCategory:
		return core.FilterByCategory(records, term), nil
	default:
		return nil, nil
	}
}

// MonthlySummary aggregates the month named by prefix (YYYY-MM).
// An invalid prefix fails before the store is touched.
func (s *LedgerService) MonthlySummary(ctx context.Context, prefix string) (core.MonthSummary, error) {
	prefix, err := core.ParseMonthPrefix(prefix)
	if err != nil {
		return core.MonthSummary{}, err
	}
	records, err := s.store.ReadAll(ctx)
	if err != nil {
		return core.MonthSummary{}, fmt.Errorf("read entries: %w", err)
	}
	return core.Summarize(records, prefix), nil
}

// Close releases whatever the store and publisher hold open.
func (s *LedgerService) Close() error {
	var errs []error

	if c, ok := s.store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}

	if c, ok := s.publisher.(io.Closer); ok {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}

	return nil
}
