// Package worker keeps the SQLite mirror in step with the CSV ledger.
// Entry events drive the hot path; Reconcile backfills rows whose
// events were lost.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"spendlog/internal/amqp"
	"spendlog/internal/core"
	"spendlog/internal/ledger"
)

// Mirrorer is the slice of the SQLite repository the mirror writes
// through.
type Mirrorer interface {
	MirrorUpsert(ctx context.Context, row int64, rec core.Record) error
	MaxMirroredRow(ctx context.Context) (int64, error)
}

// Mirror copies ledger entries into the SQLite mirror keyed by their
// ledger row number, so replayed events and reconcile passes stay
// idempotent.
type Mirror struct {
	storage   Mirrorer
	source    ledger.RecordReader
	batchSize int
}

func NewMirror(storage Mirrorer, source ledger.RecordReader, batchSize int) *Mirror {
	return &Mirror{
		storage:   storage,
		source:    source,
		batchSize: batchSize,
	}
}

// HandleEntryMessage processes a single entry event from AMQP.
// Events carrying a nonsense row are dropped rather than requeued;
// redelivery cannot fix them and the reconcile pass covers the row.
func (m *Mirror) HandleEntryMessage(ctx context.Context, msg *amqp.EntryRecordedMessage) error {
	slog.InfoContext(ctx, "Processing entry message",
		"row", msg.Row,
		"date", msg.Date)

	if msg.Row <= 0 {
		slog.WarnContext(ctx, "Dropping entry message with invalid row", "row", msg.Row)
		return nil
	}

	if err := m.storage.MirrorUpsert(ctx, msg.Row, msg.Record()); err != nil {
		return fmt.Errorf("mirror entry: %w", err)
	}

	return nil
}

// Reconcile copies ledger rows the mirror has not seen yet.
// This is a backup mechanism in case AMQP messages are lost.
// At most batchSize rows are copied per call; the next run resumes
// where this one stopped. A failed row stops the pass so the
// high-water mark never jumps past a gap.
func (m *Mirror) Reconcile(ctx context.Context) error {
	highWater, err := m.storage.MaxMirroredRow(ctx)
	if err != nil {
		return fmt.Errorf("read mirror high-water mark: %w", err)
	}

	records, err := m.source.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("read ledger: %w", err)
	}

	if int64(len(records)) <= highWater {
		return nil
	}

	pending := records[highWater:]
	if m.batchSize > 0 && len(pending) > m.batchSize {
		pending = pending[:m.batchSize]
	}

	slog.InfoContext(ctx, "Reconciling ledger rows",
		"count", len(pending),
		"from_row", highWater+1)

	for i, rec := range pending {
		row := highWater + int64(i) + 1
		if err := m.storage.MirrorUpsert(ctx, row, rec); err != nil {
			return fmt.Errorf("mirror row %d: %w", row, err)
		}
	}

	slog.InfoContext(ctx, "Reconcile completed", "copied", len(pending))

	return nil
}

// StartupCheck backfills rows missed while the worker was down.
func (m *Mirror) StartupCheck(ctx context.Context) error {
	slog.InfoContext(ctx, "Checking for unmirrored ledger rows on startup")
	return m.Reconcile(ctx)
}
