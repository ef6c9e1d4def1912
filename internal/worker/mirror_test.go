package worker

import (
	"context"
	"errors"
	"testing"

	"spendlog/internal/amqp"
	"spendlog/internal/core"
)

type fakeMirrorStore struct {
	rows   map[int64]core.Record
	failOn int64
}

func newFakeMirrorStore() *fakeMirrorStore {
	return &fakeMirrorStore{rows: make(map[int64]core.Record)}
}

func (f *fakeMirrorStore) MirrorUpsert(_ context.Context, row int64, rec core.Record) error {
	if f.failOn != 0 && row == f.failOn {
		return errors.New("upsert failed")
	}
	f.rows[row] = rec
	return nil
}

func (f *fakeMirrorStore) MaxMirroredRow(context.Context) (int64, error) {
	var high int64
	for row := range f.rows {
		if row > high {
			high = row
		}
	}
	return high, nil
}

type stubReader struct {
	records []core.Record
	err     error
}

func (s stubReader) ReadAll(context.Context) ([]core.Record, error) {
	return s.records, s.err
}

func ledgerRecords(n int) []core.Record {
	records := make([]core.Record, n)
	for i := range records {
		records[i] = core.Record{
			Date:     "2025-09-01",
			Category: "Food",
			Amount:   core.Money{Cents: int64(100 * (i + 1))},
		}
	}
	return records
}

func TestHandleEntryMessage(t *testing.T) {
	store := newFakeMirrorStore()
	m := NewMirror(store, stubReader{}, 50)

	msg := amqp.NewEntryRecordedMessage(3, core.Record{
		Date:        "2025-09-15",
		Category:    "Transport",
		Amount:      core.Money{Cents: 275},
		Description: "tram",
	})

	if err := m.HandleEntryMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleEntryMessage() error = %v", err)
	}

	rec, ok := store.rows[3]
	if !ok {
		t.Fatal("row 3 not mirrored")
	}
	if rec.Category != "Transport" || rec.Amount.Cents != 275 {
		t.Errorf("mirrored record = %+v", rec)
	}
}

func TestHandleEntryMessageDropsInvalidRow(t *testing.T) {
	store := newFakeMirrorStore()
	m := NewMirror(store, stubReader{}, 50)

	msg := amqp.NewEntryRecordedMessage(0, core.Record{Date: "2025-09-15"})
	if err := m.HandleEntryMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleEntryMessage() error = %v, want nil for dropped message", err)
	}
	if len(store.rows) != 0 {
		t.Errorf("store has %d rows, want 0", len(store.rows))
	}
}

func TestReconcileBackfillsEverything(t *testing.T) {
	store := newFakeMirrorStore()
	m := NewMirror(store, stubReader{records: ledgerRecords(3)}, 50)

	if err := m.Reconcile(context.Background()); err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}

	if len(store.rows) != 3 {
		t.Fatalf("mirrored %d rows, want 3", len(store.rows))
	}
	if store.rows[2].Amount.Cents != 200 {
		t.Errorf("row 2 = %+v", store.rows[2])
	}
}

func TestReconcileResumesFromHighWaterMark(t *testing.T) {
	store := newFakeMirrorStore()
	store.rows[1] = core.Record{Date: "2025-09-01"}
	store.rows[2] = core.Record{Date: "2025-09-01"}

	m := NewMirror(store, stubReader{records: ledgerRecords(5)}, 50)

	if err := m.Reconcile(context.Background()); err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if len(store.rows) != 5 {
		t.Fatalf("mirrored %d rows, want 5", len(store.rows))
	}
	// Rows past the mark carry ledger data, not the pre-seeded stubs
	if store.rows[3].Amount.Cents != 300 {
		t.Errorf("row 3 = %+v", store.rows[3])
	}
}

func TestReconcileHonorsBatchSize(t *testing.T) {
	store := newFakeMirrorStore()
	m := NewMirror(store, stubReader{records: ledgerRecords(5)}, 2)
	ctx := context.Background()

	for _, want := range []int{2, 4, 5} {
		if err := m.Reconcile(ctx); err != nil {
			t.Fatalf("Reconcile() error = %v", err)
		}
		if len(store.rows) != want {
			t.Fatalf("mirrored %d rows, want %d", len(store.rows), want)
		}
	}
}

func TestReconcileNoopWhenCaughtUp(t *testing.T) {
	store := newFakeMirrorStore()
	m := NewMirror(store, stubReader{records: ledgerRecords(2)}, 50)
	ctx := context.Background()

	if err := m.Reconcile(ctx); err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if err := m.Reconcile(ctx); err != nil {
		t.Fatalf("second Reconcile() error = %v", err)
	}
	if len(store.rows) != 2 {
		t.Fatalf("mirrored %d rows, want 2", len(store.rows))
	}
}

func TestReconcileStopsAtFailedRow(t *testing.T) {
	store := newFakeMirrorStore()
	store.failOn = 2
	m := NewMirror(store, stubReader{records: ledgerRecords(3)}, 50)

	err := m.Reconcile(context.Background())
	if err == nil {
		t.Fatal("Reconcile() error = nil, want failure at row 2")
	}
	if _, ok := store.rows[1]; !ok {
		t.Error("row 1 should be mirrored before the failure")
	}
	if _, ok := store.rows[3]; ok {
		t.Error("row 3 must not be mirrored past the gap")
	}
}

func TestReconcileReadFailure(t *testing.T) {
	store := newFakeMirrorStore()
	m := NewMirror(store, stubReader{err: errors.New("ledger unreadable")}, 50)

	if err := m.Reconcile(context.Background()); err == nil {
		t.Fatal("Reconcile() error = nil, want read failure")
	}
}
