package ledger

import (
	"context"

	"spendlog/internal/core"
)

// Ports for outbound storage adapters.
type (
	RecordWriter interface {
		Append(ctx context.Context, r core.Record) (rowRef string, err error)
	}

	RecordReader interface {
		ReadAll(ctx context.Context) ([]core.Record, error)
	}

	// Store combines both sides of a ledger backend.
	Store interface {
		RecordWriter
		RecordReader
	}
)
