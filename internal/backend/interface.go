package backend

import (
	"context"

	"spendlog/internal/core"
)

// Backend represents a unified backend interface that provides all necessary operations
type Backend interface {
	AddEntry(ctx context.Context, r core.Record) (string, error)
	ListEntries(ctx context.Context) ([]core.Record, error)
	Search(ctx context.Context, mode, term string) ([]core.Record, error)
	MonthlySummary(ctx context.Context, prefix string) (core.MonthSummary, error)
}

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult contains the backend instance and optional cleanup function
type BackendResult struct {
	Backend Backend
	Cleanup CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates a backend instance based on the provided config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Backend type
	Type BackendType

	// CSV specific
	LedgerPath string

	// SQLite specific
	SQLiteDBPath string

	// AMQP event publishing, used by the csv backend only
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// BackendType represents the type of backend
type BackendType string

const (
	CSVBackend    BackendType = "csv"
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case CSVBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
