package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldOperationID = "operation_id"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldDate        = "date"
	FieldMonth       = "month"
	FieldCategory    = "category"
	FieldAmountCents = "amount_cents"
	FieldDescription = "description"
	FieldRow         = "row"
	FieldCount       = "count"
	FieldLedgerPath  = "ledger_path"
	FieldBackend     = "backend"
	FieldDuration    = "duration_ms"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentMenu    = "menu"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentBackend = "backend"
	ComponentConfig  = "config"
)

// Operations defines standard operation names
const (
	OpCapture   = "capture"
	OpList      = "list"
	OpSearch    = "search"
	OpSummarize = "summarize"
	OpAppend    = "append"
	OpRead      = "read"
	OpMirror    = "mirror"
	OpReconcile = "reconcile"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithEntry adds entry-related fields
func (f LogFields) WithEntry(date, category string, amountCents int64) LogFields {
	f[FieldDate] = date
	f[FieldCategory] = category
	f[FieldAmountCents] = amountCents
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
