package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldCount     = "count"
	FieldID        = "id"
	FieldType      = "type"
	FieldCategory  = "category"
	FieldAmount    = "amount"
	FieldBalance   = "balance"
	FieldThreshold = "threshold"
	FieldBackend   = "backend"
	FieldPath      = "path"
	FieldState     = "state"
	FieldKey       = "key"
)

// Components defines standard component names
const (
	ComponentApp        = "app"
	ComponentRepository = "repository"
	ComponentSettings   = "settings"
	ComponentStorage    = "storage"
	ComponentBackend    = "backend"
	ComponentAMQP       = "amqp"
	ComponentWorker     = "worker"
	ComponentCLI        = "cli"
)

// Operations defines standard operation names
const (
	OpAdd      = "add"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpLoad     = "load"
	OpImport   = "import"
	OpExport   = "export"
	OpCheck    = "balance_check"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds the error text; nil errors are skipped.
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithTransaction adds the identifying fields of a transaction. Notes are
// never logged.
func (f LogFields) WithTransaction(id, typ, category, amount string) LogFields {
	f[FieldID] = id
	f[FieldType] = typ
	f[FieldCategory] = category
	f[FieldAmount] = amount
	return f
}

func (f LogFields) WithCount(n int) LogFields {
	f[FieldCount] = n
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
