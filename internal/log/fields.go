package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldEntity    = "entity"
	FieldEntityID  = "entity_id"
	FieldMonth     = "month"
	FieldAmount    = "amount"
	FieldCount     = "count"
	FieldDuration  = "duration_ms"
	FieldMode      = "mode"
	FieldState     = "state"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentStorage  = "storage"
	ComponentStore    = "store"
	ComponentSnapshot = "snapshot"
	ComponentCloud    = "cloud"
	ComponentSync     = "sync"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentSeed     = "seed"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpExport   = "export"
	OpImport   = "import"
	OpSync     = "sync"
	OpValidate = "validate"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithEntity adds entity type and id fields
func (f LogFields) WithEntity(entity, id string) LogFields {
	f[FieldEntity] = entity
	f[FieldEntityID] = id
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
