package contextkeys

// contextKey is unexported so keys defined here cannot collide with context
// keys from other packages.
type contextKey string

// String assists debugging when a key shows up in logs.
func (c contextKey) String() string {
	return "membersync context key " + string(c)
}

// RequestIDKey carries the per-request correlation id assigned by the
// transport layer.
const RequestIDKey = contextKey("requestID")

// DomainKey carries the target collection (domain) selected for a sync call.
const DomainKey = contextKey("domain")

// OperationKey carries the name of the sync operation being executed.
const OperationKey = contextKey("operation")

// ComponentKey carries the component name for log enrichment.
const ComponentKey = contextKey("component")
