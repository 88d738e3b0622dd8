package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Actor   string
	Meta    map[string]any
}

// AuditLogger records security-relevant lifecycle events. Implementations
// must never fail the request path.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
