package logging

import (
	"context"

	"go.uber.org/zap"
)

// AuditEvent describes a security-relevant action taken on behalf of a user.
type AuditEvent struct {
	Action       string // e.g. "register"
	Actor        string // email or user ID; may be empty before an account exists
	ResourceType string // e.g. "guard", "company"
	ResourceID   string
	Result       string // "success" or "failure"
	Details      map[string]any
}

// LogAuditEvent writes a structured audit entry through the request-aware logger.
func LogAuditEvent(ctx context.Context, ev AuditEvent) {
	fields := []zap.Field{
		zap.String("audit.action", ev.Action),
		zap.String("audit.actor", ev.Actor),
		zap.String("audit.resource_type", ev.ResourceType),
		zap.String("audit.resource_id", ev.ResourceID),
		zap.String("audit.result", ev.Result),
	}
	if len(ev.Details) > 0 {
		fields = append(fields, zap.Any("audit.details", ev.Details))
	}
	LoggerFromContext(ctx).Info("Audit event", fields...)
}
