// Package ui defines the presentation-side collaborators that registration workflows
// report to: transient notifications, navigation, a loading indicator and a diagnostics sink.
package ui

import (
	"context"

	"go.uber.org/zap"

	applog "github.com/janisto/guardhire/internal/platform/logging"
)

// Severity selects how a toast is styled.
type Severity string

const (
	SeverityDefault     Severity = "default"
	SeverityDestructive Severity = "destructive"
)

// Toast is a transient user-facing notification.
type Toast struct {
	Title       string   `json:"title"                 doc:"Short headline"                  example:"Registration failed"`
	Description string   `json:"description,omitempty" doc:"Detail shown under the headline" example:"Email already registered"`
	Severity    Severity `json:"severity"              doc:"Visual severity"                 enum:"default,destructive"`
}

// Notifier displays toasts. It returns nothing; delivery is fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, t Toast)
}

// Navigator transitions the client to another surface. Fire-and-forget.
type Navigator interface {
	Navigate(ctx context.Context, path string)
}

// LoadingSetter toggles the loading indicator of the surface that started an operation.
type LoadingSetter func(loading bool)

// DiagnosticsSink accepts errors that are logged but never shown to the user.
type DiagnosticsSink interface {
	Report(ctx context.Context, msg string, err error)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, t Toast)

func (f NotifierFunc) Notify(ctx context.Context, t Toast) { f(ctx, t) }

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, path string)

func (f NavigatorFunc) Navigate(ctx context.Context, path string) { f(ctx, path) }

// LogDiagnostics reports errors through the request-aware zap logger.
type LogDiagnostics struct {
	Component string
}

// Report logs err at error level.
func (d LogDiagnostics) Report(ctx context.Context, msg string, err error) {
	var fields []zap.Field
	if d.Component != "" {
		fields = append(fields, zap.String("component", d.Component))
	}
	applog.LogError(ctx, msg, err, fields...)
}

var (
	_ Notifier        = NotifierFunc(nil)
	_ Navigator       = NavigatorFunc(nil)
	_ DiagnosticsSink = LogDiagnostics{}
)
