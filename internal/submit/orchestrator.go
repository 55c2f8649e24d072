package submit

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	applog "github.com/janisto/guardhire/internal/platform/logging"
	"github.com/janisto/guardhire/internal/registration"
	"github.com/janisto/guardhire/internal/service/marketplace"
	"github.com/janisto/guardhire/internal/ui"
)

const (
	// DefaultLoginPath is where a newly registered company is sent.
	DefaultLoginPath = "/login"

	TitleFailed         = "Registration failed"
	TitleSucceeded      = "Registration successful"
	MsgFallback         = "Something went wrong. Please try again."
	MsgCompanySucceeded = "Your company account has been created. Please log in."
)

// CompanyRegistrar performs the company sign-up call.
type CompanyRegistrar interface {
	RegisterCompany(ctx context.Context, payload any) error
}

// GuardRegistrar signs a guard up and establishes their session. It owns the
// post-registration redirect.
type GuardRegistrar interface {
	RegisterGuard(ctx context.Context, payload *MultipartPayload) error
}

// Orchestrator turns validated records into exactly one outbound call each and reports
// the outcome through the UI collaborators. It never returns the call's error.
type Orchestrator struct {
	api       CompanyRegistrar
	auth      GuardRegistrar
	nav       ui.Navigator
	loginPath string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLoginPath sets where a company is sent after signing up.
func WithLoginPath(path string) Option {
	return func(o *Orchestrator) {
		if path != "" {
			o.loginPath = path
		}
	}
}

// New creates an Orchestrator.
func New(api CompanyRegistrar, auth GuardRegistrar, nav ui.Navigator, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		api:       api,
		auth:      auth,
		nav:       nav,
		loginPath: DefaultLoginPath,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SubmitGuard sends a guard sign-up and reports whether it succeeded. Navigation after
// success is left to the GuardRegistrar.
func (o *Orchestrator) SubmitGuard(
	ctx context.Context, rec *registration.GuardRegistration, setLoading ui.LoadingSetter, notify ui.Notifier,
) bool {
	setLoading = orNoop(setLoading)
	setLoading(true)
	defer setLoading(false)

	applog.LogInfo(ctx, "submission started", zap.String("form", "guard"))
	payload := BuildGuardPayload(rec)
	if err := o.auth.RegisterGuard(ctx, payload); err != nil {
		o.fail(ctx, "guard", err, notify)
		return false
	}
	applog.LogInfo(ctx, "submission succeeded", zap.String("form", "guard"))
	return true
}

// SubmitCompany sends a company sign-up. On success it raises a confirmation toast and
// navigates to the login path.
func (o *Orchestrator) SubmitCompany(
	ctx context.Context, rec *registration.CompanyRegistration, setLoading ui.LoadingSetter, notify ui.Notifier,
) bool {
	setLoading = orNoop(setLoading)
	setLoading(true)
	defer setLoading(false)

	applog.LogInfo(ctx, "submission started", zap.String("form", "company"))
	payload := BuildCompanyPayload(rec)
	if err := o.api.RegisterCompany(ctx, payload); err != nil {
		o.fail(ctx, "company", err, notify)
		return false
	}

	applog.LogAuditEvent(ctx, applog.AuditEvent{
		Action:       "register",
		Actor:        rec.Email,
		ResourceType: "company",
		Result:       "success",
	})
	if notify != nil {
		notify.Notify(ctx, ui.Toast{
			Title:       TitleSucceeded,
			Description: MsgCompanySucceeded,
			Severity:    ui.SeverityDefault,
		})
	}
	if o.nav != nil {
		o.nav.Navigate(ctx, o.loginPath)
	}
	applog.LogInfo(ctx, "submission succeeded", zap.String("form", "company"))
	return true
}

func (o *Orchestrator) fail(ctx context.Context, form string, err error, notify ui.Notifier) {
	applog.LogWarn(ctx, "submission failed", zap.String("form", form), zap.Error(err))
	if notify == nil {
		return
	}
	notify.Notify(ctx, ui.Toast{
		Title:       TitleFailed,
		Description: FailureMessage(err),
		Severity:    ui.SeverityDestructive,
	})
}

// FailureMessage returns the user-facing text for err: the backend's message when it
// sent one, the error text otherwise, and a generic fallback when both are empty.
func FailureMessage(err error) string {
	if err == nil {
		return MsgFallback
	}
	var apiErr *marketplace.APIError
	if errors.As(err, &apiErr) {
		if msg := strings.TrimSpace(apiErr.Message); msg != "" {
			return msg
		}
		return MsgFallback
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return MsgFallback
}

func orNoop(set ui.LoadingSetter) ui.LoadingSetter {
	if set == nil {
		return func(bool) {}
	}
	return set
}
