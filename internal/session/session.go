// Package session signs guards up against the marketplace and keeps the sessions the
// backend issues.
package session

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	applog "github.com/janisto/guardhire/internal/platform/logging"
	"github.com/janisto/guardhire/internal/registration"
	"github.com/janisto/guardhire/internal/service/marketplace"
	"github.com/janisto/guardhire/internal/submit"
	"github.com/janisto/guardhire/internal/ui"
)

// DefaultGuardRedirect is used when the backend does not say where a new guard should go.
const DefaultGuardRedirect = "/guard/dashboard"

// SignupService is the marketplace call a Registrar depends on.
type SignupService interface {
	RegisterGuard(ctx context.Context, body io.Reader, contentType string) (*marketplace.Session, error)
}

// Sessions stores established sessions.
type Sessions interface {
	Put(ctx context.Context, s marketplace.Session)
}

// Keeper is an in-memory Sessions store keyed by token.
type Keeper struct {
	mu      sync.RWMutex
	byToken map[string]marketplace.Session
}

// NewKeeper returns an empty Keeper.
func NewKeeper() *Keeper {
	return &Keeper{byToken: map[string]marketplace.Session{}}
}

// Put stores s under its token, replacing any earlier session for it.
func (k *Keeper) Put(_ context.Context, s marketplace.Session) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.byToken[s.Token] = s
}

// Get returns the session for token.
func (k *Keeper) Get(token string) (marketplace.Session, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	s, ok := k.byToken[token]
	return s, ok
}

// Len reports how many sessions are kept.
func (k *Keeper) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.byToken)
}

// Registrar performs a guard sign-up, keeps the resulting session and sends the user on.
// It implements submit.GuardRegistrar.
type Registrar struct {
	api             SignupService
	sessions        Sessions
	nav             ui.Navigator
	defaultRedirect string
}

// Option configures a Registrar.
type Option func(*Registrar)

// WithSessions sets where established sessions are kept.
func WithSessions(s Sessions) Option {
	return func(r *Registrar) {
		r.sessions = s
	}
}

// WithDefaultRedirect sets the redirect used when the backend names none.
func WithDefaultRedirect(path string) Option {
	return func(r *Registrar) {
		if path != "" {
			r.defaultRedirect = path
		}
	}
}

// NewRegistrar creates a Registrar. Without WithSessions it keeps sessions in a fresh Keeper.
func NewRegistrar(api SignupService, nav ui.Navigator, opts ...Option) *Registrar {
	r := &Registrar{
		api:             api,
		nav:             nav,
		defaultRedirect: DefaultGuardRedirect,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.sessions == nil {
		r.sessions = NewKeeper()
	}
	return r
}

// RegisterGuard transmits payload, keeps the session and navigates to the backend's
// redirect target, or to the default when the backend sent none.
func (r *Registrar) RegisterGuard(ctx context.Context, payload *submit.MultipartPayload) error {
	email, _ := payload.Value(registration.FieldEmail)
	role, _ := payload.Value(registration.FieldRole)

	body, contentType, err := payload.Encode()
	if err != nil {
		return fmt.Errorf("encoding guard registration: %w", err)
	}

	sess, err := r.api.RegisterGuard(ctx, body, contentType)
	if err != nil {
		applog.LogAuditEvent(ctx, applog.AuditEvent{
			Action:       "register",
			Actor:        email,
			ResourceType: "guard",
			Result:       "failure",
		})
		return err
	}

	r.sessions.Put(ctx, *sess)
	applog.LogAuditEvent(ctx, applog.AuditEvent{
		Action:       "register",
		Actor:        email,
		ResourceType: "guard",
		ResourceID:   sess.UserID,
		Result:       "success",
		Details:      map[string]any{"role": role},
	})

	target := sess.RedirectTo
	if target == "" {
		target = r.defaultRedirect
	}
	applog.LogDebug(ctx, "guard session established", zap.String("redirect_to", target))
	if r.nav != nil {
		r.nav.Navigate(ctx, target)
	}
	return nil
}

var (
	_ submit.GuardRegistrar = (*Registrar)(nil)
	_ Sessions              = (*Keeper)(nil)
	_ SignupService         = (marketplace.Service)(nil)
)
