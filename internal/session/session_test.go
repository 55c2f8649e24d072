package session

import (
	"context"
	"errors"
	"slices"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	applog "github.com/janisto/guardhire/internal/platform/logging"
	"github.com/janisto/guardhire/internal/registration"
	"github.com/janisto/guardhire/internal/service/marketplace"
	"github.com/janisto/guardhire/internal/submit"
	"github.com/janisto/guardhire/internal/ui"
)

func guardPayload() *submit.MultipartPayload {
	return submit.BuildGuardPayload(&registration.GuardRegistration{
		FullName:       "Jo Bloggs",
		Email:          "jo@example.com",
		Password:       "hunter2hunter2",
		Phone:          "9876543210",
		Role:           registration.RoleCaretaker,
		Experience:     2,
		Location:       "Pune",
		ProfilePicture: registration.NewUpload("me.jpg", "image/jpeg", []byte("jpg")),
	})
}

func observedContext() (context.Context, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return applog.WithLogger(context.Background(), zap.New(core)), logs
}

func TestRegisterGuardUsesBackendRedirect(t *testing.T) {
	api := marketplace.NewMockService()
	api.RedirectTo = "/guard/onboarding"
	keeper := NewKeeper()
	nav := ui.NewRecorder()
	r := NewRegistrar(api, nav, WithSessions(keeper))

	ctx, logs := observedContext()
	if err := r.RegisterGuard(ctx, guardPayload()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := nav.Navigations(); !slices.Equal(got, []string{"/guard/onboarding"}) {
		t.Fatalf("unexpected navigation %v", got)
	}
	if keeper.Len() != 1 {
		t.Fatalf("expected one kept session, got %d", keeper.Len())
	}
	signups := api.GuardSignups()
	if len(signups) != 1 || signups[0].Value["email"][0] != "jo@example.com" {
		t.Fatalf("unexpected transmitted form %v", signups)
	}
	if len(signups[0].File["profilePicture"]) != 1 {
		t.Fatal("expected the picture to be transmitted")
	}

	audits := logs.FilterMessage("Audit event").All()
	if len(audits) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(audits))
	}
	fields := audits[0].ContextMap()
	if fields["audit.result"] != "success" || fields["audit.actor"] != "jo@example.com" || fields["audit.resource_type"] != "guard" {
		t.Fatalf("unexpected audit fields %v", fields)
	}
}

func TestRegisterGuardDefaultRedirect(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{"built-in default", nil, DefaultGuardRedirect},
		{"configured default", []Option{WithDefaultRedirect("/guard/home")}, "/guard/home"},
		{"empty override ignored", []Option{WithDefaultRedirect("")}, DefaultGuardRedirect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav := ui.NewRecorder()
			r := NewRegistrar(marketplace.NewMockService(), nav, tt.opts...)
			if err := r.RegisterGuard(context.Background(), guardPayload()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if nav.RedirectTo() != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, nav.RedirectTo())
			}
		})
	}
}

func TestRegisterGuardPropagatesError(t *testing.T) {
	api := marketplace.NewMockService()
	api.RegisterGuardErr = &marketplace.APIError{Kind: marketplace.APIErrorKindConflict, Status: 409, Message: "Email already registered"}
	keeper := NewKeeper()
	nav := ui.NewRecorder()
	r := NewRegistrar(api, nav, WithSessions(keeper))

	ctx, logs := observedContext()
	err := r.RegisterGuard(ctx, guardPayload())
	var apiErr *marketplace.APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Email already registered" {
		t.Fatalf("expected backend error, got %v", err)
	}
	if keeper.Len() != 0 || len(nav.Navigations()) != 0 {
		t.Fatal("failure must not keep a session or navigate")
	}
	audits := logs.FilterMessage("Audit event").All()
	if len(audits) != 1 || audits[0].ContextMap()["audit.result"] != "failure" {
		t.Fatalf("expected a failure audit entry, got %v", audits)
	}
}

func TestKeeperGet(t *testing.T) {
	k := NewKeeper()
	k.Put(context.Background(), marketplace.Session{Token: "t", UserID: "u"})
	if s, ok := k.Get("t"); !ok || s.UserID != "u" {
		t.Fatalf("unexpected session %+v %v", s, ok)
	}
	if _, ok := k.Get("missing"); ok {
		t.Fatal("expected no session")
	}
}
