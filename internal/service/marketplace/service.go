package marketplace

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Service errors
var (
	ErrBadRequest  = errors.New("marketplace rejected the request")
	ErrConflict    = errors.New("marketplace resource already exists")
	ErrNotFound    = errors.New("marketplace resource not found")
	ErrRateLimited = errors.New("marketplace rate limit exceeded")
	ErrUpstream    = errors.New("marketplace upstream error")
	ErrUnavailable = errors.New("marketplace unavailable")
)

// APIErrorKind classifies marketplace failures.
type APIErrorKind string

const (
	APIErrorKindBadRequest  APIErrorKind = "bad_request"
	APIErrorKindConflict    APIErrorKind = "conflict"
	APIErrorKindNotFound    APIErrorKind = "not_found"
	APIErrorKindRateLimited APIErrorKind = "rate_limited"
	APIErrorKindUpstream    APIErrorKind = "upstream"
	APIErrorKindUnavailable APIErrorKind = "unavailable"
)

// APIError is returned for every failed marketplace call. Message is the human-readable
// text the backend sent, or a generic description when it sent none.
type APIError struct {
	Kind       APIErrorKind
	Status     int
	Message    string
	RetryAfter string
	cause      error
}

func (e *APIError) Error() string {
	if e == nil {
		return "marketplace api error"
	}
	if e.Message == "" {
		return fmt.Sprintf("marketplace api error (kind=%s status=%d)", e.Kind, e.Status)
	}
	return fmt.Sprintf("marketplace api error (kind=%s status=%d): %s", e.Kind, e.Status, e.Message)
}

// Unwrap enables errors.Is/As against sentinel service errors.
func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Guard is a guard profile as listed by the marketplace.
type Guard struct {
	ID                string
	Name              string
	Role              string
	Location          string
	HourlyRate        *float64
	DailyRate         *float64
	MonthlyRate       *float64
	Rating            float64
	Experience        float64
	Skills            []string
	Bio               string
	ProfilePictureURL string
}

// Session is what the marketplace hands back after a guard signs up.
type Session struct {
	Token      string
	RedirectTo string
	UserID     string
}

// Service defines marketplace API operations.
type Service interface {
	ListGuards(ctx context.Context) ([]Guard, error)
	// RegisterCompany posts payload as JSON.
	RegisterCompany(ctx context.Context, payload any) error
	// RegisterGuard posts an already encoded multipart body.
	RegisterGuard(ctx context.Context, body io.Reader, contentType string) (*Session, error)
}
