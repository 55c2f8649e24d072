package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/fxamacker/cbor/v2"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	applog "github.com/janisto/guardhire/internal/platform/logging"
)

// DefaultBaseURL is the marketplace API used when none is configured.
const DefaultBaseURL = "http://localhost:5000/api"

const (
	defaultUserAgent = "guardhire"
	acceptHeader     = "application/json, application/cbor"
	contentTypeJSON  = "application/json"
	contentTypeCBOR  = "application/cbor"
	maxErrorBody     = 64 << 10

	pathGuards          = "/guards"
	pathRegisterCompany = "/auth/register/company"
	pathRegisterGuard   = "/auth/register/guard"
)

// Client implements Service using the marketplace REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithToken sets the Bearer token for authenticated requests.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a new marketplace API client.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		httpClient: httpClient,
		baseURL:    DefaultBaseURL,
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchOptions describes one marketplace call. JSON takes precedence over Body; the
// Content-Type header follows from whichever is set.
type FetchOptions struct {
	Method      string
	JSON        any
	Body        io.Reader
	ContentType string
}

// Fetch performs a request against path and decodes a successful response into out,
// which may be nil. Every failure is an *APIError.
func (c *Client) Fetch(ctx context.Context, path string, opts FetchOptions, out any) error {
	resp, err := c.doRequest(ctx, path, opts)
	if err != nil {
		applog.LogWarn(ctx, "marketplace request failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return &APIError{
			Kind:    APIErrorKindUnavailable,
			Message: "The marketplace service is unavailable. Please try again later.",
			cause:   errors.Join(ErrUnavailable, err),
		}
	}
	defer func() { _ = resp.Body.Close() }()

	return c.decodeResponse(ctx, resp, out)
}

func (c *Client) doRequest(ctx context.Context, path string, opts FetchOptions) (*http.Response, error) {
	method := opts.Method
	body := opts.Body
	contentType := opts.ContentType
	if opts.JSON != nil {
		data, err := json.Marshal(opts.JSON)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = contentTypeJSON
	}
	if method == "" {
		method = http.MethodGet
		if body != nil {
			method = http.MethodPost
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if reqID := chimiddleware.GetReqID(ctx); reqID != "" {
		req.Header.Set(chimiddleware.RequestIDHeader, reqID)
	}
	if method != http.MethodGet && method != http.MethodHead {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	return c.httpClient.Do(req)
}

func (c *Client) decodeResponse(ctx context.Context, resp *http.Response, target any) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if target == nil || resp.StatusCode == http.StatusNoContent {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return upstreamDecodeError(resp, fmt.Errorf("reading marketplace response: %w", err))
		}
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		if err := unmarshalBody(resp.Header.Get("Content-Type"), data, target); err != nil {
			return upstreamDecodeError(resp, fmt.Errorf("decoding marketplace response: %w", err))
		}
		return nil
	}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{
		Status:     resp.StatusCode,
		Message:    errorMessage(resp, data),
		RetryAfter: strings.TrimSpace(resp.Header.Get("Retry-After")),
	}

	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		apiErr.Kind, apiErr.cause = APIErrorKindBadRequest, ErrBadRequest
	case http.StatusConflict:
		apiErr.Kind, apiErr.cause = APIErrorKindConflict, ErrConflict
	case http.StatusNotFound:
		apiErr.Kind, apiErr.cause = APIErrorKindNotFound, ErrNotFound
	case http.StatusTooManyRequests:
		apiErr.Kind, apiErr.cause = APIErrorKindRateLimited, ErrRateLimited
		applog.LogWarn(ctx, "marketplace rate limit exceeded",
			zap.Int("status", resp.StatusCode),
			zap.String("Retry-After", apiErr.RetryAfter),
		)
		return apiErr
	default:
		apiErr.Kind, apiErr.cause = APIErrorKindUpstream, ErrUpstream
	}

	applog.LogWarn(ctx, "marketplace returned an error",
		zap.Int("status", resp.StatusCode),
		zap.String("kind", string(apiErr.Kind)),
		zap.String("message", apiErr.Message),
	)
	return apiErr
}

// ListGuards returns every listed guard. An empty or null body yields an empty list.
func (c *Client) ListGuards(ctx context.Context) ([]Guard, error) {
	var wire []guardWire
	if err := c.Fetch(ctx, pathGuards, FetchOptions{Method: http.MethodGet}, &wire); err != nil {
		return nil, err
	}
	guards := make([]Guard, len(wire))
	for i, g := range wire {
		guards[i] = g.toGuard()
	}
	return guards, nil
}

// RegisterCompany creates a company account.
func (c *Client) RegisterCompany(ctx context.Context, payload any) error {
	return c.Fetch(ctx, pathRegisterCompany, FetchOptions{Method: http.MethodPost, JSON: payload}, nil)
}

// RegisterGuard creates a guard account and returns the session it establishes.
func (c *Client) RegisterGuard(ctx context.Context, body io.Reader, contentType string) (*Session, error) {
	var wire sessionWire
	opts := FetchOptions{Method: http.MethodPost, Body: body, ContentType: contentType}
	if err := c.Fetch(ctx, pathRegisterGuard, opts, &wire); err != nil {
		return nil, err
	}
	return &Session{
		Token:      wire.Token,
		RedirectTo: wire.RedirectTo,
		UserID:     string(wire.UserID),
	}, nil
}

func isCBOR(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == contentTypeCBOR || strings.HasSuffix(mt, "+cbor")
}

func unmarshalBody(contentType string, data []byte, target any) error {
	if isCBOR(contentType) {
		return cbor.Unmarshal(data, target)
	}
	return json.Unmarshal(data, target)
}

// errorMessage extracts the backend's message, falling back to the status text.
func errorMessage(resp *http.Response, data []byte) string {
	var body errorBody
	if len(bytes.TrimSpace(data)) > 0 && unmarshalBody(resp.Header.Get("Content-Type"), data, &body) == nil {
		if msg := strings.TrimSpace(body.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(body.Error); msg != "" {
			return msg
		}
	}
	return http.StatusText(resp.StatusCode)
}

func upstreamDecodeError(resp *http.Response, err error) *APIError {
	return &APIError{
		Kind:    APIErrorKindUpstream,
		Status:  resp.StatusCode,
		Message: "The marketplace sent an unreadable response.",
		cause:   errors.Join(ErrUpstream, err),
	}
}

// Compile-time interface check
var _ Service = (*Client)(nil)
