package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"slices"
	"strconv"
	"sync"
)

// MockService implements Service in memory for tests and local demo mode. Registrations
// are recorded so tests can inspect exactly what would have been transmitted.
type MockService struct {
	mu        sync.Mutex
	guards    []Guard
	companies []map[string]any
	signups   []*multipart.Form
	nextID    int

	// Errors returned by the corresponding operation when set.
	ListErr            error
	RegisterCompanyErr error
	RegisterGuardErr   error
	// RedirectTo is returned in every guard session when set.
	RedirectTo string
}

// NewMockService creates a mock pre-populated with demo guards.
func NewMockService() *MockService {
	hourly := 25.0
	daily := 180.0
	monthly := 3200.0
	return &MockService{
		guards: []Guard{
			{
				ID:         "g-1001",
				Name:       "Asha Patil",
				Role:       "Security Guard",
				Location:   "Pune",
				HourlyRate: &hourly,
				DailyRate:  &daily,
				Rating:     4.7,
				Experience: 6,
				Skills:     []string{"CCTV monitoring", "First aid"},
				Bio:        "Night shift specialist for residential complexes.",
			},
			{
				ID:          "g-1002",
				Name:        "Rohan Mehta",
				Role:        "Bouncer",
				Location:    "Mumbai",
				MonthlyRate: &monthly,
				Rating:      4.2,
				Experience:  3,
				Skills:      []string{"Crowd control"},
			},
		},
		nextID: 1003,
	}
}

func (m *MockService) ListGuards(_ context.Context) ([]Guard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return slices.Clone(m.guards), nil
}

func (m *MockService) RegisterCompany(_ context.Context, payload any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RegisterCompanyErr != nil {
		return m.RegisterCompanyErr
	}
	// Round-trip through JSON so the recorded body is exactly what the client would send.
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding company payload: %w", err)
	}
	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		return fmt.Errorf("decoding company payload: %w", err)
	}
	m.companies = append(m.companies, body)
	return nil
}

func (m *MockService) RegisterGuard(_ context.Context, body io.Reader, contentType string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RegisterGuardErr != nil {
		return nil, m.RegisterGuardErr
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil || params["boundary"] == "" {
		return nil, &APIError{Kind: APIErrorKindBadRequest, Status: http.StatusBadRequest, Message: "Expected a multipart body", cause: ErrBadRequest}
	}
	form, err := multipart.NewReader(body, params["boundary"]).ReadForm(32 << 20)
	if err != nil {
		return nil, &APIError{Kind: APIErrorKindBadRequest, Status: http.StatusBadRequest, Message: "Malformed multipart body", cause: ErrBadRequest}
	}
	m.signups = append(m.signups, form)

	id := strconv.Itoa(m.nextID)
	m.nextID++
	return &Session{Token: "mock-token-" + id, RedirectTo: m.RedirectTo, UserID: "g-" + id}, nil
}

// Companies returns the JSON bodies received by RegisterCompany.
func (m *MockService) Companies() []map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.companies)
}

// GuardSignups returns the multipart forms received by RegisterGuard.
func (m *MockService) GuardSignups() []*multipart.Form {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.signups)
}

// SetGuards replaces the listed guards.
func (m *MockService) SetGuards(guards []Guard) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.guards = slices.Clone(guards)
}

// Compile-time interface check
var _ Service = (*MockService)(nil)
