package registration

import "github.com/janisto/guardhire/internal/ui"

// SubmissionResult is the UI state produced by a successful submission.
type SubmissionResult struct {
	OK                 bool       `json:"ok"                   doc:"Whether the registration went through"`
	Notifications      []ui.Toast `json:"notifications"        doc:"Toasts to show, in order"`
	RedirectTo         string     `json:"redirectTo,omitempty" doc:"Where the client should navigate next" example:"/login"`
	LoadingTransitions []bool     `json:"loadingTransitions"   doc:"Loading flag values in the order they were set"`
}

// SubmissionOutput for POST /register/* (201 Created)
type SubmissionOutput struct {
	Body SubmissionResult
}
