package ui

import (
	"context"
	"slices"
	"sync"
)

// Recorder captures everything a workflow reports so an HTTP handler can render it as a
// response. It implements Notifier and Navigator; Loading returns its LoadingSetter.
type Recorder struct {
	mu         sync.Mutex
	toasts     []Toast
	navigation []string
	loading    []bool
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Notify records t.
func (r *Recorder) Notify(_ context.Context, t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

// Navigate records path as a navigation target.
func (r *Recorder) Navigate(_ context.Context, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.navigation = append(r.navigation, path)
}

// Loading returns a LoadingSetter that records each transition.
func (r *Recorder) Loading() LoadingSetter {
	return func(loading bool) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.loading = append(r.loading, loading)
	}
}

// Toasts returns the recorded toasts in order.
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.toasts)
}

// LastToast returns the most recent toast, if any.
func (r *Recorder) LastToast() (Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return Toast{}, false
	}
	return r.toasts[len(r.toasts)-1], true
}

// Navigations returns every navigation target in order.
func (r *Recorder) Navigations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.navigation)
}

// RedirectTo returns the last navigation target, or "" when none happened.
func (r *Recorder) RedirectTo() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.navigation) == 0 {
		return ""
	}
	return r.navigation[len(r.navigation)-1]
}

// LoadingTransitions returns the recorded loading flag values in order.
func (r *Recorder) LoadingTransitions() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.loading)
}

var (
	_ Notifier  = (*Recorder)(nil)
	_ Navigator = (*Recorder)(nil)
)
