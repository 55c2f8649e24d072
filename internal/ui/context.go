package ui

import "context"

type ctxNavigatorKey struct{}

// WithNavigator returns a copy of ctx whose navigation requests go to nav.
func WithNavigator(ctx context.Context, nav Navigator) context.Context {
	return context.WithValue(ctx, ctxNavigatorKey{}, nav)
}

// ContextNavigator forwards to the Navigator carried by the call's context, so a
// long-lived collaborator can navigate on behalf of whichever request is running.
// Without one in the context it uses Fallback, and does nothing if that is nil too.
type ContextNavigator struct {
	Fallback Navigator
}

func (n ContextNavigator) Navigate(ctx context.Context, path string) {
	if nav, ok := ctx.Value(ctxNavigatorKey{}).(Navigator); ok && nav != nil {
		nav.Navigate(ctx, path)
		return
	}
	if n.Fallback != nil {
		n.Fallback.Navigate(ctx, path)
	}
}

var _ Navigator = ContextNavigator{}
