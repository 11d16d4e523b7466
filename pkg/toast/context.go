package toast

import "context"

type contextKey struct{}

// WithContext returns a copy of ctx carrying m. Code running under ctx raises
// toasts on m through NotifyContext.
func WithContext(ctx context.Context, m *Manager) context.Context {
	return context.WithValue(ctx, contextKey{}, m)
}

// FromContext returns the manager carried by ctx, or the default manager.
func FromContext(ctx context.Context) *Manager {
	if ctx == nil {
		return Default()
	}
	if m, ok := ctx.Value(contextKey{}).(*Manager); ok && m != nil {
		return m
	}
	return Default()
}

// NotifyContext raises a toast on the manager carried by ctx.
func NotifyContext(ctx context.Context, message string, sev Severity) Handle {
	return FromContext(ctx).Notify(message, sev)
}
