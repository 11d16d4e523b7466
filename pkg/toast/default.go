package toast

import "sync/atomic"

var defaultManager atomic.Pointer[Manager]

func init() {
	defaultManager.Store(NewManager())
}

// Default returns the process-wide manager used by Notify and Dismiss.
func Default() *Manager {
	return defaultManager.Load()
}

// SetDefault makes m the process-wide manager and returns the manager it
// replaced, which is left running. A nil m changes nothing and the current
// default is returned.
func SetDefault(m *Manager) *Manager {
	if m == nil {
		return Default()
	}
	return defaultManager.Swap(m)
}

// Notify raises a toast on the default manager.
func Notify(message string, sev Severity) Handle {
	return Default().Notify(message, sev)
}

// Dismiss removes a toast raised on the default manager.
// Handles from other managers are dismissed on their own manager.
func Dismiss(h Handle) {
	if h.m != nil {
		h.m.Dismiss(h)
		return
	}
	Default().Dismiss(h)
}
