package toast

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/google/uuid"

	"github.com/dmitrymomot/toastkit/pkg/logger"
)

// DefaultDismissDelay is how long a toast stays visible unless closed earlier.
const DefaultDismissDelay = 5 * time.Second

type entry struct {
	n    Notification
	task *Task
}

// Manager owns the toasts visible on one page.
//
// The surface is created on the first Notify and reused afterwards. Every
// toast is removed either by its auto-dismiss task or by a manual dismissal,
// whichever happens first; the other trigger is a no-op.
// All methods are safe for concurrent use.
type Manager struct {
	clock      Clock
	delay      time.Duration
	render     RenderFunc
	newID      func() string
	maxVisible int
	logger     *slog.Logger

	mu      sync.Mutex
	doc     Document
	created bool // surface exists in the model
	mounted bool // surface exists in doc
	closed  bool
	entries []*entry
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(m *Manager) {
		if c != nil {
			m.clock = c
		}
	}
}

// WithDismissDelay sets the auto-dismiss delay. Non-positive values are ignored.
func WithDismissDelay(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.delay = d
		}
	}
}

// WithRenderer replaces the toast renderer.
func WithRenderer(r RenderFunc) Option {
	return func(m *Manager) {
		if r != nil {
			m.render = r
		}
	}
}

// WithIDGenerator replaces the uuid based id generator.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// WithMaxVisible caps the number of simultaneous toasts. When the cap is
// exceeded the oldest toast is dismissed. Zero means unbounded.
func WithMaxVisible(n int) Option {
	return func(m *Manager) {
		if n >= 0 {
			m.maxVisible = n
		}
	}
}

// WithDocument attaches a document at construction time.
func WithDocument(d Document) Option {
	return func(m *Manager) {
		m.doc = d
	}
}

// WithLogger sets the logger for the Manager.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a manager. Without a document it keeps toasts in memory
// until Attach is called.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		clock:  systemClock{},
		delay:  DefaultDismissDelay,
		render: Render,
		newID:  uuid.NewString,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Notify shows a toast and schedules its automatic dismissal.
// Unknown severities are shown as info. After Close it returns a zero Handle.
func (m *Manager) Notify(message string, sev Severity) Handle {
	ctx := context.Background()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Handle{}
	}

	e := &entry{n: Notification{
		ID:        m.newID(),
		Message:   message,
		Severity:  sev.orInfo(),
		CreatedAt: m.clock.Now(),
		State:     StateCreated,
	}}

	m.ensureSurface(ctx)
	m.entries = append(m.entries, e)
	e.n.advance(StateShown)
	if m.mounted {
		m.appendNode(ctx, e)
	}

	id := e.n.ID
	e.task = Schedule(m.clock, m.delay, func() { m.expire(id) })

	m.logger.LogAttrs(ctx, slog.LevelDebug, "toast shown",
		logger.NotificationID(id),
		logger.Severity(string(e.n.Severity)),
	)

	if m.maxVisible > 0 && len(m.entries) > m.maxVisible {
		m.dismiss(ctx, m.entries[0], "overflow")
	}

	return Handle{id: id, m: m}
}

// Dismiss removes the toast behind h. Repeated calls, zero handles and
// handles of already expired toasts are no-ops.
func (m *Manager) Dismiss(h Handle) {
	m.DismissID(h.id)
}

// DismissID removes a toast by id and reports whether it was still visible.
func (m *Manager) DismissID(id string) bool {
	if id == "" {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.find(id)
	if e == nil {
		return false
	}
	m.dismiss(context.Background(), e, "manual")
	return true
}

// Attach binds the manager to a page. If toasts were raised before the page
// existed, the surface is mounted once with all of them rendered inside it in
// arrival order. Attaching again remounts the surface the same way, which
// resynchronizes a page that missed patches.
func (m *Manager) Attach(doc Document) error {
	if doc == nil {
		return ErrNilDocument
	}

	ctx := context.Background()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrManagerClosed
	}

	m.doc = doc
	m.mounted = false
	if !m.created {
		return nil
	}

	return m.mountSurface(ctx)
}

// Detach unbinds doc if it is still the attached page. Toasts stay in the
// model and are rendered again by the next Attach.
func (m *Manager) Detach(doc Document) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.doc != nil && m.doc == doc {
		m.doc = nil
		m.mounted = false
	}
}

// Close cancels every pending dismissal and forgets all toasts.
// Subsequent Notify calls return zero handles.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entries {
		e.task.Cancel()
		e.n.advance(StateDismissed)
	}
	m.entries = nil
	m.doc = nil
	m.mounted = false
	m.closed = true
}

// Len returns the number of visible toasts.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Notifications returns the visible toasts in arrival order.
func (m *Manager) Notifications() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Notification, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.n
	}
	return out
}

// HasSurface reports whether the surface was created.
func (m *Manager) HasSurface() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created
}

func (m *Manager) expire(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e := m.find(id); e != nil {
		m.dismiss(context.Background(), e, "timeout")
	}
}

// ensureSurface must be called with mu held.
func (m *Manager) ensureSurface(ctx context.Context) {
	m.created = true
	if m.doc == nil || m.mounted {
		return
	}
	if err := m.mountSurface(ctx); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "failed to mount toast surface", logger.Error(err))
	}
}

// mountSurface renders the surface with every visible toast inside it.
// It must be called with mu held and doc set.
func (m *Manager) mountSurface(ctx context.Context) error {
	nodes := make([]Node, len(m.entries))
	children := make([]templ.Component, len(m.entries))
	for i, e := range m.entries {
		c := m.render(e.n)
		nodes[i] = Node{ID: e.n.NodeID(), Component: c}
		children[i] = c
	}
	if err := m.doc.MountSurface(ctx, RenderSurface(children...), nodes); err != nil {
		return err
	}
	m.mounted = true
	return nil
}

// appendNode must be called with mu held.
func (m *Manager) appendNode(ctx context.Context, e *entry) {
	if err := m.doc.AppendNode(ctx, e.n.NodeID(), m.render(e.n)); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "failed to render toast",
			logger.NotificationID(e.n.ID),
			logger.Error(err),
		)
	}
}

// dismiss must be called with mu held and e present in entries.
func (m *Manager) dismiss(ctx context.Context, e *entry, reason string) {
	if !e.n.advance(StateDismissed) {
		return
	}
	e.task.Cancel()
	m.entries = slices.DeleteFunc(m.entries, func(x *entry) bool { return x == e })

	if m.mounted {
		if err := m.doc.RemoveNode(ctx, e.n.NodeID()); err != nil {
			m.logger.LogAttrs(ctx, slog.LevelWarn, "failed to remove toast",
				logger.NotificationID(e.n.ID),
				logger.Error(err),
			)
		}
	}

	m.logger.LogAttrs(ctx, slog.LevelDebug, "toast dismissed",
		logger.NotificationID(e.n.ID),
		slog.String("reason", reason),
	)
}

// find must be called with mu held.
func (m *Manager) find(id string) *entry {
	for _, e := range m.entries {
		if e.n.ID == id {
			return e
		}
	}
	return nil
}

// Handle refers to a toast returned by Notify. The zero value is valid and
// refers to nothing.
type Handle struct {
	id string
	m  *Manager
}

// ID returns the notification id, empty for a zero Handle.
func (h Handle) ID() string { return h.id }

// Dismiss removes the toast. It reports whether the toast was still visible.
func (h Handle) Dismiss() bool {
	if h.m == nil {
		return false
	}
	return h.m.DismissID(h.id)
}
