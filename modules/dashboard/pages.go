package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/toastkit/pkg/broadcast"
	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// RootSelector is the page element the toast surface is mounted into.
const RootSelector = "#toast-root"

// Page is one browser page: a toast manager and the stream document its
// SSE connections listen on.
type Page struct {
	ID      string
	Manager *toast.Manager
	Doc     *toast.StreamDocument

	logger *slog.Logger

	mu       sync.Mutex
	streams  int
	lastSeen time.Time
}

// Connect subscribes to the page patches and binds the manager to them.
// Toasts raised while no stream was open are replayed on the returned
// subscriber as one mount patch, so the replay fits any stream buffer.
func (p *Page) Connect(ctx context.Context) (broadcast.Subscriber[toast.Patch], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	sub := p.Doc.Subscribe(ctx)
	if err := p.Manager.Attach(p.Doc); err != nil {
		_ = sub.Close()
		return nil, err
	}
	p.streams++
	return sub, nil
}

// Disconnect closes sub. When the last stream leaves the manager is detached
// and keeps new toasts in memory until the next Connect.
func (p *Page) Disconnect(sub broadcast.Subscriber[toast.Patch]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_ = sub.Close()
	if p.streams > 0 {
		p.streams--
	}
	if p.streams == 0 {
		p.Manager.Detach(p.Doc)
	}
}

// Stream sends the page patches to send until ctx is done, send fails or the
// page is closed. A stream that falls behind is dropped by the broadcaster;
// Stream then subscribes again and the remount carries every visible toast.
func (p *Page) Stream(ctx context.Context, send func(toast.Patch) error) error {
	sub, err := p.Connect(ctx)
	if err != nil {
		return err
	}
	for {
		err := drain(ctx, sub, send)
		p.Disconnect(sub)
		if err != nil || ctx.Err() != nil {
			return err
		}

		sub, err = p.Connect(ctx)
		if errors.Is(err, toast.ErrManagerClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		p.logger.LogAttrs(ctx, slog.LevelDebug, "toast stream resynchronized")
	}
}

func drain(ctx context.Context, sub broadcast.Subscriber[toast.Patch], send func(toast.Patch) error) error {
	for msg := range sub.Receive(ctx) {
		if err := send(msg.Data); err != nil {
			return err
		}
	}
	return nil
}

// Streams returns the number of open streams.
func (p *Page) Streams() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.streams
}

func (p *Page) touch(now time.Time) {
	p.mu.Lock()
	p.lastSeen = now
	p.mu.Unlock()
}

// idleSince reports whether the page has no streams, no toasts and was last
// used before t.
func (p *Page) idleSince(t time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.streams == 0 && p.lastSeen.Before(t) && p.Manager.Len() == 0
}

func (p *Page) close() {
	p.Manager.Close()
	_ = p.Doc.Close()
}

// Pages creates and tracks one Page per page id.
type Pages struct {
	mu     sync.Mutex
	pages  map[string]*Page
	buffer int
	opts   []toast.Option
	logger *slog.Logger
	now    func() time.Time
}

// NewPages creates a registry. Managers are built with managerOpts and their
// streams buffer up to bufferSize patches.
func NewPages(bufferSize int, log *slog.Logger, managerOpts ...toast.Option) *Pages {
	if log == nil {
		log = slog.Default()
	}
	return &Pages{
		pages:  make(map[string]*Page),
		buffer: bufferSize,
		opts:   managerOpts,
		logger: log,
		now:    time.Now,
	}
}

// Get returns the page with id, creating it on first use.
func (ps *Pages) Get(id string) *Page {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	p, ok := ps.pages[id]
	if !ok {
		log := ps.logger.With(logger.PageID(id))
		opts := append([]toast.Option{toast.WithLogger(log)}, ps.opts...)
		p = &Page{
			ID:      id,
			Manager: toast.NewManager(opts...),
			Doc:     toast.NewStreamDocument(RootSelector, broadcast.NewMemoryBroadcaster[toast.Patch](ps.buffer)),
			logger:  log,
		}
		ps.pages[id] = p
	}
	p.touch(ps.now())
	return p
}

// Lookup returns an existing page.
func (ps *Pages) Lookup(id string) (*Page, bool) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	p, ok := ps.pages[id]
	return p, ok
}

// Remove closes and forgets a page. Open streams of the page end.
func (ps *Pages) Remove(id string) bool {
	ps.mu.Lock()
	p, ok := ps.pages[id]
	delete(ps.pages, id)
	ps.mu.Unlock()

	if ok {
		p.close()
	}
	return ok
}

// Len returns the number of tracked pages.
func (ps *Pages) Len() int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return len(ps.pages)
}

// Prune removes pages that have been idle for longer than idle and returns
// how many were removed.
func (ps *Pages) Prune(idle time.Duration) int {
	cutoff := ps.now().Add(-idle)

	ps.mu.Lock()
	var stale []*Page
	for id, p := range ps.pages {
		if p.idleSince(cutoff) {
			stale = append(stale, p)
			delete(ps.pages, id)
		}
	}
	ps.mu.Unlock()

	for _, p := range stale {
		p.close()
	}
	return len(stale)
}

// Run prunes idle pages every interval until ctx is done.
func (ps *Pages) Run(ctx context.Context, interval, idle time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := ps.Prune(idle); n > 0 {
				ps.logger.LogAttrs(ctx, slog.LevelDebug, "pruned idle pages", slog.Int("count", n))
			}
		}
	}
}

// Close closes every page.
func (ps *Pages) Close() {
	ps.mu.Lock()
	pages := ps.pages
	ps.pages = make(map[string]*Page)
	ps.mu.Unlock()

	for _, p := range pages {
		p.close()
	}
}
