package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures which services the dashboard router mounts.
// Each service is optional.
type RouterOptions struct {
	// Pages serves the page shell, the toast stream and the actions that
	// raise toasts.
	Pages Mountable
}

// Router creates the dashboard router.
//
// Example:
//
//	pages := dashboard.NewPages(cfg.StreamBuffer, log)
//	svc := dashboard.NewService(cfg, pages, outcome.NewClient(url), flash.NewMemoryStore(), cookies)
//
//	r := chi.NewRouter()
//	r.Mount("/", dashboard.Router(dashboard.RouterOptions{Pages: svc}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	if opts.Pages != nil {
		r.Mount("/", opts.Pages.Handle())
	}

	return r
}
