package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/toastkit/binder"
	"github.com/dmitrymomot/toastkit/handler"
	"github.com/dmitrymomot/toastkit/pkg/cookie"
	"github.com/dmitrymomot/toastkit/pkg/flash"
	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/outcome"
	"github.com/dmitrymomot/toastkit/pkg/toast"
	"github.com/dmitrymomot/toastkit/pkg/validator"
)

// Form fields read by the submit route and never forwarded.
const (
	FieldAction = "_action"
	FieldMethod = "_method"
)

// StreamPath is the route the page shell opens its toast stream on.
const StreamPath = "/toasts/stream"

// Collaborator performs form submissions and bulk actions and reports their
// outcome on a notifier. *outcome.Client implements it.
type Collaborator interface {
	SubmitForm(ctx context.Context, n outcome.Notifier, method, action string, form url.Values) (outcome.Result, error)
	BulkAction(ctx context.Context, n outcome.Notifier, action string, ids []string) (outcome.Result, error)
}

type Service struct {
	cfg          Config
	pages        *Pages
	client       Collaborator
	flash        flash.Store
	cookies      *cookie.Manager
	views        *Views
	logger       *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithViews replaces the default page shell.
func WithViews(v *Views) ServiceOption {
	return func(s *Service) {
		if v != nil && v.Page != nil {
			s.views = v
		}
	}
}

// WithLogger sets the logger for the Service.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithErrorHandler replaces the error handler built by NewService.
func WithErrorHandler(h handler.ErrorHandler[handler.Context]) ServiceOption {
	return func(s *Service) {
		if h != nil {
			s.errorHandler = h
		}
	}
}

func NewService(
	cfg Config,
	pages *Pages,
	client Collaborator,
	store flash.Store,
	cookies *cookie.Manager,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		cfg:     cfg,
		pages:   pages,
		client:  client,
		flash:   store,
		cookies: cookies,
		views:   DefaultViews(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.errorHandler == nil {
		s.errorHandler = handler.NewErrorHandler(s.logger, PageNotifier)
	}
	s.logger = s.logger.With(logger.Component("dashboard"))
	return s
}

func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(s.withPage)

	r.Get("/", handler.Wrap(s.index,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Get(StreamPath, handler.Wrap(s.stream,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Post("/toasts/{id}/dismiss", handler.Wrap(s.dismiss,
		handler.WithBinders[handler.Context, DismissRequest](binder.Path(chi.URLParam)),
		handler.WithErrorHandler[handler.Context, DismissRequest](s.errorHandler),
	))
	r.Post("/forms/submit", handler.Wrap(s.submitForm,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Post("/bulk-action", handler.Wrap(s.bulkAction,
		handler.WithBinders[handler.Context, BulkRequest](binder.BindSignals()),
		handler.WithErrorHandler[handler.Context, BulkRequest](s.errorHandler),
	))

	return r
}

type pageKey struct{}

// PageFromContext returns the page the request belongs to, or nil.
func PageFromContext(ctx context.Context) *Page {
	p, _ := ctx.Value(pageKey{}).(*Page)
	return p
}

// PageNotifier resolves the toast manager of the requesting page for
// handler.NewErrorHandler.
func PageNotifier(ctx handler.Context) handler.Notifier {
	if PageFromContext(ctx) == nil {
		return nil
	}
	return toast.FromContext(ctx)
}

// LoggerExtractor adds the page id to log records of page requests.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if p := PageFromContext(ctx); p != nil {
			return logger.PageID(p.ID), true
		}
		return slog.Attr{}, false
	}
}

// withPage binds the request to its page. The page id lives in a signed
// cookie; a missing or tampered cookie starts a new page. The page manager is
// carried in the request context, so toast.NotifyContext reaches the page.
func (s *Service) withPage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := s.cookies.GetSigned(r, s.cfg.PageCookie)
		if err == nil {
			if _, perr := uuid.Parse(id); perr != nil {
				err = perr
			}
		}
		if err != nil {
			if !errors.Is(err, cookie.ErrCookieNotFound) {
				s.logger.LogAttrs(r.Context(), slog.LevelWarn, "invalid page cookie", logger.Error(err))
			}
			id = uuid.NewString()
			s.cookies.SetSigned(w, s.cfg.PageCookie, id)
		}

		page := s.pages.Get(id)
		ctx := context.WithValue(r.Context(), pageKey{}, page)
		next.ServeHTTP(w, r.WithContext(toast.WithContext(ctx, page.Manager)))
	})
}

func (s *Service) index(ctx handler.Context, _ struct{}) handler.Response {
	page := PageFromContext(ctx)
	if n, err := flash.Deliver(ctx, s.flash, page.ID, toast.FromContext(ctx)); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "flash delivery failed", slog.Int("count", n), logger.Error(err))
	} else if n > 0 {
		s.logger.LogAttrs(ctx, slog.LevelDebug, "flash delivered", slog.Int("count", n))
	}

	return handler.Templ(s.views.Page(PageParams{
		Title:     s.cfg.Title,
		StreamURL: StreamPath,
	}))
}

func (s *Service) stream(ctx handler.Context, _ struct{}) handler.Response {
	page := PageFromContext(ctx)

	return handler.SSE(func(stream handler.StreamContext) error {
		err := page.Stream(stream, func(p toast.Patch) error {
			return forward(stream, p)
		})
		if err != nil && !errors.Is(err, toast.ErrManagerClosed) {
			// The client is gone; the next stream replays what it missed.
			s.logger.LogAttrs(stream, slog.LevelDebug, "toast stream closed", logger.Error(err))
		}
		return nil
	})
}

// DismissRequest identifies the toast a close button belongs to.
type DismissRequest struct {
	ID string `path:"id"`
}

func (s *Service) dismiss(ctx handler.Context, req DismissRequest) handler.Response {
	// Unknown ids are toasts that already went away.
	toast.FromContext(ctx).DismissID(req.ID)
	return handler.Empty()
}

func (s *Service) submitForm(ctx handler.Context, _ struct{}) handler.Response {
	r := ctx.Request()
	if err := r.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return handler.Error(errors.Join(handler.ErrBadRequest, err))
	}

	form := maps.Clone(r.PostForm)
	if form == nil {
		form = url.Values{}
	}
	action := form.Get(FieldAction)
	method := form.Get(FieldMethod)
	form.Del(FieldAction)
	form.Del(FieldMethod)
	if action == "" {
		action = s.cfg.FormAction
	}

	res, err := s.client.SubmitForm(ctx, toast.FromContext(ctx), method, action, form)

	if !handler.IsDataStar(r) {
		if err == nil && res.Success && res.Redirect != "" {
			return handler.Redirect(res.Redirect)
		}
		return handler.Redirect(back(r))
	}
	if err != nil || !res.Success || (res.Redirect == "" && !res.ReloadTable) {
		return handler.Empty()
	}

	return handler.SSE(func(stream handler.StreamContext) error {
		if res.ReloadTable {
			if err := stream.SendSignals(map[string]any{"reloadTable": true}); err != nil {
				return err
			}
		}
		if res.Redirect != "" {
			return stream.Redirect(res.Redirect)
		}
		return nil
	})
}

// Bulk action limits.
const (
	MaxBulkActionLen = 64
	MaxBulkIDs       = 1000
)

// BulkRequest is read from the datastar signals of the page.
type BulkRequest struct {
	Action string   `json:"action"`
	IDs    []string `json:"ids"`
}

// Validate checks the action name and the size of the selection. An empty
// selection is valid and reported by the collaborator client.
func (r BulkRequest) Validate() error {
	return validator.Apply(
		validator.RequiredString("action", r.Action),
		validator.MaxLenString("action", r.Action, MaxBulkActionLen),
		validator.MaxLenSlice("ids", r.IDs, MaxBulkIDs),
	)
}

func (s *Service) bulkAction(ctx handler.Context, req BulkRequest) handler.Response {
	if err := req.Validate(); err != nil {
		return handler.Error(err)
	}

	n := &reloadNotifier{
		ctx:    ctx,
		store:  s.flash,
		key:    PageFromContext(ctx).ID,
		page:   toast.FromContext(ctx),
		logger: s.logger,
	}
	res, err := s.client.BulkAction(ctx, n, req.Action, req.IDs)
	if err != nil || !res.Success {
		return handler.Empty()
	}
	return handler.Redirect(back(ctx.Request()))
}

// reloadNotifier queues success toasts as flashes for the page load that
// follows a successful bulk action. Other toasts go to the page directly.
type reloadNotifier struct {
	ctx    context.Context
	store  flash.Store
	key    string
	page   outcome.Notifier
	logger *slog.Logger
}

func (n *reloadNotifier) Notify(message string, sev toast.Severity) toast.Handle {
	if sev != toast.SeveritySuccess {
		return n.page.Notify(message, sev)
	}
	err := n.store.Push(n.ctx, n.key, flash.Message{Text: message, Severity: sev})
	if err != nil {
		n.logger.LogAttrs(n.ctx, slog.LevelWarn, "flash push failed", logger.Error(err))
		return n.page.Notify(message, sev)
	}
	return toast.Handle{}
}

// back returns the same-origin page the request came from, or "/".
func back(r *http.Request) string {
	u, err := url.Parse(r.Referer())
	if err != nil || u.Host != r.Host || u.Path == "" {
		return "/"
	}
	return u.RequestURI()
}
