package dashboard_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/toastkit/modules/dashboard"
	"github.com/dmitrymomot/toastkit/pkg/cookie"
	"github.com/dmitrymomot/toastkit/pkg/flash"
	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/outcome"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type collaboratorCall struct {
	Method      string
	Path        string
	ContentType string
	Form        url.Values
	Body        string
}

type fixture struct {
	cfg     dashboard.Config
	pages   *dashboard.Pages
	store   *flash.MemoryStore
	cookies *cookie.Manager
	handler http.Handler

	mu     sync.Mutex
	calls  []collaboratorCall
	result outcome.Result
	status int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		cfg:    dashboard.DefaultConfig(),
		store:  flash.NewMemoryStore(),
		result: outcome.Result{Success: true},
		status: http.StatusOK,
	}

	collab := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		call := collaboratorCall{
			Method:      r.Method,
			Path:        r.URL.Path,
			ContentType: r.Header.Get("Content-Type"),
			Body:        string(body),
		}
		call.Form, _ = url.ParseQuery(string(body))

		f.mu.Lock()
		f.calls = append(f.calls, call)
		res, status := f.result, f.status
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(res)
	}))
	t.Cleanup(collab.Close)

	cookies, err := cookie.New([]string{testSecret})
	require.NoError(t, err)
	f.cookies = cookies

	f.pages = dashboard.NewPages(f.cfg.StreamBuffer, nil)
	t.Cleanup(f.pages.Close)

	svc := dashboard.NewService(f.cfg, f.pages, outcome.NewClient(collab.URL), f.store, cookies)
	f.handler = dashboard.Router(dashboard.RouterOptions{Pages: svc})
	return f
}

func (f *fixture) respondWith(res outcome.Result) {
	f.mu.Lock()
	f.result = res
	f.mu.Unlock()
}

func (f *fixture) lastCall(t *testing.T) collaboratorCall {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls, "collaborator was not called")
	return f.calls[len(f.calls)-1]
}

// pageCookie returns a signed page cookie for id.
func (f *fixture) pageCookie(id string) *http.Cookie {
	rec := httptest.NewRecorder()
	f.cookies.SetSigned(rec, f.cfg.PageCookie, id)
	return rec.Result().Cookies()[0]
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func pageCookieFrom(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func messages(m *toast.Manager) []string {
	var out []string
	for _, n := range m.Notifications() {
		out = append(out, string(n.Severity)+": "+n.Message)
	}
	return out
}

func datastar(req *http.Request) *http.Request {
	req.Header.Set("Accept", "text/event-stream")
	return req
}

func TestService_Index(t *testing.T) {
	t.Run("new visitor gets a page cookie and the shell", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		assert.Contains(t, body, `id="toast-root"`)
		assert.Contains(t, body, dashboard.StreamPath)
		assert.Contains(t, body, dashboard.DatastarScript)
		assert.Contains(t, body, "<title>Dashboard</title>")

		c := pageCookieFrom(t, rec, f.cfg.PageCookie)
		require.NotNil(t, c)
		assert.True(t, c.HttpOnly)
		assert.Equal(t, 1, f.pages.Len())
	})

	t.Run("known cookie reuses the page", func(t *testing.T) {
		f := newFixture(t)
		id := uuid.NewString()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(f.pageCookie(id))
		rec := f.do(req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, pageCookieFrom(t, rec, f.cfg.PageCookie))
		_, ok := f.pages.Lookup(id)
		assert.True(t, ok)
	})

	tests := []struct {
		name   string
		cookie func(f *fixture) *http.Cookie
	}{
		{
			name: "tampered cookie",
			cookie: func(f *fixture) *http.Cookie {
				c := f.pageCookie(uuid.NewString())
				c.Value = "x" + c.Value
				return c
			},
		},
		{
			name: "unsigned cookie",
			cookie: func(f *fixture) *http.Cookie {
				return &http.Cookie{Name: f.cfg.PageCookie, Value: uuid.NewString()}
			},
		},
		{
			name: "signed value that is not a page id",
			cookie: func(f *fixture) *http.Cookie {
				return f.pageCookie("admin")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name+" starts a new page", func(t *testing.T) {
			f := newFixture(t)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(tt.cookie(f))
			rec := f.do(req)

			require.Equal(t, http.StatusOK, rec.Code)
			c := pageCookieFrom(t, rec, f.cfg.PageCookie)
			require.NotNil(t, c)
			assert.Equal(t, 1, f.pages.Len())
		})
	}

	t.Run("queued flash toasts are raised on load", func(t *testing.T) {
		f := newFixture(t)
		id := uuid.NewString()
		ctx := context.Background()
		require.NoError(t, f.store.Push(ctx, id, flash.Message{Text: "archive completed successfully", Severity: toast.SeveritySuccess}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(f.pageCookie(id))
		require.Equal(t, http.StatusOK, f.do(req).Code)

		page, ok := f.pages.Lookup(id)
		require.True(t, ok)
		assert.Equal(t, []string{"success: archive completed successfully"}, messages(page.Manager))

		left, err := f.store.Pop(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, left)
	})
}

func TestService_Dismiss(t *testing.T) {
	f := newFixture(t)
	id := uuid.NewString()
	page := f.pages.Get(id)
	h := page.Manager.Notify("Saved", toast.SeveritySuccess)

	req := datastar(httptest.NewRequest(http.MethodPost, toast.DismissPath(h.ID()), nil))
	req.AddCookie(f.pageCookie(id))
	rec := f.do(req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, page.Manager.Len())

	t.Run("unknown id", func(t *testing.T) {
		req := datastar(httptest.NewRequest(http.MethodPost, toast.DismissPath("gone"), nil))
		req.AddCookie(f.pageCookie(id))
		assert.Equal(t, http.StatusNoContent, f.do(req).Code)
	})
}

func formRequest(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/forms/submit", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestService_SubmitForm(t *testing.T) {
	t.Run("forwards the form and reports success", func(t *testing.T) {
		f := newFixture(t)
		f.respondWith(outcome.Result{Success: true, ReloadTable: true})
		id := uuid.NewString()

		req := datastar(formRequest(url.Values{
			"name":                {"Widget"},
			dashboard.FieldAction: {"/admin/products/add"},
			dashboard.FieldMethod: {"put"},
		}))
		req.AddCookie(f.pageCookie(id))
		rec := f.do(req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "reloadTable")

		call := f.lastCall(t)
		assert.Equal(t, http.MethodPut, call.Method)
		assert.Equal(t, "/admin/products/add", call.Path)
		assert.Equal(t, url.Values{"name": {"Widget"}}, call.Form)

		page, _ := f.pages.Lookup(id)
		assert.Equal(t, []string{"success: " + outcome.MsgFormSuccess}, messages(page.Manager))
	})

	t.Run("default action", func(t *testing.T) {
		f := newFixture(t)
		f.respondWith(outcome.Result{Success: true})

		req := datastar(formRequest(url.Values{"name": {"Widget"}}))
		req.AddCookie(f.pageCookie(uuid.NewString()))
		rec := f.do(req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		call := f.lastCall(t)
		assert.Equal(t, http.MethodPost, call.Method)
		assert.Equal(t, f.cfg.FormAction, call.Path)
	})

	t.Run("redirect", func(t *testing.T) {
		f := newFixture(t)
		f.respondWith(outcome.Result{Success: true, Redirect: "/admin/products"})

		req := datastar(formRequest(url.Values{"name": {"Widget"}}))
		req.AddCookie(f.pageCookie(uuid.NewString()))
		rec := f.do(req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "/admin/products")
	})

	t.Run("failure shows the collaborator message", func(t *testing.T) {
		f := newFixture(t)
		f.respondWith(outcome.Result{Success: false, Message: "Name is required", Redirect: "/ignored"})
		id := uuid.NewString()

		req := datastar(formRequest(url.Values{}))
		req.AddCookie(f.pageCookie(id))
		rec := f.do(req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		page, _ := f.pages.Lookup(id)
		assert.Equal(t, []string{"error: Name is required"}, messages(page.Manager))
	})

	t.Run("plain form posts go back to the referring page", func(t *testing.T) {
		f := newFixture(t)
		f.respondWith(outcome.Result{Success: true})

		req := formRequest(url.Values{"name": {"Widget"}})
		req.Header.Set("Referer", "http://example.com/admin/products?page=2")
		req.AddCookie(f.pageCookie(uuid.NewString()))
		rec := f.do(req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin/products?page=2", rec.Header().Get("Location"))
	})

	t.Run("foreign referer", func(t *testing.T) {
		f := newFixture(t)
		f.respondWith(outcome.Result{Success: false})

		req := formRequest(url.Values{})
		req.Header.Set("Referer", "https://evil.test/phish")
		req.AddCookie(f.pageCookie(uuid.NewString()))
		rec := f.do(req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})
}

func TestService_SubmitForm_CollaboratorDown(t *testing.T) {
	cookies, err := cookie.New([]string{testSecret})
	require.NoError(t, err)
	cfg := dashboard.DefaultConfig()
	pages := dashboard.NewPages(cfg.StreamBuffer, nil)
	defer pages.Close()

	down := httptest.NewServer(http.NotFoundHandler())
	down.Close()

	svc := dashboard.NewService(cfg, pages, outcome.NewClient(down.URL), flash.NewMemoryStore(), cookies)
	id := uuid.NewString()
	rec := httptest.NewRecorder()
	cookies.SetSigned(rec, cfg.PageCookie, id)

	req := datastar(formRequest(url.Values{"name": {"Widget"}}))
	req.AddCookie(rec.Result().Cookies()[0])
	out := httptest.NewRecorder()
	svc.Handle().ServeHTTP(out, req)

	assert.Equal(t, http.StatusNoContent, out.Code)
	page, _ := pages.Lookup(id)
	assert.Equal(t, []string{"error: " + outcome.MsgTransport}, messages(page.Manager))
}

func bulkRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/bulk-action", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return datastar(req)
}

func TestService_BulkAction(t *testing.T) {
	t.Run("success is flashed and the page reloads", func(t *testing.T) {
		f := newFixture(t)
		f.respondWith(outcome.Result{Success: true})
		id := uuid.NewString()

		req := bulkRequest(`{"action":"archive","ids":["1","2"],"reloadTable":false}`)
		req.Header.Set("Referer", "http://example.com/admin/orders")
		req.AddCookie(f.pageCookie(id))
		rec := f.do(req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "/admin/orders")

		call := f.lastCall(t)
		assert.Equal(t, "/admin/bulk-action", call.Path)
		assert.JSONEq(t, `{"action":"archive","ids":["1","2"]}`, call.Body)

		page, _ := f.pages.Lookup(id)
		assert.Empty(t, messages(page.Manager), "success waits for the reload")

		queued, err := f.store.Pop(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, []flash.Message{{Text: "archive completed successfully", Severity: toast.SeveritySuccess}}, queued)
	})

	t.Run("failure is shown on the page", func(t *testing.T) {
		f := newFixture(t)
		f.respondWith(outcome.Result{Success: false})
		id := uuid.NewString()

		req := bulkRequest(`{"action":"delete","ids":["7"]}`)
		req.AddCookie(f.pageCookie(id))
		rec := f.do(req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		page, _ := f.pages.Lookup(id)
		assert.Equal(t, []string{"error: " + outcome.MsgBulkFailure}, messages(page.Manager))
	})

	t.Run("no selection", func(t *testing.T) {
		f := newFixture(t)
		id := uuid.NewString()

		req := bulkRequest(`{"action":"delete","ids":[]}`)
		req.AddCookie(f.pageCookie(id))
		rec := f.do(req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		f.mu.Lock()
		assert.Empty(t, f.calls)
		f.mu.Unlock()
		page, _ := f.pages.Lookup(id)
		assert.Equal(t, []string{"warning: " + outcome.MsgNoSelection}, messages(page.Manager))
	})

	invalid := []struct {
		name string
		body string
		want string
	}{
		{"missing action", `{"ids":["1"]}`, "action: field is required"},
		{"blank action", `{"action":"  ","ids":["1"]}`, "action: field is required"},
		{
			"action too long",
			`{"action":"` + strings.Repeat("a", dashboard.MaxBulkActionLen+1) + `","ids":["1"]}`,
			fmt.Sprintf("action: must be at most %d characters long", dashboard.MaxBulkActionLen),
		},
		{
			"too many ids",
			`{"action":"archive","ids":[` + strings.TrimSuffix(strings.Repeat(`"1",`, dashboard.MaxBulkIDs+1), ",") + `]}`,
			fmt.Sprintf("ids: must have at most %d items", dashboard.MaxBulkIDs),
		},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			id := uuid.NewString()

			req := bulkRequest(tt.body)
			req.AddCookie(f.pageCookie(id))
			rec := f.do(req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			f.mu.Lock()
			assert.Empty(t, f.calls, "invalid requests never reach the collaborator")
			f.mu.Unlock()
			page, _ := f.pages.Lookup(id)
			assert.Equal(t, []string{"warning: " + tt.want}, messages(page.Manager))
		})
	}

	t.Run("plain request gets the field messages in the body", func(t *testing.T) {
		f := newFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/bulk-action", strings.NewReader(`{"ids":["1"]}`))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(f.pageCookie(uuid.NewString()))
		rec := f.do(req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "action: field is required")
	})

	t.Run("malformed signals", func(t *testing.T) {
		f := newFixture(t)
		id := uuid.NewString()

		req := bulkRequest(`{"action":`)
		req.AddCookie(f.pageCookie(id))
		rec := f.do(req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		page, _ := f.pages.Lookup(id)
		assert.Len(t, page.Manager.Notifications(), 1)
	})
}

// eventStream reads an open toast stream line by line.
type eventStream struct {
	t     *testing.T
	lines <-chan string
	buf   string
	pos   int
}

func openStream(ctx context.Context, t *testing.T, srv *httptest.Server, c *http.Cookie) *eventStream {
	t.Helper()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+dashboard.StreamPath, nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/event-stream")
	req.AddCookie(c)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)

	lines := make(chan string, 64)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(resp.Body)
		sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()
	return &eventStream{t: t, lines: lines}
}

// waitFor blocks until substr shows up after the previous match.
func (s *eventStream) waitFor(substr string) {
	s.t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if i := strings.Index(s.buf[s.pos:], substr); i >= 0 {
			s.pos += i + len(substr)
			return
		}
		select {
		case line, ok := <-s.lines:
			require.True(s.t, ok, "stream ended before %q", substr)
			s.buf += line + "\n"
		case <-deadline:
			s.t.Fatalf("no %q on the stream", substr)
		}
	}
}

func TestService_Stream(t *testing.T) {
	f := newFixture(t)
	srv := httptest.NewServer(f.handler)
	defer srv.Close()

	id := uuid.NewString()
	page := f.pages.Get(id)
	page.Manager.Notify("raised before the stream", toast.SeverityInfo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream := openStream(ctx, t, srv, f.pageCookie(id))

	stream.waitFor(toast.SurfaceID)
	stream.waitFor("raised before the stream")
	assert.Equal(t, 1, page.Streams())

	h := page.Manager.Notify("raised while streaming", toast.SeverityWarning)
	stream.waitFor("raised while streaming")

	page.Manager.Dismiss(h)
	stream.waitFor(toast.NodeID(h.ID()))

	cancel()
	assert.Eventually(t, func() bool { return page.Streams() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestService_StreamReplaysBacklog(t *testing.T) {
	f := newFixture(t)
	srv := httptest.NewServer(f.handler)
	defer srv.Close()

	id := uuid.NewString()
	page := f.pages.Get(id)
	var nodes []string
	for i := range f.cfg.StreamBuffer + 16 {
		h := page.Manager.Notify(fmt.Sprintf("backlog %d", i), toast.SeverityInfo)
		nodes = append(nodes, toast.NodeID(h.ID()))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream := openStream(ctx, t, srv, f.pageCookie(id))

	stream.waitFor(toast.SurfaceID)
	for _, node := range nodes {
		stream.waitFor(`id="` + node + `"`)
	}

	h := page.Manager.Notify("after the backlog", toast.SeveritySuccess)
	stream.waitFor(toast.NodeID(h.ID()))
	assert.Equal(t, 1, page.Streams(), "the stream survives the replay")
}

// contextCollaborator raises its toast through the request context instead
// of the notifier it is handed.
type contextCollaborator struct{}

func (contextCollaborator) SubmitForm(ctx context.Context, _ outcome.Notifier, _, _ string, _ url.Values) (outcome.Result, error) {
	toast.NotifyContext(ctx, "raised through the request context", toast.SeverityWarning)
	return outcome.Result{}, nil
}

func (contextCollaborator) BulkAction(ctx context.Context, _ outcome.Notifier, action string, _ []string) (outcome.Result, error) {
	toast.NotifyContext(ctx, action+" queued", toast.SeverityInfo)
	return outcome.Result{}, nil
}

func TestService_NotifyContextReachesStream(t *testing.T) {
	cookies, err := cookie.New([]string{testSecret})
	require.NoError(t, err)
	cfg := dashboard.DefaultConfig()
	pages := dashboard.NewPages(cfg.StreamBuffer, nil)
	defer pages.Close()

	svc := dashboard.NewService(cfg, pages, contextCollaborator{}, flash.NewMemoryStore(), cookies)
	srv := httptest.NewServer(svc.Handle())
	defer srv.Close()

	id := uuid.NewString()
	rec := httptest.NewRecorder()
	cookies.SetSigned(rec, cfg.PageCookie, id)
	c := rec.Result().Cookies()[0]

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream := openStream(ctx, t, srv, c)

	page, ok := pages.Lookup(id)
	require.True(t, ok)
	require.Eventually(t, func() bool { return page.Streams() == 1 }, time.Second, 5*time.Millisecond)

	post := func(req *http.Request) {
		t.Helper()
		req.AddCookie(c)
		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	form := url.Values{"name": {"Widget"}}
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/forms/submit", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	post(datastar(req))
	stream.waitFor("raised through the request context")

	req, err = http.NewRequest(http.MethodPost, srv.URL+"/bulk-action", strings.NewReader(`{"action":"archive","ids":["1"]}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	post(datastar(req))
	stream.waitFor("archive queued")

	assert.Zero(t, toast.Default().Len(), "nothing lands on the process-wide manager")
}

func TestService_StreamRequiresDatastar(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, dashboard.StreamPath, nil)
	req.AddCookie(f.pageCookie(uuid.NewString()))
	rec := f.do(req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoggerExtractor(t *testing.T) {
	_, ok := dashboard.LoggerExtractor()(context.Background())
	assert.False(t, ok)
	assert.Nil(t, dashboard.PageFromContext(context.Background()))

	cookies, err := cookie.New([]string{testSecret})
	require.NoError(t, err)
	cfg := dashboard.DefaultConfig()
	pages := dashboard.NewPages(cfg.StreamBuffer, nil)
	defer pages.Close()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithContextExtractors(dashboard.LoggerExtractor()),
	)
	svc := dashboard.NewService(cfg, pages, outcome.NewClient("http://127.0.0.1:0"), flash.NewMemoryStore(), cookies,
		dashboard.WithLogger(log),
	)

	id := uuid.NewString()
	rec := httptest.NewRecorder()
	cookies.SetSigned(rec, cfg.PageCookie, id)
	req := bulkRequest(`{"ids":["1"]}`)
	req.AddCookie(rec.Result().Cookies()[0])
	svc.Handle().ServeHTTP(httptest.NewRecorder(), req)

	require.NotZero(t, buf.Len())
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request error", entry["msg"])
	assert.Equal(t, id, entry["page_id"])
}
