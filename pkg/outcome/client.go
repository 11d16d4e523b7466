package outcome

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

const maxResponseBody = 1 << 20

// Client submits forms and bulk actions to the collaborator and reports the
// outcome as a toast.
type Client struct {
	baseURL  string
	bulkPath string
	http     *http.Client
	csrf     func(ctx context.Context) string
	logger   *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithCSRFToken sets a function providing the X-CSRFToken header value.
func WithCSRFToken(fn func(ctx context.Context) string) ClientOption {
	return func(cl *Client) {
		cl.csrf = fn
	}
}

// WithBulkPath sets the bulk action endpoint, relative to the base URL.
// Default "/admin/bulk-action".
func WithBulkPath(p string) ClientOption {
	return func(cl *Client) {
		if p != "" {
			cl.bulkPath = p
		}
	}
}

// WithLogger sets the logger for the Client.
func WithLogger(l *slog.Logger) ClientOption {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// NewClient creates a client for the collaborator at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		bulkPath: "/admin/bulk-action",
		http:     http.DefaultClient,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitForm sends form to action with method and reports the result on n.
// Transport and decoding failures are reported as a generic error toast and
// returned.
func (c *Client) SubmitForm(ctx context.Context, n Notifier, method, action string, form url.Values) (Result, error) {
	if method == "" {
		method = http.MethodPost
	}
	method = strings.ToUpper(method)

	target := c.resolve(action)
	var body io.Reader
	if method == http.MethodGet {
		target = withQuery(target, form)
	} else {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return c.fail(ctx, n, "form", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	res, err := c.do(req)
	if err != nil {
		return c.fail(ctx, n, "form", err)
	}
	Report(n, res, MsgFormSuccess, MsgFormFailure)
	return res, nil
}

type bulkRequest struct {
	Action string   `json:"action"`
	IDs    []string `json:"ids"`
}

// BulkAction applies action to ids and reports the result on n.
// With no ids nothing is sent and a warning toast is raised.
func (c *Client) BulkAction(ctx context.Context, n Notifier, action string, ids []string) (Result, error) {
	if len(ids) == 0 {
		n.Notify(MsgNoSelection, toast.SeverityWarning)
		return Result{}, ErrNoSelection
	}

	payload, err := json.Marshal(bulkRequest{Action: action, IDs: ids})
	if err != nil {
		return c.fail(ctx, n, action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(c.bulkPath), bytes.NewReader(payload))
	if err != nil {
		return c.fail(ctx, n, action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.do(req)
	if err != nil {
		return c.fail(ctx, n, action, err)
	}
	Report(n, res, fmt.Sprintf(bulkSuccessTmpl, action), MsgBulkFailure)
	return res, nil
}

func (c *Client) do(req *http.Request) (Result, error) {
	req.Header.Set("Accept", "application/json")
	if c.csrf != nil {
		if token := c.csrf(req.Context()); token != "" {
			req.Header.Set("X-CSRFToken", token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, errors.Join(ErrRequest, err)
	}
	defer resp.Body.Close()

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return Result{}, fmt.Errorf("%w: status %d, content type %q", ErrUnexpectedResponse, resp.StatusCode, mediaType)
	}

	var res Result
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&res); err != nil {
		return Result{}, errors.Join(ErrUnexpectedResponse, err)
	}
	return res, nil
}

func (c *Client) fail(ctx context.Context, n Notifier, op string, err error) (Result, error) {
	c.logger.LogAttrs(ctx, slog.LevelError, "collaborator request failed",
		logger.Action(op),
		logger.Error(err),
	)
	n.Notify(MsgTransport, toast.SeverityError)
	return Result{}, err
}

func (c *Client) resolve(p string) string {
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return c.baseURL + p
}

func withQuery(target string, form url.Values) string {
	if len(form) == 0 {
		return target
	}
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + form.Encode()
}
