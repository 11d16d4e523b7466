package toast

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
)

// SurfaceID is the DOM id of the container holding every visible toast.
const SurfaceID = "toast-surface"

// SurfaceSelector is the CSS selector of the surface.
const SurfaceSelector = "#" + SurfaceID

// RenderFunc turns a notification into a displayable node.
// Implementations must be pure: same notification, same markup.
type RenderFunc func(Notification) templ.Component

// DismissPath is the default close affordance endpoint for a toast.
func DismissPath(id string) string {
	return "/toasts/" + url.PathEscape(id) + "/dismiss"
}

// Render renders n with the default close affordance.
func Render(n Notification) templ.Component {
	return NewRenderer(DismissPath)(n)
}

// NewRenderer returns a RenderFunc whose close button posts to dismissURL(id).
// A nil dismissURL renders toasts without a close button.
func NewRenderer(dismissURL func(id string) string) RenderFunc {
	return func(n Notification) templ.Component {
		return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			sev := n.Severity.orInfo()

			var b strings.Builder
			b.WriteString(`<div id="`)
			b.WriteString(templ.EscapeString(n.NodeID()))
			b.WriteString(`" class="toast show `)
			b.WriteString(sev.Class())
			b.WriteString(`" role="alert" aria-live="assertive" aria-atomic="true" data-severity="`)
			b.WriteString(string(sev))
			b.WriteString(`"><div class="toast-header"><i class="fas fa-`)
			b.WriteString(sev.Icon())
			b.WriteString(` me-2"></i><strong class="me-auto">`)
			b.WriteString(sev.Title())
			b.WriteString(`</strong>`)
			if dismissURL != nil {
				b.WriteString(`<button type="button" class="btn-close btn-close-white" aria-label="Close" data-on-click="@post('`)
				b.WriteString(templ.EscapeString(dismissURL(n.ID)))
				b.WriteString(`')"></button>`)
			}
			b.WriteString(`</div><div class="toast-body">`)
			b.WriteString(templ.EscapeString(n.Message))
			b.WriteString(`</div></div>`)

			_, err := io.WriteString(w, b.String())
			return err
		})
	}
}

// RenderSurface renders the surface container with children inside it.
func RenderSurface(children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="`+SurfaceID+`" class="toast-container position-fixed top-0 end-0 p-3" style="z-index: 1050">`); err != nil {
			return err
		}
		for _, c := range children {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// RenderString renders c into a string.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
