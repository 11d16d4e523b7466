package dashboard

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// DatastarScript is the client bundle the page shell loads.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// PageParams contains data for rendering the page shell.
type PageParams struct {
	Title     string
	StreamURL string
	// Content is rendered inside <main>. It may be nil.
	Content templ.Component
}

// Views renders the dashboard pages. Nil fields fall back to the defaults.
type Views struct {
	Page func(PageParams) templ.Component
}

// DefaultViews returns the built-in page shell.
func DefaultViews() *Views {
	return &Views{Page: PageShell}
}

// PageShell renders a minimal document: datastar, the element the toast
// surface is mounted into, and the page content. Opening the page starts the
// toast stream.
func PageShell(p PageParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!doctype html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>`+templ.EscapeString(p.Title)+`</title>`+
			`<script type="module" src="`+DatastarScript+`"></script></head>`+
			`<body data-signals="{reloadTable: false}">`+
			`<div id="toast-root" data-init="@get('`+templ.EscapeString(p.StreamURL)+`')"></div><main>`); err != nil {
			return err
		}
		if p.Content != nil {
			if err := p.Content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}
