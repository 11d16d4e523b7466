package toast_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/toastkit/pkg/toast"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in      string
		want    toast.Severity
		wantErr bool
	}{
		{in: "", want: toast.SeverityInfo},
		{in: "info", want: toast.SeverityInfo},
		{in: "success", want: toast.SeveritySuccess},
		{in: " Warning ", want: toast.SeverityWarning},
		{in: "ERROR", want: toast.SeverityError},
		{in: "danger", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := toast.ParseSeverity(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, toast.ErrUnknownSeverity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeverity_Presentation(t *testing.T) {
	tests := []struct {
		sev   toast.Severity
		class string
		icon  string
		title string
	}{
		{toast.SeveritySuccess, "toast-success", "check-circle", "Success"},
		{toast.SeverityWarning, "toast-warning", "exclamation-triangle", "Warning"},
		{toast.SeverityError, "toast-error", "exclamation-circle", "Error"},
		{toast.SeverityInfo, "toast-info", "info-circle", "Info"},
		{toast.Severity("bogus"), "toast-info", "info-circle", "Info"},
	}
	for _, tt := range tests {
		t.Run(string(tt.sev), func(t *testing.T) {
			assert.Equal(t, tt.class, tt.sev.Class())
			assert.Equal(t, tt.icon, tt.sev.Icon())
			assert.Equal(t, tt.title, tt.sev.Title())
		})
	}
}

func TestRender(t *testing.T) {
	ctx := context.Background()

	t.Run("includes message, severity and close affordance", func(t *testing.T) {
		html, err := toast.RenderString(ctx, toast.Render(toast.Notification{
			ID:       "abc",
			Message:  "Saved",
			Severity: toast.SeveritySuccess,
		}))
		require.NoError(t, err)

		assert.Contains(t, html, `id="toast-abc"`)
		assert.Contains(t, html, "toast-success")
		assert.Contains(t, html, "fa-check-circle")
		assert.Contains(t, html, ">Success<")
		assert.Contains(t, html, ">Saved<")
		assert.Contains(t, html, `@post('/toasts/abc/dismiss')`)
		assert.Contains(t, html, `role="alert"`)
	})

	t.Run("escapes message text", func(t *testing.T) {
		html, err := toast.RenderString(ctx, toast.Render(toast.Notification{
			ID:      "x",
			Message: `<script>alert("hi")</script>`,
		}))
		require.NoError(t, err)

		assert.NotContains(t, html, "<script>")
		assert.Contains(t, html, "&lt;script&gt;")
	})

	t.Run("is pure", func(t *testing.T) {
		n := toast.Notification{ID: "p", Message: "same", Severity: toast.SeverityWarning}
		a, err := toast.RenderString(ctx, toast.Render(n))
		require.NoError(t, err)
		b, err := toast.RenderString(ctx, toast.Render(n))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("renderer without close button", func(t *testing.T) {
		html, err := toast.RenderString(ctx, toast.NewRenderer(nil)(toast.Notification{ID: "n", Message: "m"}))
		require.NoError(t, err)
		assert.NotContains(t, html, "btn-close")
		assert.Contains(t, html, "toast-info")
	})

	t.Run("surface", func(t *testing.T) {
		html, err := toast.RenderString(ctx, toast.RenderSurface())
		require.NoError(t, err)
		assert.Contains(t, html, `id="toast-surface"`)
		assert.Contains(t, html, "toast-container")
	})

	t.Run("surface with children", func(t *testing.T) {
		html, err := toast.RenderString(ctx, toast.RenderSurface(
			toast.Render(toast.Notification{ID: "a", Message: "first"}),
			toast.Render(toast.Notification{ID: "b", Message: "second"}),
		))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(html, `<div id="toast-surface"`))
		assert.True(t, strings.HasSuffix(html, "</div>"))
		assert.Less(t, strings.Index(html, `id="toast-a"`), strings.Index(html, `id="toast-b"`))
	})
}

func TestDismissPath(t *testing.T) {
	assert.Equal(t, "/toasts/abc/dismiss", toast.DismissPath("abc"))
	assert.Equal(t, "/toasts/a%2Fb/dismiss", toast.DismissPath("a/b"))
}

func TestNotification_State(t *testing.T) {
	n := toast.Notification{ID: "1"}
	assert.Equal(t, "toast-1", n.NodeID())
	assert.False(t, n.Dismissed())
	assert.Equal(t, "created", n.State.String())

	n.State = toast.StateDismissed
	assert.True(t, n.Dismissed())
	assert.Equal(t, "dismissed", n.State.String())
}
