// Package toast manages transient notifications (toasts) shown on a page.
//
// A Manager owns the toasts of one page. The first Notify lazily creates the
// surface that holds them; every toast is appended to it in call order and
// removed again after DefaultDismissDelay, or earlier when dismissed through
// its Handle or its close button. Dismissing twice, dismissing an expired
// toast or dismissing a zero Handle does nothing.
//
//	m := toast.NewManager(toast.WithDocument(doc))
//	h := m.Notify("Saved", toast.SeveritySuccess)
//	defer h.Dismiss()
//
// Rendering is a separate pure step (Render, RenderSurface) and the page is
// reached through the Document interface. MemoryDocument keeps the page in
// memory; StreamDocument publishes patches that an SSE endpoint forwards to
// the browser.
//
// A process-wide manager is reachable through Notify, Dismiss, Default and
// SetDefault, so any code can raise a toast without holding a manager.
// Request scoped code should use NotifyContext instead: WithContext binds the
// manager of the requesting page to the context and FromContext falls back to
// the process-wide manager when none is bound.
//
//	ctx = toast.WithContext(ctx, page)
//	toast.NotifyContext(ctx, "Saved", toast.SeveritySuccess)
//
// When a page attaches, or attaches again after its stream fell behind, the
// surface is mounted once with every visible toast already inside it.
//
// Auto-dismissal is a Task: a deferred call that is pending until it either
// fires or is cancelled, and never both. Tests drive it with the fake clock in
// the toasttest package.
package toast
