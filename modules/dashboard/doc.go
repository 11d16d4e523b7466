// Package dashboard serves admin pages that report the outcome of user
// actions as toast notifications.
//
// Every browser page is identified by a signed cookie and owns a
// toast.Manager. The page shell opens a datastar stream on load; the manager
// renders into a toast.StreamDocument whose patches are forwarded to that
// stream. Toasts raised while no stream is open are kept and replayed when
// the next stream connects.
//
// Routes:
//
//	GET  /                     page shell, delivers queued flash toasts
//	GET  /toasts/stream        datastar stream of toast patches
//	POST /toasts/{id}/dismiss  close button of a toast
//	POST /forms/submit         forwards a form to the collaborator
//	POST /bulk-action          forwards a bulk action to the collaborator
//
// A successful bulk action reloads the page, so its success toast is queued
// in a flash.Store and raised on the next page load.
//
// Usage:
//
//	pages := dashboard.NewPages(cfg.StreamBuffer, log, toast.WithDismissDelay(5*time.Second))
//	go pages.Run(ctx, cfg.PruneEvery, cfg.PageIdle)
//
//	svc := dashboard.NewService(cfg, pages, client, store, cookies, dashboard.WithLogger(log))
//	r.Mount("/", dashboard.Router(dashboard.RouterOptions{Pages: svc}))
package dashboard
