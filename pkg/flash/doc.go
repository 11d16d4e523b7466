// Package flash queues toasts for a page that has not been rendered yet,
// for example a success message raised right before a redirect or reload.
//
//	_ = store.Push(ctx, pageID, flash.Message{Text: "Deleted 3 items", Severity: toast.SeveritySuccess})
//	// ... on the next page load
//	_, _ = flash.Deliver(ctx, store, pageID, manager)
//
// MemoryStore serves a single process; RedisStore shares queues between
// instances.
package flash
