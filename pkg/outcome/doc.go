// Package outcome is the caller side of toasts: it talks to the HTTP
// collaborator that performs form submissions and bulk actions, interprets
// its {success, message, redirect, reload_table} answer and raises the
// matching toast.
//
//	c := outcome.NewClient("https://backend.internal")
//	res, err := c.BulkAction(ctx, manager, "delete", []string{"7", "9"})
//	if err == nil && res.Success {
//		// ask the page to reload
//	}
package outcome
