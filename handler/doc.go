// Package handler adapts typed request handlers to net/http.
//
// A HandlerFunc receives a Context and a request value filled by binders and
// returns a Response:
//
//	type BulkRequest struct {
//		Action string   `json:"action"`
//		IDs    []string `json:"ids"`
//	}
//
//	bulk := handler.HandlerFunc[handler.Context, BulkRequest](
//		func(ctx handler.Context, req BulkRequest) handler.Response {
//			if req.Action == "" {
//				return handler.JSONError(handler.ErrBadRequest)
//			}
//			return handler.Empty()
//		},
//	)
//
//	r.Post("/bulk-action", handler.Wrap(bulk,
//		handler.WithBinders[handler.Context, BulkRequest](binder.BindJSON()),
//		handler.WithErrorHandler[handler.Context, BulkRequest](errHandler),
//	))
//
// Responses adapt to datastar: Templ patches an element, Redirect navigates,
// SSE keeps a stream open and hands the handler a StreamContext. Plain requests
// get ordinary HTML, JSON or status codes.
//
// NewErrorHandler reports failures of datastar requests as toasts on the page
// that sent them.
package handler
