package handler

import "net/http"

// SSEHandler runs for the lifetime of a datastar stream. The stream ends when
// it returns or the client goes away.
type SSEHandler func(ctx StreamContext) error

type sseResponse struct {
	handler SSEHandler
}

func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return NewHTTPError(http.StatusBadRequest, "SSE endpoint requires DataStar connection")
	}

	base := NewContext(w, r)
	if base.SSE() == nil {
		return ErrSSENotInitialized
	}
	return s.handler(&streamContext{Context: base, sse: base.SSE()})
}

// SSE creates a response that streams through the given handler.
//
//	return handler.SSE(func(stream handler.StreamContext) error {
//		sub := doc.Subscribe(stream)
//		defer sub.Close()
//		for msg := range sub.Receive(stream) {
//			// forward msg.Data
//		}
//		return nil
//	})
func SSE(handler SSEHandler) Response {
	return sseResponse{handler: handler}
}
