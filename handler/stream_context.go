package handler

import (
	"context"
	"encoding/json"
	"io"

	"github.com/starfederation/datastar-go/datastar"
)

// StreamContext is a Context with an open datastar SSE stream.
type StreamContext interface {
	Context

	// SendComponent patches a component into the page.
	//
	//	err := stream.SendComponent(node,
	//		handler.WithTarget(toast.SurfaceSelector),
	//		handler.WithPatchMode(handler.PatchAppend),
	//	)
	SendComponent(component TemplComponent, opts ...TemplOption) error

	// RemoveElement removes every element matching selector.
	RemoveElement(selector string) error

	// SendSignals merges signals into the page store.
	SendSignals(signals map[string]any) error

	// Redirect navigates the page to url.
	Redirect(url string) error
}

type streamContext struct {
	Context
	sse *datastar.ServerSentEventGenerator
}

func (c *streamContext) SendComponent(component TemplComponent, opts ...TemplOption) error {
	if c.sse == nil {
		return ErrSSENotInitialized
	}
	return c.sse.PatchElementTempl(component, opts...)
}

func (c *streamContext) RemoveElement(selector string) error {
	if c.sse == nil {
		return ErrSSENotInitialized
	}
	return c.sse.PatchElementTempl(emptyComponent{}, WithTarget(selector), WithPatchMode(PatchRemove))
}

func (c *streamContext) SendSignals(signals map[string]any) error {
	if c.sse == nil {
		return ErrSSENotInitialized
	}
	data, err := json.Marshal(signals)
	if err != nil {
		return err
	}
	return c.sse.PatchSignals(data)
}

func (c *streamContext) Redirect(url string) error {
	if c.sse == nil {
		return ErrSSENotInitialized
	}
	return c.sse.Redirect(url)
}

type emptyComponent struct{}

func (emptyComponent) Render(context.Context, io.Writer) error { return nil }
