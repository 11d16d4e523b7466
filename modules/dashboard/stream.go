package dashboard

import (
	"fmt"

	"github.com/dmitrymomot/toastkit/handler"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// forward sends one manager patch to the browser.
func forward(s handler.StreamContext, p toast.Patch) error {
	switch p.Kind {
	case toast.PatchMount:
		// Inner keeps the root element, so a reconnecting stream remounts
		// the surface instead of nesting a second one.
		return s.SendComponent(p.Component, handler.WithTarget(p.Selector), handler.WithPatchMode(handler.PatchInner))
	case toast.PatchAppend:
		return s.SendComponent(p.Component, handler.WithTarget(p.Selector), handler.WithPatchMode(handler.PatchAppend))
	case toast.PatchRemove:
		return s.RemoveElement(p.Selector)
	default:
		return fmt.Errorf("unknown patch kind %q", p.Kind)
	}
}
