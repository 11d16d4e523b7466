package toast

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/a-h/templ"
)

// Document is the page a manager renders into.
// The manager serializes every call, so implementations see one call at a time
// per manager.
type Document interface {
	// MountSurface inserts the surface container into the page body, replacing
	// a previously mounted one. The surface already contains nodes, in order.
	MountSurface(ctx context.Context, surface templ.Component, nodes []Node) error

	// AppendNode appends a rendered toast as the last child of the surface.
	AppendNode(ctx context.Context, nodeID string, node templ.Component) error

	// RemoveNode removes a rendered toast. Removing an absent node is not an error.
	RemoveNode(ctx context.Context, nodeID string) error
}

// Node is a rendered toast inside the surface.
type Node struct {
	ID        string
	Component templ.Component
}

type memoryNode struct {
	id   string
	html string
}

// MemoryDocument is an in-memory page. It is useful in tests and for
// headless consumers that inspect what a user would see.
type MemoryDocument struct {
	mu      sync.RWMutex
	mounts  int
	surface string
	nodes   []memoryNode
}

// NewMemoryDocument creates an empty in-memory page.
func NewMemoryDocument() *MemoryDocument {
	return &MemoryDocument{}
}

func (d *MemoryDocument) MountSurface(ctx context.Context, surface templ.Component, nodes []Node) error {
	html, err := RenderString(ctx, surface)
	if err != nil {
		return err
	}
	rendered := make([]memoryNode, 0, len(nodes))
	for _, n := range nodes {
		nodeHTML, err := RenderString(ctx, n.Component)
		if err != nil {
			return err
		}
		rendered = append(rendered, memoryNode{id: n.ID, html: nodeHTML})
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.mounts++
	d.surface = html
	d.nodes = rendered
	return nil
}

func (d *MemoryDocument) AppendNode(ctx context.Context, nodeID string, node templ.Component) error {
	html, err := RenderString(ctx, node)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.mounts == 0 {
		return ErrSurfaceMissing
	}
	if d.indexOf(nodeID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateNode, nodeID)
	}
	d.nodes = append(d.nodes, memoryNode{id: nodeID, html: html})
	return nil
}

func (d *MemoryDocument) RemoveNode(_ context.Context, nodeID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if i := d.indexOf(nodeID); i >= 0 {
		d.nodes = slices.Delete(d.nodes, i, i+1)
	}
	return nil
}

// Mounts returns how many times a surface was mounted.
func (d *MemoryDocument) Mounts() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.mounts
}

// Len returns the number of rendered toasts.
func (d *MemoryDocument) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.nodes)
}

// NodeIDs returns the rendered node ids in document order.
func (d *MemoryDocument) NodeIDs() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ids := make([]string, len(d.nodes))
	for i, n := range d.nodes {
		ids[i] = n.id
	}
	return ids
}

// HTML returns the markup of a rendered node.
func (d *MemoryDocument) HTML(nodeID string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if i := d.indexOf(nodeID); i >= 0 {
		return d.nodes[i].html, true
	}
	return "", false
}

// Surface returns the mounted surface markup, empty before the first mount.
func (d *MemoryDocument) Surface() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.surface
}

func (d *MemoryDocument) indexOf(nodeID string) int {
	return slices.IndexFunc(d.nodes, func(n memoryNode) bool { return n.id == nodeID })
}
