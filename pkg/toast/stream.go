package toast

import (
	"context"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/toastkit/pkg/broadcast"
)

// PatchKind names a change to the rendered page.
type PatchKind string

const (
	PatchMount  PatchKind = "mount"
	PatchAppend PatchKind = "append"
	PatchRemove PatchKind = "remove"
)

// Patch is one page mutation produced by a manager.
type Patch struct {
	Kind PatchKind
	// Selector is the element the patch applies to: the document root for
	// mounts, the surface for appends and the node itself for removals.
	Selector string
	NodeID   string
	// Nodes lists the toasts a mount patch renders inside the surface.
	Nodes     []string
	Component templ.Component
}

// StreamDocument turns manager calls into patches published on a
// broadcaster, so any number of page streams can replay them to a browser.
type StreamDocument struct {
	root string
	b    broadcast.Broadcaster[Patch]
}

var _ Document = (*StreamDocument)(nil)

// NewStreamDocument creates a document mounting the surface inside the
// element matched by rootSelector.
func NewStreamDocument(rootSelector string, b broadcast.Broadcaster[Patch]) *StreamDocument {
	return &StreamDocument{root: rootSelector, b: b}
}

// Subscribe opens a stream of patches.
func (d *StreamDocument) Subscribe(ctx context.Context) broadcast.Subscriber[Patch] {
	return d.b.Subscribe(ctx)
}

// Subscribers returns the number of open streams.
func (d *StreamDocument) Subscribers() int {
	return d.b.Subscribers()
}

// Close closes every open stream.
func (d *StreamDocument) Close() error {
	return d.b.Close()
}

func (d *StreamDocument) MountSurface(ctx context.Context, surface templ.Component, nodes []Node) error {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return d.publish(ctx, Patch{Kind: PatchMount, Selector: d.root, Nodes: ids, Component: surface})
}

func (d *StreamDocument) AppendNode(ctx context.Context, nodeID string, node templ.Component) error {
	return d.publish(ctx, Patch{Kind: PatchAppend, Selector: SurfaceSelector, NodeID: nodeID, Component: node})
}

func (d *StreamDocument) RemoveNode(ctx context.Context, nodeID string) error {
	return d.publish(ctx, Patch{Kind: PatchRemove, Selector: "#" + nodeID, NodeID: nodeID})
}

func (d *StreamDocument) publish(ctx context.Context, p Patch) error {
	return d.b.Broadcast(ctx, broadcast.Message[Patch]{Data: p})
}
