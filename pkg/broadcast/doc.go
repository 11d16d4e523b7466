// Package broadcast fans typed messages out to in-process subscribers.
//
// It carries toast patches from a page's manager to every open stream of
// that page:
//
//	b := broadcast.NewMemoryBroadcaster[toast.Patch](32)
//	sub := b.Subscribe(r.Context())
//	defer sub.Close()
//
//	for msg := range sub.Receive(r.Context()) {
//		// forward msg.Data to the client
//	}
//
// Subscribers are removed when their context ends, when they are closed, or
// when their buffer overflows.
package broadcast
