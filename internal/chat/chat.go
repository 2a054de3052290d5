// Package chat defines the ingress boundary §6 describes but leaves the
// concrete platform adapter out of scope (spec.md §1): a Poller that yields
// one Update at a time, consumed by internal/pipeline.WorkerPool.
// Grounded on the teacher's habit of putting a small interface at a trust
// boundary that a real implementation satisfies later
// (internal/tools/tool.go's Tool interface, satisfied by every concrete
// tool but never itself imported outside the pipeline).
package chat

import "context"

// Update is one incoming chat message relevant to the pipeline.
type Update struct {
	ChannelID string
	AuthorID  int64
	Text      string
}

// Poller yields chat updates one at a time, blocking until one is
// available or ctx is canceled. A real implementation (long-polling a
// messaging platform's API) lives outside this module; this interface is
// the seam a worker pool drains against.
type Poller interface {
	Next(ctx context.Context) (Update, error)
}
