// Package ratelimit implements §5's single mutable datum: a last-notify
// timestamp per channel, read-modify-written under a lock, used by
// POST /report-inspector to enforce the default 5-minutes-between-
// notifications rule (§6). Grounded on the teacher's Cache interface
// (internal/tools/cache.go) for the pluggable-backend shape: one
// in-process mutex-guarded implementation, one Redis-backed implementation
// for multi-instance deployments, behind the same interface.
package ratelimit

import (
	"context"
	"time"
)

// Limiter guards a single "may I notify this channel now" decision. Allow
// reports whether the caller may proceed and, if so, atomically records
// now as the new last-notify time.
type Limiter interface {
	Allow(ctx context.Context, channel string, now time.Time) (bool, error)
}
