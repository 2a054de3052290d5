// Package errs provides the tagged-variant result types called for in
// spec.md §9 ("Dynamic dispatch / ad-hoc extension points"): results that
// are not failures (ambiguity, not-found) are modeled as explicit sum
// types rather than nil/ok returns or sentinel errors, so callers cannot
// forget to consider the "ambiguous" or "not found" case. Transport errors
// remain plain Go errors, since those are genuine failures to be logged
// and, per §7, never silently swallowed.
package errs

import (
	"github.com/rs/zerolog"
)

// MatchKind tags the outcome of a line/station match attempt (§4.B.1).
type MatchKind int

const (
	NoMatch MatchKind = iota
	OneMatch
	Ambiguous
)

// MatchResult is the outcome of trying to resolve a token against a set of
// candidates: none matched, exactly one matched, or more than one matched
// and disambiguation failed.
type MatchResult struct {
	Kind  MatchKind
	Value string // meaningful only when Kind == OneMatch
}

func NoneMatched() MatchResult       { return MatchResult{Kind: NoMatch} }
func OneMatched(v string) MatchResult { return MatchResult{Kind: OneMatch, Value: v} }
func AmbiguousMatch() MatchResult    { return MatchResult{Kind: Ambiguous} }

// ResolveKind tags the outcome of a catalog lookup (§4.D, §6).
type ResolveKind int

const (
	Resolved ResolveKind = iota
	NotFound
	TransportError
)

// ResolveResult is the outcome of resolving a name to a canonical id via
// the backend catalog: resolved to an id, confirmed not found (a normal,
// loggable-at-info outcome — the field simply stays null and processing
// continues per §4.D), or a transport error surfaced to the caller for
// retry at a higher layer (never retried inside the core, per §1/§5).
type ResolveResult struct {
	Kind ResolveKind
	ID   string
	Err  error
}

func ResolvedID(id string) ResolveResult   { return ResolveResult{Kind: Resolved, ID: id} }
func NoneFound() ResolveResult             { return ResolveResult{Kind: NotFound} }
func FailedTransport(err error) ResolveResult {
	return ResolveResult{Kind: TransportError, Err: err}
}

// LogAndDrop records a dropped message/report at a level appropriate to
// its kind, matching §7's requirement that no error is silently swallowed
// without a log record. reason is a short, stable, greppable tag (e.g.
// "guard_rejected", "catalog_timeout").
func LogAndDrop(log zerolog.Logger, reason string, err error) {
	ev := log.Info()
	if err != nil {
		ev = log.Warn().Err(err)
	}
	ev.Str("reason", reason).Msg("message dropped")
}
