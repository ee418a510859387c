package proxy

import "errors"

// Sentinel errors for the correspondence layer. HandshakeMismatch,
// ShortRead, and MalformedLength live in pkg/jdwp since they are framing
// concerns; these two are proxy-level invariant violations.
var (
	// ErrUnknownReplyID is returned when a reply-flagged frame from the JVM
	// references a proxy-id with no entry in the correspondence table.
	// Fatal: event packets never reach this path, since they are broadcast
	// before correspondence lookup.
	ErrUnknownReplyID = errors.New("jdwp proxy: reply references an unknown proxy id")

	// ErrDuplicateProxyID is raised if the Upstream Reader is asked to
	// insert a proxy-id that is already present in the correspondence
	// table. The Upstream Writer's monotonic counter should make this
	// unreachable; surfacing it as a hard error turns a broken invariant
	// into a visible failure instead of silently overwriting a live route.
	ErrDuplicateProxyID = errors.New("jdwp proxy: proxy id already present in correspondence table")
)
