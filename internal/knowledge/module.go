// Package knowledge implements the knowledge module store, the keyword
// index derived from it, and the budgeted relevance selector.
//
// Modules are loaded once at startup from JSON files and are immutable
// afterwards. The store, the index, and the selector are all safe to
// share across sessions without locking.
package knowledge

import "fmt"

// CoreModuleID is the identifier of the mandatory module that is part
// of every selection. A store without it is a configuration error.
const CoreModuleID = "core"

// Module is a named, self-contained block of reference text with its
// lookup keywords and an integer size cost (approximate token count).
type Module struct {
	ID           string
	Title        string
	Keywords     []string
	Content      string
	SizeEstimate int

	// loadOrder is the position in the store's load sequence,
	// used as the deterministic tie-breaker during selection.
	loadOrder int
}

// LoadError reports a malformed or missing knowledge source. It is
// fatal: the store is never built partially.
type LoadError struct {
	Source string // file path or module id where the problem was found
	Reason string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("knowledge load %s: %s", e.Source, e.Reason)
}
