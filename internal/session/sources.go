package session

import (
	"sync"

	"github.com/deepretrieve/deepretrieve/internal/api"
)

// SourcesRelay is a single mutable slot holding the retrieval context of the
// most recent successful query. Each publish replaces the previous value
// wholesale; nothing accumulates.
type SourcesRelay struct {
	mu      sync.RWMutex
	sources []api.SourceRef
	usedWeb bool
}

// NewSourcesRelay creates an empty relay.
func NewSourcesRelay() *SourcesRelay {
	return &SourcesRelay{}
}

// Publish replaces the slot. Called by the chat session only.
func (r *SourcesRelay) Publish(sources []api.SourceRef, usedWeb bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = sources
	r.usedWeb = usedWeb
}

// Latest returns the current retrieval context.
func (r *SourcesRelay) Latest() ([]api.SourceRef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sources, r.usedWeb
}
