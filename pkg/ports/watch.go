package ports

import "context"

// Watchable is implemented by sources that can notify about changes.
type Watchable interface {
	// Watch returns a channel that is signaled when watched files change.
	// It abstracts away the event details, signaling only that a re-check is due.
	// The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
