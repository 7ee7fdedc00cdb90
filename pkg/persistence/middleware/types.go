// Package middleware decorates a ports.ReportStore with behaviour applied
// on the way to and from the backend.
package middleware

import "github.com/aretw0/envcheck/pkg/ports"

// Middleware allows wrapping a ReportStore to add behavior.
type Middleware func(ports.ReportStore) ports.ReportStore

// Chain wraps store with mws. The first middleware is the outermost one,
// so it sees reports before the others on Save.
func Chain(store ports.ReportStore, mws ...Middleware) ports.ReportStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
