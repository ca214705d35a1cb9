// Package session bundles the state shared by everything that reads dapi
// sources in one compilation: the source map and the diagnostics handler.
package session

import (
	"github.com/yaklabco/dapic/pkg/diag"
	"github.com/yaklabco/dapic/pkg/source"
)

// Session is shared by reference between files checked concurrently.
type Session struct {
	SourceMap *source.Map
	Diag      *diag.Handler
}

// New returns a session with a fresh source map. The handler options'
// SourceMap is set to that map.
func New(opts diag.HandlerOptions) *Session {
	sm := source.NewMap()
	opts.SourceMap = sm
	return &Session{
		SourceMap: sm,
		Diag:      diag.NewHandler(opts),
	}
}

// Default returns a session that records diagnostics without streaming them.
func Default() *Session {
	return New(diag.HandlerOptions{})
}
