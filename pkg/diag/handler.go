package diag

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/yaklabco/dapic/pkg/source"
)

var (
	// ErrDegraded is returned by CheckDegraded once an error was emitted.
	ErrDegraded = errors.New("compilation degraded by errors")

	// ErrFatal is returned by EmitFatal.
	ErrFatal = errors.New("fatal diagnostic")
)

// Emitter receives diagnostics as soon as they are emitted.
type Emitter interface {
	Emit(d *Diagnostic)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(d *Diagnostic)

// Emit calls f(d).
func (f EmitterFunc) Emit(d *Diagnostic) { f(d) }

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	// SourceMap resolves spans for Locate and for emitters.
	SourceMap *source.Map

	// Emitter, if set, sees every diagnostic that is not suppressed.
	Emitter Emitter

	// SeverityOverrides changes the severity of diagnostics by code ID.
	SeverityOverrides map[string]Severity

	// Suppressed drops diagnostics by code ID. Suppressed diagnostics are
	// not counted.
	Suppressed map[string]bool
}

// Handler collects the diagnostics of a session. It is shared by reference
// between the lexer, the parser and the driver, and is safe for concurrent use.
type Handler struct {
	opts HandlerOptions

	mu          sync.Mutex
	diagnostics []*Diagnostic
	errors      int
	warnings    int
	advice      int
	suppressed  int
}

// NewHandler returns a Handler with the given options.
func NewHandler(opts HandlerOptions) *Handler {
	return &Handler{opts: opts}
}

// SourceMap returns the map used to resolve spans, which may be nil.
func (h *Handler) SourceMap() *source.Map { return h.opts.SourceMap }

// Emit records d and forwards it to the emitter.
func (h *Handler) Emit(d *Diagnostic) {
	if d == nil {
		return
	}

	h.mu.Lock()
	if h.opts.Suppressed[d.Code] {
		h.suppressed++
		h.mu.Unlock()
		return
	}
	if sev, ok := h.opts.SeverityOverrides[d.Code]; ok {
		d.Severity = sev
	}

	switch d.Severity {
	case SeverityError:
		h.errors++
	case SeverityWarning:
		h.warnings++
	default:
		h.advice++
	}
	h.diagnostics = append(h.diagnostics, d)
	h.mu.Unlock()

	// The emitter runs outside the lock so it may call back into the handler.
	if h.opts.Emitter != nil {
		h.opts.Emitter.Emit(d)
	}
}

// EmitFatal emits d as an error and returns an error wrapping ErrFatal
// that the caller should propagate.
func (h *Handler) EmitFatal(d *Diagnostic) error {
	d.Severity = SeverityError
	h.Emit(d)
	return fmt.Errorf("%w: %w", ErrFatal, d)
}

// ErrorCount returns the number of error diagnostics.
func (h *Handler) ErrorCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.errors
}

// WarningCount returns the number of warning diagnostics.
func (h *Handler) WarningCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.warnings
}

// AdviceCount returns the number of advisory diagnostics.
func (h *Handler) AdviceCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.advice
}

// SuppressedCount returns the number of diagnostics dropped by configuration.
func (h *Handler) SuppressedCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.suppressed
}

// Diagnostics returns a copy of everything emitted so far, in emission order.
func (h *Handler) Diagnostics() []*Diagnostic {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*Diagnostic(nil), h.diagnostics...)
}

// Degraded reports whether any error was emitted. A degraded session
// should not go on to later compilation stages.
func (h *Handler) Degraded() bool {
	return h.ErrorCount() > 0
}

// CheckDegraded returns ErrDegraded if any error was emitted.
func (h *Handler) CheckDegraded() error {
	if n := h.ErrorCount(); n > 0 {
		return fmt.Errorf("%w: %s", ErrDegraded, plural(n, "error", "errors"))
	}
	return nil
}

// Locate resolves the primary span of d.
func (h *Handler) Locate(d *Diagnostic) (source.Position, bool) {
	if h.opts.SourceMap == nil || d.Span.IsDummy() {
		return source.Position{}, false
	}
	return h.opts.SourceMap.Position(d.Span.Lo)
}

// Summary renders the final count line, for example
// "1 error, 2 warnings and 0 advisories were issued".
func (h *Handler) Summary() string {
	h.mu.Lock()
	e, w, a := h.errors, h.warnings, h.advice
	h.mu.Unlock()

	var b strings.Builder
	b.WriteString(plural(e, "error", "errors"))
	b.WriteString(", ")
	b.WriteString(plural(w, "warning", "warnings"))
	b.WriteString(" and ")
	b.WriteString(plural(a, "advisory", "advisories"))
	b.WriteString(" were issued")
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
