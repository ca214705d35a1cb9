package symbol

// NewInterner returns a private interner so tests can observe interning
// without touching the process-wide one.
func NewInterner() *Interner { return newInterner() }
