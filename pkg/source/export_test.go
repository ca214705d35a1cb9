package source

// SetUsed moves the allocator so overflow can be tested without 4GiB of input.
func (m *Map) SetUsed(n uint32) { m.used.Store(n) }
