package source

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/zeebo/xxh3"

	"github.com/yaklabco/dapic/pkg/fsutil"
)

// ErrAddressSpaceExhausted is returned when registering a file would push
// the used address space past 32 bits.
var ErrAddressSpaceExhausted = errors.New("source address space exhausted")

// Map owns every file of a session and hands out disjoint position ranges.
// Each file is followed by one unused byte so empty files still get a
// position of their own. A Map is safe for concurrent use.
type Map struct {
	used atomic.Uint32

	mu    sync.RWMutex
	files []*File
	byID  map[uint64]*File
}

// NewMap returns an empty Map whose first file starts at position 0.
func NewMap() *Map {
	return &Map{byID: make(map[uint64]*File)}
}

// LoadFile reads path from disk and registers it under its cleaned form.
// Loading the same path twice, however it is spelled, returns the same
// File. Read failures are returned as errors wrapping the fsutil sentinels.
func (m *Map) LoadFile(ctx context.Context, path string) (*File, error) {
	path = filepath.Clean(path)
	if f, ok := m.get(RealFileName(path).identity()); ok {
		return f, nil
	}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load source: %w", err)
	}

	return m.NewFile(RealFileName(path), string(content))
}

// LoadAnon registers an in-memory buffer identified by its content hash.
// It panics if the address space is exhausted.
func (m *Map) LoadAnon(src string) *File {
	return m.MustNewFile(AnonFileName(xxh3.HashString(src)), src)
}

// NewFile registers src under name and returns the new File, or the
// already registered File if name was seen before.
func (m *Map) NewFile(name FileName, src string) (*File, error) {
	id := name.identity()
	if f, ok := m.get(id); ok {
		return f, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another goroutine may have won the race between the two locks.
	if f, ok := m.byID[id]; ok {
		return f, nil
	}

	start, err := m.allocate(len(src))
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", name, err)
	}

	f := newFile(name, src, start)
	m.files = append(m.files, f)
	m.byID[id] = f

	return f, nil
}

// MustNewFile is NewFile that panics when the address space is exhausted.
func (m *Map) MustNewFile(name FileName, src string) *File {
	f, err := m.NewFile(name, src)
	if err != nil {
		panic(err)
	}
	return f
}

// allocate reserves size bytes plus one separator byte and returns the
// start of the reserved range.
func (m *Map) allocate(size int) (BytePos, error) {
	for {
		cur := m.used.Load()
		next := uint64(cur) + uint64(size) + 1
		if size < 0 || next > math.MaxUint32 {
			return 0, ErrAddressSpaceExhausted
		}
		if m.used.CompareAndSwap(cur, uint32(next)) {
			return BytePos(cur), nil
		}
	}
}

func (m *Map) get(id uint64) (*File, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.byID[id]
	return f, ok
}

// LookupFile returns the file whose range contains pos.
func (m *Map) LookupFile(pos BytePos) (*File, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.files) == 0 {
		return nil, false
	}

	idx := sort.Search(len(m.files), func(i int) bool {
		return m.files[i].StartPos > pos
	}) - 1
	if idx < 0 {
		return nil, false
	}

	f := m.files[idx]
	if !f.Contains(pos) {
		return nil, false
	}
	return f, true
}

// Position resolves pos to a file, line and column.
func (m *Map) Position(pos BytePos) (Position, bool) {
	f, ok := m.LookupFile(pos)
	if !ok {
		return Position{}, false
	}
	return f.Position(pos)
}

// SpanToSnippet returns the source text covered by span.
func (m *Map) SpanToSnippet(span Span) (string, bool) {
	if span.IsDummy() {
		return "", false
	}
	f, ok := m.LookupFile(span.Lo)
	if !ok || span.Hi > f.EndPos {
		return "", false
	}
	return f.Slice(span), true
}

// Files returns the registered files in start position order.
func (m *Map) Files() []*File {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*File(nil), m.files...)
}

// Used returns the number of bytes of address space handed out so far.
func (m *Map) Used() uint32 {
	return m.used.Load()
}
