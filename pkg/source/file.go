package source

import (
	"sort"
	"sync"

	"github.com/zeebo/xxh3"
)

// File is one source text registered in a Map. It is immutable after
// registration and safe to share between goroutines.
type File struct {
	// Name is the path or anonymous tag the file was loaded under.
	Name FileName

	// Src is the full text of the file.
	Src string

	// SrcHash is the xxh3 hash of Src.
	SrcHash uint64

	// StartPos is the position of the first byte of Src.
	StartPos BytePos

	// EndPos is StartPos plus the length of Src.
	EndPos BytePos

	id uint64

	linesOnce sync.Once
	lines     []lineInfo
}

// lineInfo holds byte offsets of one line, relative to the start of the file.
type lineInfo struct {
	start        int
	newlineStart int
	end          int
}

// Position is a resolved location inside a file.
type Position struct {
	File   *File
	Offset int
	Line   int // 1-based
	Column int // 1-based, counted in bytes
}

func newFile(name FileName, src string, start BytePos) *File {
	return &File{
		Name:     name,
		Src:      src,
		SrcHash:  xxh3.HashString(src),
		StartPos: start,
		EndPos:   start.Add(len(src)),
		id:       name.identity(),
	}
}

// ID returns the identity hash of the file's name.
func (f *File) ID() uint64 { return f.id }

// Span returns the span covering the whole file.
func (f *File) Span() Span { return Span{Lo: f.StartPos, Hi: f.EndPos} }

// Contains reports whether pos falls in the file, including its end position.
func (f *File) Contains(pos BytePos) bool {
	return pos >= f.StartPos && pos <= f.EndPos
}

// Slice returns the text covered by span, or "" if it is not inside f.
func (f *File) Slice(span Span) string {
	if span.IsDummy() || span.Lo < f.StartPos || span.Hi > f.EndPos || span.Lo > span.Hi {
		return ""
	}
	return f.Src[span.Lo-f.StartPos : span.Hi-f.StartPos]
}

// LineCount returns the number of lines in the file.
func (f *File) LineCount() int {
	return len(f.lineTable())
}

// Position converts an absolute position to a 1-based line and column.
// It reports false if pos is outside the file.
func (f *File) Position(pos BytePos) (Position, bool) {
	if !f.Contains(pos) {
		return Position{}, false
	}

	offset := pos.Sub(f.StartPos)
	lines := f.lineTable()

	idx := sort.Search(len(lines), func(i int) bool {
		return lines[i].end > offset
	})
	if idx >= len(lines) {
		idx = len(lines) - 1
	}

	return Position{
		File:   f,
		Offset: offset,
		Line:   idx + 1,
		Column: offset - lines[idx].start + 1,
	}, true
}

// LineContent returns a 1-based line without its line ending.
func (f *File) LineContent(line int) (string, bool) {
	lines := f.lineTable()
	if line < 1 || line > len(lines) {
		return "", false
	}
	info := lines[line-1]
	return f.Src[info.start:info.newlineStart], true
}

func (f *File) lineTable() []lineInfo {
	f.linesOnce.Do(func() {
		f.lines = buildLines(f.Src)
	})
	return f.lines
}

// buildLines splits src on LF, treating CRLF as a single line ending.
// The result always has at least one line.
func buildLines(src string) []lineInfo {
	var lines []lineInfo
	lineStart := 0

	for idx := range len(src) {
		if src[idx] != '\n' {
			continue
		}
		newlineStart := idx
		if idx > 0 && src[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, lineInfo{start: lineStart, newlineStart: newlineStart, end: idx + 1})
		lineStart = idx + 1
	}

	return append(lines, lineInfo{start: lineStart, newlineStart: len(src), end: len(src)})
}
