package source

import (
	"fmt"

	"github.com/zeebo/xxh3"
)

// FileName names a source file: either a path on disk or an anonymous
// buffer identified by the hash of its content.
type FileName struct {
	path string
	anon uint64
	real bool
}

// RealFileName returns the name of a file read from path.
func RealFileName(path string) FileName {
	return FileName{path: path, real: true}
}

// AnonFileName returns the name of an in-memory buffer with the given content hash.
func AnonFileName(hash uint64) FileName {
	return FileName{anon: hash}
}

// IsReal reports whether the name refers to a path.
func (n FileName) IsReal() bool { return n.real }

// Path returns the file path, or "" for anonymous names.
func (n FileName) Path() string { return n.path }

func (n FileName) String() string {
	if n.real {
		return n.path
	}
	return fmt.Sprintf("<anon:%x>", n.anon)
}

// identity hashes the display form so real and anonymous names never collide.
func (n FileName) identity() uint64 {
	if n.real {
		return xxh3.HashString("real:" + n.path)
	}
	return xxh3.HashString(n.String())
}
