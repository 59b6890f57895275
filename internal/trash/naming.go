package trash

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// nameMax is the byte limit most filesystems place on a single entry name.
const nameMax = 255

// Namer picks collision-free names inside a single directory. It remembers
// every name it has handed out, so entries resolved in the same run never
// collide with each other even before they land on disk.
//
// The on-disk probe and the later move are separate steps, so another
// process writing into the directory in between can still take a name
// the Namer considered free. The move itself reports that as a failure.
type Namer struct {
	dir   string
	taken map[string]struct{}
}

// NewNamer returns a Namer for the given directory.
func NewNamer(dir string) *Namer {
	return &Namer{
		dir:   dir,
		taken: make(map[string]struct{}),
	}
}

// UniqueName returns base, or base with a numeric suffix when base is
// already present in the directory or was handed out earlier. The result
// always fits in nameMax bytes.
func (n *Namer) UniqueName(base string) string {
	base = truncateName(base, nameMax)

	name := base
	counter := 1
	for !n.free(name) {
		suffix := fmt.Sprintf("_%d", counter)
		name = truncateName(base, nameMax-len(suffix)) + suffix
		counter++
	}

	n.taken[name] = struct{}{}
	return name
}

func (n *Namer) free(name string) bool {
	if _, ok := n.taken[name]; ok {
		return false
	}
	_, err := os.Lstat(filepath.Join(n.dir, name))
	return err != nil
}

// truncateName shortens name to at most max bytes without splitting a
// multi-byte rune.
func truncateName(name string, max int) string {
	if len(name) <= max {
		return name
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return name[:cut]
}
