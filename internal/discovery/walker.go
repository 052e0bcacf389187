// Package discovery finds benchmark definition files below a directory.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Suffixes accepted after the first dot of a definition file name.
var Suffixes = []string{"perf.yaml", "perf.yml"}

// IsDefinitionFile reports whether name (a path or base name) names a
// benchmark definition file, e.g. "sort.perf.yaml".
func IsDefinitionFile(name string) bool {
	base := filepath.Base(name)
	i := strings.IndexByte(base, '.')
	if i < 0 {
		return false
	}
	return slices.Contains(Suffixes, base[i+1:])
}

// Walker yields definition files depth-first. Within a directory, files come
// first in lexical order, then each subdirectory is walked in lexical order.
type Walker struct {
	// stack of pending directories; files holds the current directory's matches.
	stack []string
	files []string
}

// NewWalker returns a Walker rooted at root. A missing root yields nothing.
func NewWalker(root string) *Walker {
	return &Walker{stack: []string{root}}
}

// Next returns the next definition file. ok is false once the walk is done.
func (w *Walker) Next() (path string, ok bool, err error) {
	for len(w.files) == 0 {
		if len(w.stack) == 0 {
			return "", false, nil
		}
		dir := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		if err := w.expand(dir); err != nil {
			return "", false, err
		}
	}
	path, w.files = w.files[0], w.files[1:]
	return path, true, nil
}

func (w *Walker) expand(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var subdirs []string
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		info, err := os.Stat(path) // follows symlinks
		if err != nil {
			continue
		}
		switch {
		case info.IsDir():
			subdirs = append(subdirs, path)
		case info.Mode().IsRegular() && IsDefinitionFile(e.Name()):
			w.files = append(w.files, path)
		}
	}
	// ReadDir is sorted; push in reverse so the first subdirectory pops first.
	for i := len(subdirs) - 1; i >= 0; i-- {
		w.stack = append(w.stack, subdirs[i])
	}
	return nil
}

// Collect walks root and returns every definition file in walk order.
func Collect(root string) ([]string, error) {
	w := NewWalker(root)
	var paths []string
	for {
		path, ok, err := w.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return paths, nil
		}
		paths = append(paths, path)
	}
}
