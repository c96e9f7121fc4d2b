package filesystem

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// WalkOptions configures directory traversal behavior
type WalkOptions struct {
	IgnoreDirs     []string // Directory names to skip
	IgnorePatterns []string // Glob patterns for file names to skip (e.g., "*.tmp")
	IncludeHidden  bool     // Include hidden files/dirs (default: false)
	FollowSymlinks bool     // Follow symbolic links to directories (default: false)
}

// Entry is one visited path.
type Entry struct {
	Path  string
	IsDir bool
}

// Matcher reports whether an entry name is wanted.
type Matcher func(name string) bool

// Named matches entries whose name equals name exactly.
func Named(name string) Matcher {
	return func(n string) bool { return n == name }
}

// Glob matches entry names against a glob pattern.
func Glob(pattern string) (Matcher, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}
	return g.Match, nil
}

// Walk yields every directory and file under rootPath, the root included.
// Errors for unreadable paths are yielded with the offending Entry and the
// walk continues with the next sibling.
func Walk(rootPath string, opts WalkOptions) iter.Seq2[Entry, error] {
	return walkSeq(rootPath, opts, nil)
}

// Find yields the paths of files under rootPath whose name satisfies match.
func Find(rootPath string, opts WalkOptions, match Matcher) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for entry, err := range walkSeq(rootPath, opts, nil) {
			if err != nil {
				if !yield(entry.Path, err) {
					return
				}
				continue
			}
			if entry.IsDir || !match(filepath.Base(entry.Path)) {
				continue
			}
			if !yield(entry.Path, nil) {
				return
			}
		}
	}
}

// FindDirs yields directories under rootPath whose name satisfies match.
// Matched directories are not descended into.
func FindDirs(rootPath string, opts WalkOptions, match Matcher) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for entry, err := range walkSeq(rootPath, opts, match) {
			if err != nil {
				if !yield(entry.Path, err) {
					return
				}
				continue
			}
			if !entry.IsDir || entry.Path == rootPath || !match(filepath.Base(entry.Path)) {
				continue
			}
			if !yield(entry.Path, nil) {
				return
			}
		}
	}
}

type walker struct {
	opts    WalkOptions
	ignore  []glob.Glob
	prune   Matcher
	visited map[string]bool
	yield   func(Entry, error) bool
	stopped bool
}

func walkSeq(rootPath string, opts WalkOptions, prune Matcher) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		ignore := make([]glob.Glob, 0, len(opts.IgnorePatterns))
		for _, p := range opts.IgnorePatterns {
			g, err := glob.Compile(p)
			if err != nil {
				yield(Entry{Path: rootPath}, fmt.Errorf("compiling ignore pattern %q: %w", p, err))
				return
			}
			ignore = append(ignore, g)
		}

		info, err := os.Stat(rootPath)
		if err != nil {
			yield(Entry{Path: rootPath}, fmt.Errorf("walking %s: %w", rootPath, err))
			return
		}
		if !info.IsDir() {
			yield(Entry{Path: rootPath}, nil)
			return
		}

		w := &walker{
			opts:    opts,
			ignore:  ignore,
			prune:   prune,
			visited: make(map[string]bool),
			yield:   yield,
		}
		w.dir(rootPath, true)
	}
}

func (w *walker) emit(e Entry, err error) {
	if w.stopped {
		return
	}
	if !w.yield(e, err) {
		w.stopped = true
	}
}

// dir visits one directory and its subtree.
func (w *walker) dir(path string, root bool) {
	// Keys are absolute so a relative root and an absolute link target
	// resolve to the same directory.
	resolved, err := filepath.Abs(path)
	if err == nil {
		resolved, err = filepath.EvalSymlinks(resolved)
	}
	if err != nil {
		w.emit(Entry{Path: path, IsDir: true}, fmt.Errorf("resolving %s: %w", path, err))
		return
	}
	if w.visited[resolved] {
		return
	}
	w.visited[resolved] = true

	w.emit(Entry{Path: path, IsDir: true}, nil)
	if w.stopped {
		return
	}
	if !root && w.prune != nil && w.prune(filepath.Base(path)) {
		return
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		w.emit(Entry{Path: path, IsDir: true}, fmt.Errorf("reading directory %s: %w", path, err))
		return
	}

	for _, e := range entries {
		if w.stopped {
			return
		}

		name := e.Name()
		if !w.opts.IncludeHidden && strings.HasPrefix(name, ".") {
			continue
		}

		child := filepath.Join(path, name)
		isDir := e.IsDir()

		if e.Type()&fs.ModeSymlink != 0 {
			// Broken links are reported as plain files so a matching name
			// still surfaces, and fails, at the reader.
			target, err := os.Stat(child)
			isDir = err == nil && target.IsDir()
			if isDir && !w.opts.FollowSymlinks {
				continue
			}
		}

		if isDir {
			if w.ignoredDir(name) {
				continue
			}
			w.dir(child, false)
			continue
		}

		if w.ignoredFile(name) {
			continue
		}
		w.emit(Entry{Path: child}, nil)
	}
}

func (w *walker) ignoredDir(name string) bool {
	for _, ignore := range w.opts.IgnoreDirs {
		if name == ignore {
			return true
		}
	}
	return false
}

func (w *walker) ignoredFile(name string) bool {
	for _, g := range w.ignore {
		if g.Match(name) {
			return true
		}
	}
	return false
}
