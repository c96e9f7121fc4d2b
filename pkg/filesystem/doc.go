// Package filesystem discovers files in directory trees.
//
// # Overview
//
// Walks are lazy iterators: nothing is read until the sequence is ranged
// over, and every range re-reads the filesystem. Within a directory entries
// are visited in lexical order, so a walk over an unchanged tree always
// yields the same sequence.
//
// Symbolic links to directories are followed when FollowSymlinks is set.
// Each real directory is entered at most once, which makes link cycles safe.
// Unreadable directories are reported as errors and the walk carries on.
//
// # Usage
//
// Find every pom.xml, hidden directories included:
//
//	opts := filesystem.WalkOptions{IncludeHidden: true, FollowSymlinks: true}
//	for path, err := range filesystem.Find(root, opts, filesystem.Named("pom.xml")) {
//	    if err != nil {
//	        log.Warn("walk error", logger.F("error", err))
//	        continue
//	    }
//	    fmt.Println(path)
//	}
//
// Match by glob:
//
//	ldm, err := filesystem.Glob("*.ldm")
package filesystem
