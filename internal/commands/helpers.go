package commands

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/raulmeloferreira/maven-mapper/pkg/config"
	"github.com/raulmeloferreira/maven-mapper/pkg/filesystem"
	"github.com/raulmeloferreira/maven-mapper/pkg/inventory"
	"github.com/raulmeloferreira/maven-mapper/pkg/origin"
	"github.com/raulmeloferreira/maven-mapper/pkg/output"
	"github.com/raulmeloferreira/maven-mapper/pkg/pom"
	"github.com/spf13/cobra"
)

// addSeparatorFlag registers the per-command --separator override.
func addSeparatorFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "separator", "s", "", `Column separator, a single character or "tab" (default from config)`)
}

// separator returns the flag value when set, else the configured separator.
func (e *env) separator(flag string) (rune, error) {
	if flag == "" {
		return e.cfg.Separator(), nil
	}
	return config.ParseSeparator(flag)
}

func (e *env) walkOptions() filesystem.WalkOptions {
	return filesystem.WalkOptions{
		IgnoreDirs:     e.cfg.Walk.ExcludeDirs,
		IgnorePatterns: e.cfg.Walk.ExcludePatterns,
		IncludeHidden:  true,
		FollowSymlinks: e.cfg.Walk.FollowSymlinks,
	}
}

func (e *env) resolver(mode origin.Mode) (*origin.Resolver, error) {
	return origin.NewResolver(origin.Options{
		BaseURL:       e.cfg.Origin.BaseURL,
		Remote:        e.cfg.Origin.Remote,
		Mode:          mode,
		SearchParents: e.cfg.Origin.SearchParents,
		CacheSize:     e.cfg.Origin.CacheSize,
	}, e.log)
}

// scanner builds the descriptor scanner used by scan.
func (e *env) scanner() (*inventory.Scanner, error) {
	resolver, err := e.resolver(origin.ModeRemote)
	if err != nil {
		return nil, err
	}
	return inventory.NewScanner(inventory.Options{Walk: e.walkOptions()}, resolver, e.log), nil
}

// requireDir fails when path is not an existing directory.
func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

// isDir reports whether path names an existing directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// logSink is the log destination of a run. A spinner takes it over while
// active so log lines print above the status line.
type logSink struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *logSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func (s *logSink) swap(w io.Writer) io.Writer {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.w
	s.w = w
	return prev
}

// startProgress shows a spinner for message and returns it with its stop func.
func (e *env) startProgress(message string) (*output.Progress, func()) {
	if !e.interactive {
		return &output.Progress{}, func() {}
	}
	p := output.StartProgress(message)
	if !p.Active() {
		return p, func() {}
	}
	prev := e.sink.swap(p)
	return p, func() {
		e.sink.swap(prev)
		p.Stop()
	}
}

// scan runs the descriptor scan under root and hands every parsed project
// to fn. Failed descriptors are recorded and skipped; an error from fn stops
// the scan.
func (e *env) scan(root string, fn func(*pom.Project) error) (inventory.Summary, error) {
	var summary inventory.Summary

	scanner, err := e.scanner()
	if err != nil {
		return summary, err
	}

	progress, stop := e.startProgress("Scanning " + root)
	defer stop()

	for res := range scanner.Scan(root) {
		summary.Record(res)
		progress.Update(fmt.Sprintf("%d projects, %d skipped", summary.Projects, len(summary.Failures)))
		if res.Err != nil {
			continue
		}
		output.Verbose(res.Path)
		if err := fn(res.Project); err != nil {
			return summary, err
		}
	}

	return summary, nil
}

// finish logs the run summary and lists skipped paths.
func (e *env) finish(summary inventory.Summary) {
	summary.Log(e.log)
	if len(summary.Failures) == 0 {
		return
	}
	output.Rule()
	output.Warn(fmt.Sprintf("%d path(s) skipped", len(summary.Failures)))
	for _, f := range summary.Failures {
		output.Step(fmt.Sprintf("%s (%s)", f.Path, f.Kind))
	}
}
