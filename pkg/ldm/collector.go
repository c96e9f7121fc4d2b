// Package ldm gathers data model files (.ldm) from git repositories into
// one folder per origin code.
package ldm

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/raulmeloferreira/maven-mapper/pkg/filesystem"
	"github.com/raulmeloferreira/maven-mapper/pkg/logger"
	"github.com/raulmeloferreira/maven-mapper/pkg/origin"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// DefaultPattern matches the data model files.
const DefaultPattern = "*.ldm"

// OriginResolver resolves the git origin of a repository directory.
type OriginResolver interface {
	Resolve(dir string) origin.Origin
}

// Copied describes one data file placed in the destination.
type Copied struct {
	Code        string
	Repository  string
	Source      string
	Destination string
}

// Summary tallies one collection run.
type Summary struct {
	Repositories int // repositories found
	Skipped      int // repositories without an origin code
	Copied       int
	Failed       int
}

// Collector finds repositories and copies their data files.
type Collector struct {
	fs       afs.Service
	resolver OriginResolver
	match    filesystem.Matcher
	log      logger.Logger
}

// NewCollector creates a Collector copying files that match pattern.
func NewCollector(resolver OriginResolver, pattern string, log logger.Logger) (*Collector, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	match, err := filesystem.Glob(pattern)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewSilentLogger()
	}
	return &Collector{fs: afs.New(), resolver: resolver, match: match, log: log}, nil
}

// Collect copies the data files of every repository under source into
// destination/<code>/. Each copied file is reported to onCopy, which may be
// nil. Per-repository and per-file failures are logged and counted.
func (c *Collector) Collect(ctx context.Context, source, destination string, onCopy func(Copied)) (Summary, error) {
	var summary Summary

	dest, err := filepath.Abs(destination)
	if err != nil {
		return summary, fmt.Errorf("resolving destination: %w", err)
	}

	repos := filesystem.FindDirs(source, filesystem.WalkOptions{IncludeHidden: true}, filesystem.Named(".git"))
	for gitDir, err := range repos {
		if err != nil {
			c.log.Warn("Walk error", logger.F("path", gitDir), logger.F("error", err))
			continue
		}

		summary.Repositories++
		repo := filepath.Dir(gitDir)

		code, ok := c.resolver.Resolve(repo).Code.Get()
		if !ok {
			summary.Skipped++
			c.log.Debug("No origin code, skipping repository", logger.F("repo", repo))
			continue
		}

		target := filepath.Join(dest, code)
		if err := c.fs.Create(ctx, target, file.DefaultDirOsMode, true); err != nil {
			summary.Failed++
			c.log.Error("Cannot create destination",
				logger.F("path", target),
				logger.F("error", err))
			continue
		}

		c.copyRepository(ctx, repo, code, target, &summary, onCopy)
	}

	return summary, nil
}

func (c *Collector) copyRepository(ctx context.Context, repo, code, target string, summary *Summary, onCopy func(Copied)) {
	for src, err := range filesystem.Find(repo, filesystem.WalkOptions{}, c.match) {
		if err != nil {
			c.log.Warn("Walk error", logger.F("path", src), logger.F("error", err))
			continue
		}

		dst := filepath.Join(target, filepath.Base(src))
		if err := c.copy(ctx, src, dst); err != nil {
			summary.Failed++
			c.log.Warn("Copy failed",
				logger.F("source", src),
				logger.F("error", err))
			continue
		}

		summary.Copied++
		c.log.Debug("Copied data file", logger.F("source", src), logger.F("destination", dst))
		if onCopy != nil {
			onCopy(Copied{Code: code, Repository: repo, Source: src, Destination: dst})
		}
	}
}

func (c *Collector) copy(ctx context.Context, src, dst string) error {
	abs, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	data, err := c.fs.DownloadWithURL(ctx, abs)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	if err := c.fs.Upload(ctx, dst, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}
