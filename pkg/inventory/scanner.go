// Package inventory drives the extraction pass: it walks a tree for
// descriptors, parses each one, attaches the repository origin and hands the
// results to the caller one at a time.
package inventory

import (
	"iter"
	"path/filepath"

	"github.com/raulmeloferreira/maven-mapper/pkg/filesystem"
	"github.com/raulmeloferreira/maven-mapper/pkg/logger"
	"github.com/raulmeloferreira/maven-mapper/pkg/origin"
	"github.com/raulmeloferreira/maven-mapper/pkg/pom"
)

// OriginResolver resolves the git origin of a project directory.
type OriginResolver interface {
	Resolve(dir string) origin.Origin
}

// Result is the outcome of one descriptor, or of one walk error when
// Project is nil and Path names the unreadable location.
type Result struct {
	Path    string
	Project *pom.Project
	Err     error
}

// Options configures a Scanner.
type Options struct {
	Walk     filesystem.WalkOptions
	FileName string // descriptor name (default: pom.xml)
}

// Scanner runs the extraction pass over a directory tree.
type Scanner struct {
	opts     Options
	resolver OriginResolver
	log      logger.Logger
}

// NewScanner creates a Scanner. A nil resolver leaves every origin unknown.
func NewScanner(opts Options, resolver OriginResolver, log logger.Logger) *Scanner {
	if opts.FileName == "" {
		opts.FileName = pom.FileName
	}
	if log == nil {
		log = logger.NewSilentLogger()
	}
	return &Scanner{opts: opts, resolver: resolver, log: log}
}

// Scan yields one Result per descriptor found under root. Failures are
// logged and yielded; they never stop the walk.
func (s *Scanner) Scan(root string) iter.Seq[Result] {
	return func(yield func(Result) bool) {
		s.log.Info("Scanning for descriptors",
			logger.F("root", root),
			logger.F("file", s.opts.FileName))

		for path, err := range filesystem.Find(root, s.opts.Walk, filesystem.Named(s.opts.FileName)) {
			var r Result
			if err != nil {
				r = s.failed(path, err)
			} else {
				r = s.extract(path)
			}
			if !yield(r) {
				return
			}
		}
	}
}

func (s *Scanner) extract(path string) Result {
	project, err := pom.ParseFile(path)
	if err != nil {
		return s.failed(path, err)
	}

	if s.resolver != nil {
		project.Origin = s.resolver.Resolve(filepath.Dir(path))
	}

	s.log.Debug("Parsed descriptor",
		logger.F("path", path),
		logger.F("artifact", project.Coordinates.ArtifactID.Or("?")),
		logger.F("dependencies", len(project.Dependencies)))

	return Result{Path: path, Project: project}
}

func (s *Scanner) failed(path string, err error) Result {
	s.log.Warn("Skipping descriptor",
		logger.F("path", path),
		logger.F("kind", Classify(err)),
		logger.F("error", err))
	return Result{Path: path, Err: err}
}
