package origin

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5/plumbing/format/config"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/raulmeloferreira/maven-mapper/pkg/field"
	"github.com/raulmeloferreira/maven-mapper/pkg/logger"
)

// ConfigPath is the git config location relative to a repository root.
var ConfigPath = filepath.Join(".git", "config")

// Mode selects which url assignment of the git config is used.
type Mode int

const (
	// ModeRemote takes the first url of the [remote "<Remote>"] section.
	ModeRemote Mode = iota
	// ModeFirstURL takes the first url assignment anywhere in the file.
	ModeFirstURL
)

const defaultCacheSize = 256

// Options configures a Resolver.
type Options struct {
	BaseURL       string // prefix stripped before taking the code
	Remote        string // remote name for ModeRemote (default: origin)
	Mode          Mode
	SearchParents bool // climb to the nearest ancestor holding .git/config
	CacheSize     int  // resolved config files kept in memory (default: 256)
}

// Resolver reads git remotes for project directories. It never fails:
// missing or unreadable configs resolve to an unknown Origin.
type Resolver struct {
	opts  Options
	log   logger.Logger
	cache *lru.Cache[string, Origin]
}

// NewResolver creates a Resolver that reports read problems to log.
func NewResolver(opts Options, log logger.Logger) (*Resolver, error) {
	if opts.Remote == "" {
		opts.Remote = "origin"
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	if log == nil {
		log = logger.NewSilentLogger()
	}

	cache, err := lru.New[string, Origin](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating origin cache: %w", err)
	}

	return &Resolver{opts: opts, log: log, cache: cache}, nil
}

// Resolve returns the remote URL and origin code for dir.
func (r *Resolver) Resolve(dir string) Origin {
	path, ok := r.locate(dir)
	if !ok {
		return Origin{}
	}

	if o, ok := r.cache.Get(path); ok {
		return o
	}

	url := r.readURL(path)
	o := Origin{URL: url, Code: Code(url, r.opts.BaseURL)}
	r.cache.Add(path, o)

	return o
}

// locate finds the git config for dir.
func (r *Resolver) locate(dir string) (string, bool) {
	if r.opts.SearchParents {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
	}

	for {
		candidate := filepath.Join(dir, ConfigPath)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && !info.IsDir():
			return candidate, true
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			r.log.Warn("Cannot stat git config",
				logger.F("path", candidate),
				logger.F("error", err))
			return "", false
		}

		if !r.opts.SearchParents {
			return "", false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func (r *Resolver) readURL(path string) field.Value {
	f, err := os.Open(path)
	if err != nil {
		r.log.Warn("Failed to read git config",
			logger.F("path", path),
			logger.F("error", err))
		return field.Unknown
	}
	defer f.Close()

	cfg := config.New()
	if err := config.NewDecoder(f).Decode(cfg); err != nil {
		r.log.Warn("Failed to parse git config",
			logger.F("path", path),
			logger.F("error", err))
		return field.Unknown
	}

	if r.opts.Mode == ModeFirstURL {
		return firstURL(cfg)
	}
	return remoteURL(cfg, r.opts.Remote)
}

// remoteURL returns the first url option of [remote "name"].
func remoteURL(cfg *config.Config, name string) field.Value {
	for _, s := range cfg.Sections {
		if !s.IsName("remote") {
			continue
		}
		for _, sub := range s.Subsections {
			if sub.IsName(name) {
				return firstOption(sub.Options, "url")
			}
		}
	}
	return field.Unknown
}

// firstURL returns the first url option in file order.
func firstURL(cfg *config.Config) field.Value {
	for _, s := range cfg.Sections {
		if v := firstOption(s.Options, "url"); v.IsKnown() {
			return v
		}
		for _, sub := range s.Subsections {
			if v := firstOption(sub.Options, "url"); v.IsKnown() {
				return v
			}
		}
	}
	return field.Unknown
}

func firstOption(opts config.Options, key string) field.Value {
	for _, o := range opts {
		if o.IsKey(key) {
			return field.Known(o.Value)
		}
	}
	return field.Unknown
}
