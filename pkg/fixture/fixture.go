// Package fixture locates and loads trace fixtures for a test run.
package fixture

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"github.com/tracecheck/tracecheck/pkg/logflags"
	"github.com/tracecheck/tracecheck/pkg/tracefile"
)

// DefaultCacheSize is the number of parsed traces kept in memory when
// no size is configured.
const DefaultCacheSize = 128

// Repo resolves fixture names under a base directory and caches the
// parsed traces. Test runs load the same fixtures repeatedly; parses
// are cached because a Trace is immutable and safe to share.
type Repo struct {
	dir string

	mu    sync.Mutex
	cache *lru.Cache
}

// NewRepo returns a Repo rooted at dir keeping up to cacheSize parsed
// traces. A non-positive cacheSize selects DefaultCacheSize.
func NewRepo(dir string, cacheSize int) (*Repo, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("could not open fixture directory %s: %w", dir, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("fixture path %s is not a directory", dir)
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Repo{dir: dir, cache: cache}, nil
}

// Path returns the file path of the fixture called name.
func (r *Repo) Path(name string) string {
	return filepath.Join(r.dir, name)
}

// Load returns the parsed trace for the fixture called name, parsing
// the file on the first request and serving the cached Trace
// afterwards.
func (r *Repo) Load(name string) (*tracefile.Trace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache.Get(name); ok {
		return cached.(*tracefile.Trace), nil
	}

	trace, err := tracefile.ParseFile(r.Path(name))
	if err != nil {
		return nil, err
	}
	r.cache.Add(name, trace)
	logflags.FixtureLogger().Debugf("loaded fixture %s (%d stops)", name, len(trace.Stops()))
	return trace, nil
}

// Clear drops every cached trace.
func (r *Repo) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Purge()
}
