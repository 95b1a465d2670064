package script

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/san-kum/easelab/internal/log"
)

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// Compiler compiles sources and caches the results by source text. Failed
// compilations are cached too, so re-running an unchanged broken buffer
// reports the same error without parsing again.
type Compiler struct {
	cache *gocache.Cache
}

type entry struct {
	compiled *Compiled
	err      error
}

// NewCompiler creates a caching compiler.
func NewCompiler(defaultExpiration, cleanupInterval time.Duration) *Compiler {
	return &Compiler{cache: gocache.New(defaultExpiration, cleanupInterval)}
}

// Compile returns the cached result for source, compiling on a miss.
func (c *Compiler) Compile(source string) (*Compiled, error) {
	if v, ok := c.cache.Get(source); ok {
		if e, ok := v.(entry); ok {
			log.Debug(log.CatScript, "cache hit", "bytes", len(source))
			return e.compiled, e.err
		}
		log.Error(log.CatScript, "wrong type in compile cache")
	}
	compiled, err := Compile(source)
	if err != nil {
		log.ErrorErr(log.CatScript, "compile failed", err)
	}
	c.cache.SetDefault(source, entry{compiled: compiled, err: err})
	return compiled, err
}

// Len returns the number of cached sources.
func (c *Compiler) Len() int { return c.cache.ItemCount() }

// Flush drops every cached result.
func (c *Compiler) Flush() { c.cache.Flush() }
