package engine

import (
	"context"
	"time"

	"github.com/san-kum/easelab/internal/log"
)

// Load builds an engine after latency has passed, standing in for fetching
// the engine from a remote source. It returns ctx.Err() if ctx ends first.
func Load(ctx context.Context, latency time.Duration) (*Engine, error) {
	start := time.Now()
	if latency > 0 {
		timer := time.NewTimer(latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			log.Warn(log.CatEngine, "load cancelled", "after", time.Since(start))
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	log.Info(log.CatEngine, "loaded", "took", time.Since(start))
	return New(), nil
}
