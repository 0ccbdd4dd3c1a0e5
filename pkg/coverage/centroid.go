package coverage

import (
	"math"

	"go.uber.org/zap"

	"github.com/lao-tseu-is-alive/go-coverage-control/pkg/geometry"
)

// centroidCandidate computes agent i's new centroid target from its clipped
// cell and reports whether it is usable. The result is clamped into
// [0, Width] x [0, Height]; a non-finite or out-of-region result is rejected
// so the caller retains the previous target (soft failure, never NaN into
// control). Safe to call concurrently across distinct agents: it only reads
// the partition and region.
func centroidCandidate(part *Partition, region *Region, i int) (geometry.Vector2D, bool) {
	poly := part.Cell(i)
	if len(poly) < 3 {
		return geometry.Vector2D{}, false
	}
	c := poly.Centroid()
	if !c.IsFinite() {
		return geometry.Vector2D{}, false
	}
	c.X = clamp(c.X, 0, region.Width())
	c.Y = clamp(c.Y, 0, region.Height())
	if !region.Contains(c) {
		return geometry.Vector2D{}, false
	}
	return c, true
}

// applyCentroids writes accepted candidates into the store and keeps the
// previous target for rejected ones. Called by the orchestrator only, after
// the parallel candidate computation has joined.
func applyCentroids(agents []AgentState, candidates []geometry.Vector2D, ok []bool, log *zap.Logger) {
	for i := range agents {
		if !ok[i] {
			log.Debug("centroid rejected, retaining previous target",
				zap.Int("agent", i),
				zap.Float64("prevX", agents[i].Centroid.X),
				zap.Float64("prevY", agents[i].Centroid.Y))
			continue
		}
		agents[i].Centroid = candidates[i]
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
