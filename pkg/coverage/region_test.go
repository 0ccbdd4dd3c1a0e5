package coverage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lao-tseu-is-alive/go-coverage-control/pkg/geometry"
)

func unitSquare() []geometry.Vector2D {
	return []geometry.Vector2D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
}

func TestNewRegion_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		vertices []geometry.Vector2D
	}{
		{
			name:     "too few vertices",
			vertices: []geometry.Vector2D{{X: 0, Y: 0}, {X: 1, Y: 0}},
		},
		{
			name: "non-convex loop",
			vertices: []geometry.Vector2D{
				{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 0.2}, {X: 2, Y: 2}, {X: 0, Y: 2},
			},
		},
		{
			name:     "zero area",
			vertices: []geometry.Vector2D{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegion(tt.vertices)
			require.Error(t, err)
		})
	}
}

func TestNewRegion_UnitSquare(t *testing.T) {
	r, err := NewRegion(unitSquare())
	require.NoError(t, err)

	require.Equal(t, 1.0, r.Width())
	require.Equal(t, 1.0, r.Height())
	require.Len(t, r.Planes(), 4)

	center := geometry.Vector2D{X: 0.5, Y: 0.5}
	for _, h := range r.Margins(center, 0) {
		require.InDelta(t, 0.5, h, 1e-12, "center is 0.5 from every edge")
	}

	c := r.Centroid()
	require.InDelta(t, 0.5, c.X, 1e-12)
	require.InDelta(t, 0.5, c.Y, 1e-12)
}

func TestNewRegion_DropsDoubledVertices(t *testing.T) {
	vertices := []geometry.Vector2D{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1e-10}, {X: 1, Y: 1}, {X: 0, Y: 1},
	}
	r, err := NewRegion(vertices)
	require.NoError(t, err)
	require.Len(t, r.Planes(), 4, "the near-coincident vertex must not yield a fifth constraint")
	require.Len(t, r.Vertices(), 4)
}

func TestRegion_NormalsPointOutward(t *testing.T) {
	r, err := NewRegion(unitSquare())
	require.NoError(t, err)

	inside := geometry.Vector2D{X: 0.5, Y: 0.5}
	outside := geometry.Vector2D{X: 1.5, Y: 0.5}
	for _, h := range r.Planes() {
		require.Positive(t, h.Margin(inside))
	}
	crossed := 0
	for _, h := range r.Planes() {
		if h.Margin(outside) < 0 {
			crossed++
		}
	}
	require.Equal(t, 1, crossed, "outside point crosses exactly the right edge")
}

func TestRegion_ClockwiseInputNormalized(t *testing.T) {
	cw := []geometry.Vector2D{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	r, err := NewRegion(cw)
	require.NoError(t, err)

	inside := geometry.Vector2D{X: 0.5, Y: 0.5}
	for _, h := range r.Margins(inside, 0) {
		require.Positive(t, h)
	}
	require.True(t, r.Contains(inside))
	require.False(t, r.Contains(geometry.Vector2D{X: -0.1, Y: 0.5}))
}

func TestRegion_MarginsWithTolerance(t *testing.T) {
	r, err := NewRegion(unitSquare())
	require.NoError(t, err)

	p := geometry.Vector2D{X: 0.5, Y: 0.5}
	for _, h := range r.Margins(p, 0.2) {
		require.InDelta(t, 0.3, h, 1e-12)
	}
}
