package coverage

import (
	"fmt"

	"github.com/lao-tseu-is-alive/go-coverage-control/pkg/geometry"
)

// HalfPlane is one linear boundary constraint: Ax·x + Ay·y <= B holds for
// every point of the region interior.
type HalfPlane struct {
	Ax, Ay, B float64
}

// Margin returns the constraint slack B - (Ax·x + Ay·y) at p. Positive
// inside, zero on the constraint line, negative outside.
func (h HalfPlane) Margin(p geometry.Vector2D) float64 {
	return h.B - (h.Ax*p.X + h.Ay*p.Y)
}

// Region is the bounded convex domain to be covered. Immutable after
// construction: the vertex loop, the derived half-plane constraints and the
// x/y extents never change during a run.
type Region struct {
	vertices geometry.Polygon
	planes   []HalfPlane
	width    float64
	height   float64
}

// NewRegion builds a region from a convex vertex loop and derives the
// half-plane coefficients of each edge. Non-convex or degenerate (near zero
// area) input is a fatal configuration error.
func NewRegion(vertices []geometry.Vector2D) (*Region, error) {
	poly := geometry.Polygon(vertices).Dedup(geometry.DedupTolerance)
	if len(poly) < 3 {
		return nil, fmt.Errorf("region: need at least 3 vertices, got %d", len(poly))
	}
	if !poly.IsConvex() {
		return nil, fmt.Errorf("region: vertex loop is not convex")
	}
	if poly.Area() < geometry.Epsilon {
		return nil, fmt.Errorf("region: vertex loop has zero area")
	}
	poly = poly.Normalize()

	r := &Region{
		vertices: poly,
		planes:   make([]HalfPlane, len(poly)),
	}
	for i := range poly {
		a := poly[i]
		b := poly[(i+1)%len(poly)]
		// Counter-clockwise winding: the reversed edge direction rotated a
		// quarter turn counter-clockwise points outward.
		n := a.Sub(b).Perp().Normalize()
		r.planes[i] = HalfPlane{Ax: n.X, Ay: n.Y, B: n.Dot(a)}
		if a.X > r.width {
			r.width = a.X
		}
		if a.Y > r.height {
			r.height = a.Y
		}
	}
	return r, nil
}

// Vertices returns the region's vertex loop (counter-clockwise).
func (r *Region) Vertices() geometry.Polygon {
	return r.vertices
}

// Planes returns the half-plane constraints, one per edge.
func (r *Region) Planes() []HalfPlane {
	return r.planes
}

// Width returns the x extent of the region.
func (r *Region) Width() float64 { return r.width }

// Height returns the y extent of the region.
func (r *Region) Height() float64 { return r.height }

// Contains reports whether p lies inside or on the boundary.
func (r *Region) Contains(p geometry.Vector2D) bool {
	return r.vertices.Contains(p)
}

// Centroid returns the area centroid of the region polygon.
func (r *Region) Centroid() geometry.Vector2D {
	return r.vertices.Centroid()
}

// Margins returns, per constraint, the slack b - (a·p) - tol at p. These are
// the barrier denominators: every entry must stay strictly positive for the
// barrier to be defined.
func (r *Region) Margins(p geometry.Vector2D, tol float64) []float64 {
	out := make([]float64, len(r.planes))
	for i, h := range r.planes {
		out[i] = h.Margin(p) - tol
	}
	return out
}
