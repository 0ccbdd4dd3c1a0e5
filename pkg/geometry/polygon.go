package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Polygon is an ordered vertex loop (not closed: the first vertex is not
// repeated at the end). Vertices are expected counter-clockwise; Normalize
// restores that orientation when needed.
type Polygon []Vector2D

// Ring converts the polygon to a closed orb.Ring for the planar algorithms.
func (p Polygon) Ring() orb.Ring {
	r := make(orb.Ring, 0, len(p)+1)
	for _, v := range p {
		r = append(r, orb.Point{v.X, v.Y})
	}
	if len(p) > 0 {
		r = append(r, orb.Point{p[0].X, p[0].Y})
	}
	return r
}

// Area returns the enclosed area of the polygon.
func (p Polygon) Area() float64 {
	if len(p) < 3 {
		return 0
	}
	return math.Abs(planar.Area(p.Ring()))
}

// Centroid returns the area centroid of the polygon. For degenerate
// (near-zero area) polygons the result is not meaningful; callers should
// check Area first or validate the output with IsFinite.
func (p Polygon) Centroid() Vector2D {
	if len(p) < 3 {
		return Vector2D{X: math.NaN(), Y: math.NaN()}
	}
	c, area := planar.CentroidArea(p.Ring())
	if math.Abs(area) < Epsilon*Epsilon {
		return Vector2D{X: math.NaN(), Y: math.NaN()}
	}
	return Vector2D{X: c[0], Y: c[1]}
}

// IsConvex reports whether the loop is convex with consistent winding.
// Collinear runs are tolerated; a zero-area loop is not convex.
func (p Polygon) IsConvex() bool {
	n := len(p)
	if n < 3 {
		return false
	}
	sign := 0.0
	for i := 0; i < n; i++ {
		a, b, c := p[i], p[(i+1)%n], p[(i+2)%n]
		cross := b.Sub(a).Cross(c.Sub(b))
		if math.Abs(cross) <= Epsilon {
			continue
		}
		if sign == 0 {
			sign = cross
		} else if sign*cross < 0 {
			return false
		}
	}
	return sign != 0
}

// Normalize returns the polygon in counter-clockwise order.
func (p Polygon) Normalize() Polygon {
	if len(p) < 3 || planar.Area(p.Ring()) >= 0 {
		return p
	}
	out := make(Polygon, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

// Contains reports whether the point lies inside or on the boundary of a
// convex counter-clockwise polygon.
func (p Polygon) Contains(pt Vector2D) bool {
	n := len(p)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		a, b := p[i], p[(i+1)%n]
		if b.Sub(a).Cross(pt.Sub(a)) < -Epsilon {
			return false
		}
	}
	return true
}

// Dedup removes consecutive vertices closer than tol, including the
// first/last wrap-around pair. Clipping routinely produces such twins.
func (p Polygon) Dedup(tol float64) Polygon {
	if len(p) == 0 {
		return p
	}
	out := make(Polygon, 0, len(p))
	for _, v := range p {
		if len(out) > 0 && out[len(out)-1].DistanceTo(v) <= tol {
			continue
		}
		out = append(out, v)
	}
	for len(out) > 1 && out[0].DistanceTo(out[len(out)-1]) <= tol {
		out = out[:len(out)-1]
	}
	return out
}
