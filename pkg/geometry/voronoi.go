package geometry

import (
	"fmt"
)

// BoundaryEdge labels a cell edge that lies on the clipping boundary rather
// than on a bisector shared with another site.
const BoundaryEdge = -1

// DedupTolerance is the distance under which two vertices produced by
// clipping are considered the same point.
const DedupTolerance = 1e-7

// CellEdge is one directed edge of a cell polygon, labeled with the index of
// the site whose bisector created it (BoundaryEdge for region edges).
type CellEdge struct {
	A, B     Vector2D
	Neighbor int
}

// Cell is one site's clipped Voronoi region. Edges[k] runs from Polygon[k]
// to Polygon[(k+1) mod n]. A degenerate cell has an empty polygon.
type Cell struct {
	Site    Vector2D
	Polygon Polygon
	Edges   []CellEdge
}

// Diagram is a Voronoi tessellation clipped to a convex boundary.
type Diagram struct {
	Boundary Polygon
	Cells    []Cell
}

// labeledPolygon pairs a vertex loop with per-edge provenance: labels[k] is
// the label of the edge verts[k] -> verts[k+1 mod n].
type labeledPolygon struct {
	verts  []Vector2D
	labels []int
}

// BoundedVoronoi computes the Voronoi diagram of the sites clipped to the
// convex boundary. Each site's cell is the boundary polygon successively cut
// by the perpendicular bisector toward every other site, with edge labels
// recording which bisector (site index) produced each cell edge. The labels
// are what makes shared-edge adjacency derivable from the clipped result.
func BoundedVoronoi(sites []Vector2D, boundary Polygon) (*Diagram, error) {
	if len(sites) == 0 {
		return nil, fmt.Errorf("voronoi: no sites")
	}
	boundary = boundary.Dedup(DedupTolerance)
	if !boundary.IsConvex() {
		return nil, fmt.Errorf("voronoi: boundary polygon is not convex")
	}
	boundary = boundary.Normalize()

	for i := 0; i < len(sites); i++ {
		for j := i + 1; j < len(sites); j++ {
			if sites[i].DistanceTo(sites[j]) <= DedupTolerance {
				return nil, fmt.Errorf("voronoi: sites %d and %d coincide at %s", i, j, sites[i])
			}
		}
	}

	d := &Diagram{Boundary: boundary, Cells: make([]Cell, len(sites))}
	for i, site := range sites {
		cell := newLabeledPolygon(boundary)
		for j, other := range sites {
			if j == i {
				continue
			}
			// Half-plane of points at least as close to site as to other:
			// n·p <= n·m with n = other-site and m the midpoint.
			n := other.Sub(site)
			mid := site.Add(other).Mul(0.5)
			cell = cell.clip(n, n.Dot(mid), j)
			if len(cell.verts) == 0 {
				break
			}
		}
		d.Cells[i] = cell.toCell(site)
	}
	return d, nil
}

func newLabeledPolygon(p Polygon) labeledPolygon {
	lp := labeledPolygon{
		verts:  make([]Vector2D, len(p)),
		labels: make([]int, len(p)),
	}
	copy(lp.verts, p)
	for k := range lp.labels {
		lp.labels[k] = BoundaryEdge
	}
	return lp
}

// clip cuts the polygon with the half-plane n·p <= b (Sutherland-Hodgman).
// Edges created along the cut line are labeled with label; surviving pieces
// of original edges keep their labels.
func (lp labeledPolygon) clip(n Vector2D, b float64, label int) labeledPolygon {
	count := len(lp.verts)
	if count == 0 {
		return lp
	}
	var out labeledPolygon
	for k := 0; k < count; k++ {
		a := lp.verts[k]
		bb := lp.verts[(k+1)%count]
		la := lp.labels[k]

		fa := n.Dot(a) - b
		fb := n.Dot(bb) - b

		switch {
		case fa <= Epsilon && fb <= Epsilon:
			// Edge fully kept.
			out.push(a, la)
		case fa <= Epsilon && fb > Epsilon:
			// Leaving the half-plane: keep a, then the crossing point which
			// starts the new cut edge.
			out.push(a, la)
			out.push(intersect(a, bb, fa, fb), label)
		case fa > Epsilon && fb <= Epsilon:
			// Entering: the crossing point resumes the original edge.
			out.push(intersect(a, bb, fa, fb), la)
		default:
			// Edge fully outside.
		}
	}
	return out
}

func (lp *labeledPolygon) push(v Vector2D, label int) {
	lp.verts = append(lp.verts, v)
	lp.labels = append(lp.labels, label)
}

// intersect returns the point on segment a-b where the half-plane function
// (with values fa at a, fb at b) crosses zero. fa and fb have opposite signs.
func intersect(a, b Vector2D, fa, fb float64) Vector2D {
	t := fa / (fa - fb)
	return a.Add(b.Sub(a).Mul(t))
}

// toCell converts to a Cell, dropping the duplicate vertices clipping leaves
// behind and any edges they carried.
func (lp labeledPolygon) toCell(site Vector2D) Cell {
	cell := Cell{Site: site}
	count := len(lp.verts)
	if count < 3 {
		return cell
	}
	verts := make(Polygon, 0, count)
	labels := make([]int, 0, count)
	for k := 0; k < count; k++ {
		next := lp.verts[(k+1)%count]
		if lp.verts[k].DistanceTo(next) <= DedupTolerance {
			// Degenerate edge: skip the vertex, its outgoing edge collapses.
			continue
		}
		verts = append(verts, lp.verts[k])
		labels = append(labels, lp.labels[k])
	}
	if len(verts) < 3 {
		return cell
	}
	cell.Polygon = verts
	cell.Edges = make([]CellEdge, len(verts))
	for k := range verts {
		cell.Edges[k] = CellEdge{
			A:        verts[k],
			B:        verts[(k+1)%len(verts)],
			Neighbor: labels[k],
		}
	}
	return cell
}

// SharedEdges returns the edges of cell i that lie on the bisector with site
// j, in cell i's winding order.
func (d *Diagram) SharedEdges(i, j int) []CellEdge {
	var out []CellEdge
	for _, e := range d.Cells[i].Edges {
		if e.Neighbor == j {
			out = append(out, e)
		}
	}
	return out
}
