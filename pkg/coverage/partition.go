package coverage

import (
	"fmt"

	"github.com/lao-tseu-is-alive/go-coverage-control/pkg/geometry"
)

// Partition is one timestep's clipped Voronoi tessellation. It is rebuilt
// from scratch every cycle and carries no state across cycles beyond the
// agent index ordering.
type Partition struct {
	Diagram *geometry.Diagram
}

// Partitioner produces a bounded Voronoi partition from the frozen
// virtual-center positions. The default implementation wraps pkg/geometry;
// the interface keeps the geometric primitive replaceable.
type Partitioner interface {
	Partition(sites []geometry.Vector2D, region *Region) (*Partition, error)
}

// VoronoiPartitioner is the default Partitioner.
type VoronoiPartitioner struct{}

// Partition clips each site's Voronoi cell to the region boundary.
func (VoronoiPartitioner) Partition(sites []geometry.Vector2D, region *Region) (*Partition, error) {
	d, err := geometry.BoundedVoronoi(sites, region.Vertices())
	if err != nil {
		return nil, fmt.Errorf("partition: %w", err)
	}
	return &Partition{Diagram: d}, nil
}

// Cell returns agent i's clipped cell polygon.
func (p *Partition) Cell(i int) geometry.Polygon {
	return p.Diagram.Cells[i].Polygon
}

// Adjacency is the symmetric neighbor relation induced by shared cell edges.
// The diagonal is true by convention, marking the self contribution.
type Adjacency [][]bool

// Adjacency derives the neighbor relation from the clipped diagram's labeled
// edges. Marking both directions for every labeled edge makes symmetry hold
// by construction, whichever of the two cells the edge survived clipping in.
func (p *Partition) Adjacency() Adjacency {
	n := len(p.Diagram.Cells)
	adj := make(Adjacency, n)
	for i := range adj {
		adj[i] = make([]bool, n)
		adj[i][i] = true
	}
	for i, cell := range p.Diagram.Cells {
		for _, e := range cell.Edges {
			if e.Neighbor >= 0 && e.Neighbor < n {
				adj[i][e.Neighbor] = true
				adj[e.Neighbor][i] = true
			}
		}
	}
	return adj
}

// Neighbors returns the agents adjacent to i, excluding i itself, in index
// order.
func (a Adjacency) Neighbors(i int) []int {
	var out []int
	for j, ok := range a[i] {
		if ok && j != i {
			out = append(out, j)
		}
	}
	return out
}
