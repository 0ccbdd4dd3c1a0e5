package coverage

import (
	"github.com/lao-tseu-is-alive/go-coverage-control/pkg/geometry"
)

// SensitivitySet holds one timestep's centroid Jacobians: how each agent's
// cell centroid responds to infinitesimal motion of its own virtual center
// and of each neighbor's. Produced fresh every cycle and discarded after the
// gradient engine consumes it.
type SensitivitySet struct {
	// Self[i] = dC_i/dz_i, accumulated over all of i's shared edges.
	Self []geometry.Mat2
	// Cross[i][j] = dC_i/dz_j; the zero matrix when j is not adjacent to i.
	Cross [][]geometry.Mat2
}

func newSensitivitySet(n int) *SensitivitySet {
	s := &SensitivitySet{
		Self:  make([]geometry.Mat2, n),
		Cross: make([][]geometry.Mat2, n),
	}
	for i := range s.Cross {
		s.Cross[i] = make([]geometry.Mat2, n)
	}
	return s
}

// computeAgentSensitivity fills row i of the set: the self Jacobian and each
// cross Jacobian from the cell's shared edges. A degenerate cell (empty or
// near-zero area) contributes zero Jacobians, consistent with the centroid
// engine retaining the previous target for it. Reads only the frozen
// partition and agent store, so rows may be computed concurrently.
func computeAgentSensitivity(s *SensitivitySet, part *Partition, agents []AgentState, i int) error {
	cell := part.Diagram.Cells[i]
	if len(cell.Polygon) < 3 {
		return nil
	}
	mass := cell.Polygon.Area()
	if mass < geometry.Epsilon {
		return nil
	}
	zi := agents[i].VirtualCenter
	ci := agents[i].Centroid

	for _, e := range cell.Edges {
		j := e.Neighbor
		if j < 0 {
			continue
		}
		dSelf, dCross := geometry.CentroidJacobians(zi, agents[j].VirtualCenter, ci, mass, e.A, e.B)
		if !dSelf.IsFinite() || !dCross.IsFinite() {
			return &NonFiniteError{Agent: i, Quantity: "centroid Jacobian"}
		}
		s.Self[i] = s.Self[i].Add(dSelf)
		s.Cross[i][j] = s.Cross[i][j].Add(dCross)
	}
	return nil
}
