package coverage

import (
	"math"

	"github.com/lao-tseu-is-alive/go-coverage-control/pkg/geometry"
)

// CrossGradient is the gradient of one agent's cost with respect to a
// neighbor's position: dV_i/dz_j for neighbor j.
type CrossGradient struct {
	Neighbor int               `json:"neighbor"`
	Grad     geometry.Vector2D `json:"grad"`
}

// AgentGradient is agent i's row of the report: its own barrier-weighted
// cost V_i, the self gradient dV_i/dz_i, and one cross gradient per
// neighbor. In a decentralized variant this row is what agent i would
// broadcast; here it stays in-process.
type AgentGradient struct {
	Agent int               `json:"agent"`
	Cost  float64           `json:"cost"`
	Self  geometry.Vector2D `json:"self"`
	Cross []CrossGradient   `json:"cross,omitempty"`
}

// GradientReport is the full output of the gradient engine for one cycle:
// every agent's row plus the aggregate coverage cost (sum of all V_i,
// non-negative whenever the state constraint holds).
type GradientReport struct {
	Cost   float64         `json:"cost"`
	Agents []AgentGradient `json:"agents"`
}

// GradientParams are the barrier/weighting constants of the cost.
// Tol relaxes the constraint boundary (h_j = b_j - a_j·z - tol); QWeight
// scales the positive-definite weighting Q = QWeight·I.
type GradientParams struct {
	Tol     float64
	QWeight float64
}

// computeGradient evaluates the Lyapunov/barrier gradient for every agent in
// closed form from the margins, centroid targets and sensitivities of the
// current cycle. No iteration is involved.
//
// Per agent i with z its virtual center, c its centroid target and h_j the
// relaxed constraint margins:
//
//	SH     = sum_j 1/h_j
//	V_i    = (z-c)'Q(z-c) · SH / 2
//	g      = Q(z-c) · SH
//	self   = (I - (dC_i/dz_i)') g + sum_j a_j/(2 h_j^2) · (z-c)'Q(z-c)
//	crossj = -(dC_i/dz_j)' g
//
// A non-positive margin or a negative V_i means the state constraint is
// violated: fatal, reported with the agent and constraint index, never
// clamped. Non-finite output is equally fatal.
func computeGradient(agents []AgentState, adj Adjacency, sens *SensitivitySet, region *Region, params GradientParams) (*GradientReport, error) {
	report := &GradientReport{Agents: make([]AgentGradient, len(agents))}

	for i := range agents {
		z := agents[i].VirtualCenter
		c := agents[i].Centroid
		diff := z.Sub(c)

		sumInv := 0.0
		var sumCurv geometry.Vector2D
		for j, h := range region.Margins(z, params.Tol) {
			if h <= 0 {
				return nil, &BarrierViolationError{Agent: i, Constraint: j, Margin: h}
			}
			sumInv += 1 / h
			a := geometry.Vector2D{X: region.planes[j].Ax, Y: region.planes[j].Ay}
			sumCurv = sumCurv.Add(a.Mul(1 / (2 * h * h)))
		}
		if sumInv <= 0 {
			return nil, &BarrierViolationError{Agent: i, Constraint: -1, Margin: sumInv}
		}

		quad := params.QWeight * diff.LenSqr() // (z-c)'Q(z-c) with Q = QWeight·I
		cost := quad * sumInv / 2
		if cost < 0 || math.IsNaN(cost) {
			return nil, &BarrierViolationError{Agent: i, Constraint: -1, Margin: cost}
		}

		g := diff.Mul(params.QWeight * sumInv) // Q(z-c)·SH

		self := geometry.Identity2().
			Sub(sens.Self[i].Transpose()).
			MulVec(g).
			Add(sumCurv.Mul(quad))
		if !self.IsFinite() {
			return nil, &NonFiniteError{Agent: i, Quantity: "self gradient"}
		}

		row := AgentGradient{Agent: i, Cost: cost, Self: self}
		for _, j := range adj.Neighbors(i) {
			cross := sens.Cross[i][j].Transpose().MulVec(g).Mul(-1)
			if !cross.IsFinite() {
				return nil, &NonFiniteError{Agent: i, Quantity: "cross gradient"}
			}
			row.Cross = append(row.Cross, CrossGradient{Neighbor: j, Grad: cross})
		}

		report.Agents[i] = row
		report.Cost += cost
	}
	return report, nil
}
