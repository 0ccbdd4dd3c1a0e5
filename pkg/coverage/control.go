package coverage

import (
	"math"

	"github.com/lao-tseu-is-alive/go-coverage-control/pkg/geometry"
)

// ControlParams are the control-law constants: Mu the scalar gain on the
// saturated gradient term, Epsilon the strictly positive saturation constant.
type ControlParams struct {
	Mu      float64
	Epsilon float64
}

// saturate is the smooth bounded sign-like function u / (|u| + eps). Output
// stays in (-1, 1) and is exactly zero at u = 0.
func saturate(u, eps float64) float64 {
	return u / (math.Abs(u) + eps)
}

// totalGradients accumulates the full gradient felt by each agent: its own
// self gradient plus every cross gradient other agents attribute to it. Both
// directions matter: agent i's row carries dV_i/dz_i, while dV_j/dz_i lives
// in agent j's row under neighbor index i.
func totalGradients(report *GradientReport) []geometry.Vector2D {
	totals := make([]geometry.Vector2D, len(report.Agents))
	for i, row := range report.Agents {
		totals[i] = totals[i].Add(row.Self)
		for _, cross := range row.Cross {
			totals[cross.Neighbor] = totals[cross.Neighbor].Add(cross.Grad)
		}
	}
	return totals
}

// synthesizeControls maps the aggregated gradient into a bounded angular-rate
// command per agent:
//
//	w_i = w0_i + mu·w0_i·sat(dV/dx·cos(theta_i) + dV/dy·sin(theta_i))
//
// The result is returned rather than written so the orchestrator stays the
// store's only writer. A non-finite gradient is fatal and propagated.
func synthesizeControls(agents []AgentState, report *GradientReport, params ControlParams) ([]float64, error) {
	totals := totalGradients(report)
	rates := make([]float64, len(agents))
	for i := range agents {
		if !totals[i].IsFinite() {
			return nil, &NonFiniteError{Agent: i, Quantity: "total gradient"}
		}
		heading := geometry.Vector2D{
			X: math.Cos(agents[i].Pose.Theta),
			Y: math.Sin(agents[i].Pose.Theta),
		}
		u := totals[i].Dot(heading)
		rates[i] = agents[i].Omega0 + params.Mu*agents[i].Omega0*saturate(u, params.Epsilon)
	}
	return rates, nil
}
