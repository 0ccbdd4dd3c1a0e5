package coverage

import "fmt"

// BarrierViolationError reports that an agent's virtual center has reached or
// crossed the relaxed region boundary: the barrier term is no longer defined
// and the state constraint is violated. It is fatal and must never be
// clamped away. Constraint is the index of the offending half-plane, or -1
// when the aggregate barrier sum itself went non-positive.
type BarrierViolationError struct {
	Agent      int
	Constraint int
	Margin     float64
}

func (e *BarrierViolationError) Error() string {
	if e.Constraint < 0 {
		return fmt.Sprintf("coverage: barrier sum non-positive for agent %d (margin %g)", e.Agent, e.Margin)
	}
	return fmt.Sprintf("coverage: agent %d violates region constraint %d (margin %g)", e.Agent, e.Constraint, e.Margin)
}

// NonFiniteError reports a NaN or Inf in a quantity that feeds the control
// law. Fatal: garbage must not propagate into commanded rates.
type NonFiniteError struct {
	Agent    int
	Quantity string
}

func (e *NonFiniteError) Error() string {
	return fmt.Sprintf("coverage: non-finite %s for agent %d", e.Quantity, e.Agent)
}
