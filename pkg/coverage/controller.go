package coverage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lao-tseu-is-alive/go-coverage-control/pkg/geometry"
)

// StepReport is the per-cycle output handed to monitoring collaborators: the
// run identity, the frozen cycle results and the commanded rates. Everything
// in it is a copy; holding on to a report is safe across later steps.
type StepReport struct {
	RunID     uuid.UUID           `json:"runId"`
	Step      int                 `json:"step"`
	Cost      float64             `json:"cost"`
	Gradient  *GradientReport     `json:"gradient"`
	Poses     []Pose              `json:"poses"`
	Centroids []geometry.Vector2D `json:"centroids"`
	Cells     []geometry.Polygon  `json:"cells"`
	Rates     []float64           `json:"rates"`
}

// Strategy is the control execution strategy. Centralized is the only
// implementation; a distributed variant would satisfy the same interface by
// exchanging GradientReport rows instead of sharing the store.
type Strategy interface {
	Step(ctx context.Context) (*StepReport, error)
}

// Controller is the centralized orchestrator. One call to Step runs a full
// cycle: integrate kinematics, rebuild the partition and centroids from the
// frozen virtual centers, evaluate sensitivities and the barrier gradient,
// synthesize the commanded rates and report.
//
// The agent store is written only here, at the integration and control
// steps; the parallel workers of a cycle only read it.
type Controller struct {
	region  *Region
	agents  []AgentState
	kin     Kinematics
	part    Partitioner
	gains   Gains
	dt      float64
	log     *zap.Logger
	runID   uuid.UUID
	step    int
	lastCos float64
}

var _ Strategy = (*Controller)(nil)

// Gains bundles the tunable constants of the controller. See DefaultConfig
// for the canonical values.
type Gains struct {
	Mu        float64
	Epsilon   float64
	Tol       float64
	QWeight   float64
	Lookahead float64
}

// NewController validates the configuration and builds a controller. The
// initial virtual center of every agent must lie strictly inside the relaxed
// region boundary; an infeasible start is reported with the agent and
// constraint index so the caller can fix the scenario.
func NewController(cfg *Config, log *zap.Logger) (*Controller, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("controller: %w", err)
	}
	region, err := NewRegion(cfg.RegionVertices)
	if err != nil {
		return nil, fmt.Errorf("controller: %w", err)
	}
	kin := Unicycle{Lookahead: cfg.Gains.Lookahead}
	agents := newAgents(cfg.Agents, kin)
	for i := range agents {
		for j, h := range region.Margins(agents[i].VirtualCenter, cfg.Gains.Tol) {
			if h <= 0 {
				return nil, fmt.Errorf("controller: infeasible start: %w",
					&BarrierViolationError{Agent: i, Constraint: j, Margin: h})
			}
		}
	}
	c := &Controller{
		region: region,
		agents: agents,
		kin:    kin,
		part:   VoronoiPartitioner{},
		gains:  cfg.Gains,
		dt:     cfg.Dt,
		log:    log,
		runID:  uuid.New(),
	}
	c.log.Info("controller ready",
		zap.String("run", c.runID.String()),
		zap.Int("agents", len(agents)),
		zap.Float64("dt", cfg.Dt))
	return c, nil
}

// SetGains replaces the tunable constants between cycles (viewer sliders).
// The kinematics are rebuilt so a changed lookahead moves the virtual
// centers from the next cycle on. Not safe to call concurrently with Step.
func (c *Controller) SetGains(g Gains) {
	c.gains = g
	c.kin = Unicycle{Lookahead: g.Lookahead}
}

// Agents returns a copy of the current agent states.
func (c *Controller) Agents() []AgentState {
	out := make([]AgentState, len(c.agents))
	copy(out, c.agents)
	return out
}

// Region returns the coverage region.
func (c *Controller) Region() *Region { return c.region }

// Cost returns the coverage cost of the last completed cycle.
func (c *Controller) Cost() float64 { return c.lastCos }

// Step runs one full control cycle. On a fatal condition (constraint
// violation, non-finite gradient) the error is returned and the store is
// left with the poses of the failed cycle but the rates of the previous one.
func (c *Controller) Step(ctx context.Context) (*StepReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Integrate: the only pose/center mutation of the cycle. Every later
	// stage observes these frozen virtual centers.
	for i := range c.agents {
		c.kin.Advance(&c.agents[i], c.dt)
		c.agents[i].VirtualCenter = c.kin.VirtualCenter(&c.agents[i])
	}

	report, err := c.evaluate(ctx)
	if err != nil {
		return nil, err
	}

	c.step++
	report.Step = c.step
	c.lastCos = report.Cost
	c.log.Debug("cycle complete", zap.Int("step", c.step), zap.Float64("cost", report.Cost))
	return report, nil
}

// evaluate runs stages 2-7 of the cycle on the current frozen positions:
// partition, centroids, adjacency, sensitivities, gradient, control, report.
// Re-running it without an intervening Advance reproduces identical output.
func (c *Controller) evaluate(ctx context.Context) (*StepReport, error) {
	n := len(c.agents)

	part, err := c.part.Partition(sites(c.agents), c.region)
	if err != nil {
		return nil, err
	}

	// Centroids are per-cell independent: fan out, join, then write.
	candidates := make([]geometry.Vector2D, n)
	accepted := make([]bool, n)
	g, _ := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			candidates[i], accepted[i] = centroidCandidate(part, c.region, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	applyCentroids(c.agents, candidates, accepted, c.log)

	adj := part.Adjacency()

	// Sensitivity rows are equally independent; the gradient stage below
	// needs every row, hence the join in between.
	sens := newSensitivitySet(n)
	g, _ = errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			return computeAgentSensitivity(sens, part, c.agents, i)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	gradient, err := computeGradient(c.agents, adj, sens, c.region,
		GradientParams{Tol: c.gains.Tol, QWeight: c.gains.QWeight})
	if err != nil {
		return nil, err
	}

	rates, err := synthesizeControls(c.agents, gradient,
		ControlParams{Mu: c.gains.Mu, Epsilon: c.gains.Epsilon})
	if err != nil {
		return nil, err
	}
	for i := range c.agents {
		c.agents[i].CommandedRate = rates[i]
	}

	return c.buildReport(part, gradient, rates), nil
}

func (c *Controller) buildReport(part *Partition, gradient *GradientReport, rates []float64) *StepReport {
	n := len(c.agents)
	report := &StepReport{
		RunID:     c.runID,
		Step:      c.step,
		Cost:      gradient.Cost,
		Gradient:  gradient,
		Poses:     make([]Pose, n),
		Centroids: make([]geometry.Vector2D, n),
		Cells:     make([]geometry.Polygon, n),
		Rates:     rates,
	}
	for i := range c.agents {
		report.Poses[i] = c.agents[i].Pose
		report.Centroids[i] = c.agents[i].Centroid
		cell := part.Cell(i)
		report.Cells[i] = make(geometry.Polygon, len(cell))
		copy(report.Cells[i], cell)
	}
	return report
}

// Run steps the controller until the step count is reached, the context is
// cancelled or a fatal condition surfaces. Returns the last report.
func (c *Controller) Run(ctx context.Context, steps int) (*StepReport, error) {
	var last *StepReport
	for s := 0; s < steps; s++ {
		report, err := c.Step(ctx)
		if err != nil {
			return last, err
		}
		last = report
	}
	return last, nil
}
