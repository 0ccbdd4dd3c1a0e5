package coverage

import (
	"math"

	"github.com/lao-tseu-is-alive/go-coverage-control/pkg/geometry"
)

// Pose is a unicycle pose: position plus heading in radians.
type Pose struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Theta float64 `json:"theta"`
}

// Position returns the pose position as a vector.
func (p Pose) Position() geometry.Vector2D {
	return geometry.Vector2D{X: p.X, Y: p.Y}
}

// AgentState is the per-agent slot of the store. All agents live in one
// contiguous slice addressed by index; the controller is the only writer
// during a cycle, workers only read.
type AgentState struct {
	ID            int
	Pose          Pose
	VirtualCenter geometry.Vector2D // the point actually tessellated
	Centroid      geometry.Vector2D // current CVT target
	Speed         float64           // nominal forward speed
	Omega0        float64           // nominal turn rate
	CommandedRate float64           // last commanded angular rate
}

// Kinematics advances agent poses and derives the tessellation site from a
// pose. The controller treats it as an external collaborator so a caller can
// plug in its own vehicle model.
type Kinematics interface {
	// Advance integrates the pose over dt using the last commanded rate.
	Advance(s *AgentState, dt float64)
	// VirtualCenter derives the Voronoi site from the current pose.
	VirtualCenter(s *AgentState) geometry.Vector2D
}

// Unicycle is the default kinematic model: constant forward speed, heading
// driven by the commanded angular rate. Lookahead places the virtual center
// that far ahead of the pose along the heading; zero collapses the site onto
// the pose position.
type Unicycle struct {
	Lookahead float64
}

// Advance integrates one timestep of unicycle motion.
func (u Unicycle) Advance(s *AgentState, dt float64) {
	s.Pose.Theta = wrapAngle(s.Pose.Theta + s.CommandedRate*dt)
	s.Pose.X += s.Speed * math.Cos(s.Pose.Theta) * dt
	s.Pose.Y += s.Speed * math.Sin(s.Pose.Theta) * dt
}

// VirtualCenter returns the pose position advanced by the lookahead offset.
func (u Unicycle) VirtualCenter(s *AgentState) geometry.Vector2D {
	return geometry.Vector2D{
		X: s.Pose.X + u.Lookahead*math.Cos(s.Pose.Theta),
		Y: s.Pose.Y + u.Lookahead*math.Sin(s.Pose.Theta),
	}
}

// wrapAngle normalizes an angle to (-Pi, Pi].
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// newAgents builds the agent store from per-agent configuration. Initial
// virtual centers come from the kinematics; the initial centroid target is
// the virtual center itself, so the retain-previous policy always has a
// finite value to fall back on.
func newAgents(cfgs []AgentConfig, kin Kinematics) []AgentState {
	agents := make([]AgentState, len(cfgs))
	for i, c := range cfgs {
		agents[i] = AgentState{
			ID:            i,
			Pose:          Pose{X: c.X, Y: c.Y, Theta: c.Theta},
			Speed:         c.Speed,
			Omega0:        c.Omega0,
			CommandedRate: c.Omega0,
		}
		agents[i].VirtualCenter = kin.VirtualCenter(&agents[i])
		agents[i].Centroid = agents[i].VirtualCenter
	}
	return agents
}

// sites returns the frozen virtual-center positions of all agents.
func sites(agents []AgentState) []geometry.Vector2D {
	out := make([]geometry.Vector2D, len(agents))
	for i := range agents {
		out[i] = agents[i].VirtualCenter
	}
	return out
}
