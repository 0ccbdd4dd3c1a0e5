package coverage

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/lao-tseu-is-alive/go-coverage-control/pkg/geometry"
)

// AgentConfig is one agent's initial pose and nominal constants.
type AgentConfig struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Theta  float64 `json:"theta"`
	Speed  float64 `json:"speed"`
	Omega0 float64 `json:"omega0"`
}

// Config is the full scenario description: the convex region, the agents and
// the controller gains.
type Config struct {
	RegionVertices []geometry.Vector2D `json:"regionVertices"`
	Agents         []AgentConfig       `json:"agents"`
	Dt             float64             `json:"dt"`
	Gains          Gains               `json:"-"`

	// Flattened gain fields for the JSON surface.
	Mu        float64 `json:"mu"`
	Epsilon   float64 `json:"epsilon"`
	Tol       float64 `json:"tol"`
	QWeight   float64 `json:"qWeight"`
	Lookahead float64 `json:"lookahead"`
}

// DefaultConfig returns a runnable scenario: four unicycles in a 600x600
// square with the canonical gain set (tol 0, epsilon 6, mu 1, Q identity).
func DefaultConfig() *Config {
	cfg := &Config{
		RegionVertices: []geometry.Vector2D{
			{X: 0, Y: 0}, {X: 600, Y: 0}, {X: 600, Y: 600}, {X: 0, Y: 600},
		},
		Agents: []AgentConfig{
			{X: 150, Y: 150, Theta: 0, Speed: 12, Omega0: 1.0},
			{X: 450, Y: 150, Theta: math.Pi / 2, Speed: 12, Omega0: 1.0},
			{X: 450, Y: 450, Theta: math.Pi, Speed: 12, Omega0: 1.0},
			{X: 150, Y: 450, Theta: -math.Pi / 2, Speed: 12, Omega0: 1.0},
		},
		Dt:        0.05,
		Mu:        1.0,
		Epsilon:   6.0,
		Tol:       0.0,
		QWeight:   1.0,
		Lookahead: 0.0,
	}
	cfg.syncGains()
	return cfg
}

// syncGains copies the flattened JSON gain fields into the Gains block.
func (c *Config) syncGains() {
	c.Gains = Gains{
		Mu:        c.Mu,
		Epsilon:   c.Epsilon,
		Tol:       c.Tol,
		QWeight:   c.QWeight,
		Lookahead: c.Lookahead,
	}
}

// Validate checks the constraints the schema cannot express together with
// the ones a hand-built Config must also satisfy.
func (c *Config) Validate() error {
	if len(c.RegionVertices) < 3 {
		return fmt.Errorf("config: region needs at least 3 vertices")
	}
	if len(c.Agents) == 0 {
		return fmt.Errorf("config: at least one agent required")
	}
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %g", c.Dt)
	}
	if c.Gains.Epsilon <= 0 {
		return fmt.Errorf("config: epsilon must be strictly positive, got %g", c.Gains.Epsilon)
	}
	if c.Gains.QWeight <= 0 {
		return fmt.Errorf("config: qWeight must be positive, got %g", c.Gains.QWeight)
	}
	if c.Gains.Tol < 0 {
		return fmt.Errorf("config: tol must be non-negative, got %g", c.Gains.Tol)
	}
	return nil
}

// LoadConfig loads a scenario from a JSON file and validates it against the
// schema before unmarshalling.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	sch, err := jsonschema.Compile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	b, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.QWeight == 0 {
		cfg.QWeight = 1
	}
	cfg.syncGains()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
