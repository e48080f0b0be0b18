// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is wrapped by every validation failure returned from Load.
var ErrInvalidConfig = errors.New("invalid config")

// Deposit policies for the agent step.
const (
	// PolicyDeferred hides this frame's deposits from sensing until the next frame.
	PolicyDeferred = "deferred"
	// PolicyImmediate processes agents in index order with deposits visible at once.
	PolicyImmediate = "immediate"
)

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Swarm     SwarmConfig     `yaml:"swarm"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// FieldConfig holds trail grid parameters.
type FieldConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	DecayRate    float64 `yaml:"decay_rate"`    // Multiplier applied to every cell once per frame
	DepositValue float64 `yaml:"deposit_value"` // Value written (not added) at each agent's cell
}

// SwarmConfig holds agent population and motion parameters.
type SwarmConfig struct {
	Agents         int     `yaml:"agents"`
	SpawnRadius    float64 `yaml:"spawn_radius"`
	MoveSpeed      float64 `yaml:"move_speed"`
	SensorAngleDeg float64 `yaml:"sensor_angle_deg"`
	SensorDistance float64 `yaml:"sensor_distance"`
	TurnSpeed      float64 `yaml:"turn_speed"`
	RandomStrength float64 `yaml:"random_strength"` // Width of the uniform steering jitter
	WobbleStep     float64 `yaml:"wobble_step"`     // Size of the discrete {-1,0,1} heading jitter
	DepositPolicy  string  `yaml:"deposit_policy"`
	Workers        int     `yaml:"workers"` // Parallel chunks for the deferred policy; 0 = GOMAXPROCS
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	CoverageThreshold   float64 `yaml:"coverage_threshold"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FieldW32       float32 // Field.Width as float32
	FieldH32       float32 // Field.Height as float32
	SensorAngle32  float32 // Swarm.SensorAngleDeg in radians
	DecayRate32    float32
	DepositValue32 float32
	StatsTicks     int32 // Telemetry.StatsWindow in frames at Screen.TargetFPS
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are broken: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize validates c and recomputes its derived values. Call it after
// changing fields of a loaded config.
func (c *Config) Finalize() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// Validate checks that the configuration describes a runnable simulation.
func (c *Config) Validate() error {
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("%w: field dimensions must be positive, got %dx%d", ErrInvalidConfig, c.Field.Width, c.Field.Height)
	case c.Swarm.Agents <= 0:
		return fmt.Errorf("%w: agent count must be positive, got %d", ErrInvalidConfig, c.Swarm.Agents)
	case c.Field.DecayRate <= 0 || c.Field.DecayRate > 1:
		return fmt.Errorf("%w: decay_rate must be in (0,1], got %g", ErrInvalidConfig, c.Field.DecayRate)
	case c.Field.DepositValue < 0 || c.Field.DepositValue > 1:
		return fmt.Errorf("%w: deposit_value must be in [0,1], got %g", ErrInvalidConfig, c.Field.DepositValue)
	case c.Swarm.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Swarm.Workers)
	case c.Swarm.DepositPolicy != PolicyDeferred && c.Swarm.DepositPolicy != PolicyImmediate:
		return fmt.Errorf("%w: unknown deposit_policy %q", ErrInvalidConfig, c.Swarm.DepositPolicy)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FieldW32 = float32(c.Field.Width)
	c.Derived.FieldH32 = float32(c.Field.Height)
	c.Derived.SensorAngle32 = float32(c.Swarm.SensorAngleDeg * math.Pi / 180)
	c.Derived.DecayRate32 = float32(c.Field.DecayRate)
	c.Derived.DepositValue32 = float32(c.Field.DepositValue)

	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.StatsTicks = int32(c.Telemetry.StatsWindow * float64(fps))
	if c.Derived.StatsTicks < 1 {
		c.Derived.StatsTicks = 1
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
