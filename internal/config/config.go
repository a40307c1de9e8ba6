package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/soypat/grind"
	"gopkg.in/yaml.v3"
)

// ToolConfig describes the tool being ground.
type ToolConfig struct {
	Diameter float64 `yaml:"diameter"`
	Height   float64 `yaml:"height"`    // display only
	AngleDeg float64 `yaml:"angle_deg"` // flute half angle
}

// TargetsConfig holds the metric values the search aims for.
type TargetsConfig struct {
	FrontAngleDeg    float64 `yaml:"front_angle_deg"`
	StepAngleDeg     float64 `yaml:"step_angle_deg"`
	InternalDiameter float64 `yaml:"internal_diameter"`
}

// AxisConfig is one searched axis. steps: 0 fixes the axis at min.
type AxisConfig struct {
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Steps int     `yaml:"steps"`
}

// GridConfig lists every searched axis.
type GridConfig struct {
	Width        AxisConfig `yaml:"width"`
	Diameter     AxisConfig `yaml:"diameter"`
	R1           AxisConfig `yaml:"r1"`
	R2           AxisConfig `yaml:"r2"`
	BevelDeg     AxisConfig `yaml:"bevel_deg"`
	OffsetRadius AxisConfig `yaml:"offset_radius"`
	OffsetAxis   AxisConfig `yaml:"offset_axis"`
	RotationDeg  AxisConfig `yaml:"rotation_deg"`
}

// SearchConfig tunes the grid search.
type SearchConfig struct {
	Workers      int    `yaml:"workers"`       // 0 = one per CPU
	Gate         string `yaml:"gate"`          // "nan" or "feasibility"
	DiameterMode string `yaml:"diameter_mode"` // "chord" or "outline"
	ArcSections  int    `yaml:"arc_sections"`
}

// ProbeConfig is the single configuration evaluated by the probe command.
type ProbeConfig struct {
	Diameter     float64 `yaml:"diameter"`
	Width        float64 `yaml:"width"`
	R1           float64 `yaml:"r1"`
	R2           float64 `yaml:"r2"`
	BevelDeg     float64 `yaml:"bevel_deg"`
	OffsetRadius float64 `yaml:"offset_radius"`
	OffsetAxis   float64 `yaml:"offset_axis"`
	RotationDeg  float64 `yaml:"rotation_deg"`
}

// LogConfig selects the log verbosity.
type LogConfig struct {
	Level string `yaml:"level"` // zerolog level name
}

// Config aggregates all application configuration.
type Config struct {
	Tool    ToolConfig    `yaml:"tool"`
	Targets TargetsConfig `yaml:"targets"`
	Grid    GridConfig    `yaml:"grid"`
	Search  SearchConfig  `yaml:"search"`
	Probe   ProbeConfig   `yaml:"probe"`
	Log     LogConfig     `yaml:"log"`
}

// Default returns the startup values of the grinding calculator.
func Default() *Config {
	const (
		wheelDiameter = 240.0
		toolDiameter  = 100.0
		toolAngle     = 60.0
		width         = 15.0
	)
	return &Config{
		Tool: ToolConfig{Diameter: toolDiameter, Height: 600, AngleDeg: toolAngle},
		Targets: TargetsConfig{
			FrontAngleDeg:    5,
			StepAngleDeg:     50,
			InternalDiameter: 75,
		},
		Grid: GridConfig{
			Width:        AxisConfig{Min: 15, Max: 80, Steps: 50},
			Diameter:     AxisConfig{Min: wheelDiameter, Max: wheelDiameter},
			R1:           AxisConfig{Min: 2, Max: 10, Steps: 15},
			R2:           AxisConfig{Min: 1, Max: 5, Steps: 5},
			BevelDeg:     AxisConfig{Min: 15, Max: 45, Steps: 20},
			OffsetRadius: AxisConfig{Min: 100, Max: 140, Steps: 50},
			OffsetAxis:   AxisConfig{Min: -20, Max: 20, Steps: 50},
			RotationDeg:  AxisConfig{Min: toolAngle, Max: toolAngle},
		},
		Search: SearchConfig{Gate: "nan", DiameterMode: "chord", ArcSections: grind.DefaultArcSections},
		Probe: ProbeConfig{
			Diameter:     wheelDiameter,
			Width:        width,
			R1:           2,
			R2:           1,
			BevelDeg:     15,
			OffsetRadius: toolDiameter/2 + wheelDiameter/2*0.625,
			OffsetAxis:   -width * 0.125,
			RotationDeg:  toolAngle,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML file and returns the configuration.
// Keys absent from the file keep their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML data over Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be corrected by a default.
func (c *Config) Validate() error {
	if err := c.ToolParams().Validate(); err != nil {
		return fmt.Errorf("tool: %w", err)
	}
	if err := c.GridConfig().Validate(); err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	if c.Search.Workers < 0 {
		return fmt.Errorf("search.workers must be >= 0, got %d", c.Search.Workers)
	}
	if c.Search.ArcSections < 0 {
		return fmt.Errorf("search.arc_sections must be >= 0, got %d", c.Search.ArcSections)
	}
	if _, err := grind.ParseGate(c.Search.Gate); err != nil {
		return fmt.Errorf("search.gate: %w", err)
	}
	if _, err := grind.ParseDiameterMode(c.Search.DiameterMode); err != nil {
		return fmt.Errorf("search.diameter_mode: %w", err)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

func (a AxisConfig) axis() grind.AxisRange {
	return grind.AxisRange{Min: a.Min, Max: a.Max, Steps: a.Steps}
}

// GridConfig returns the searched axes.
func (c *Config) GridConfig() grind.GridConfig {
	g := c.Grid
	return grind.GridConfig{
		Width:        g.Width.axis(),
		Diameter:     g.Diameter.axis(),
		R1:           g.R1.axis(),
		R2:           g.R2.axis(),
		Bevel:        g.BevelDeg.axis(),
		OffsetRadius: g.OffsetRadius.axis(),
		OffsetAxis:   g.OffsetAxis.axis(),
		Rotation:     g.RotationDeg.axis(),
	}
}

// ToolParams returns the tool description.
func (c *Config) ToolParams() grind.ToolParams {
	return grind.ToolParams{Diameter: c.Tool.Diameter, Height: c.Tool.Height, HalfAngleDeg: c.Tool.AngleDeg}
}

// TargetMetrics returns the metrics the search aims for.
func (c *Config) TargetMetrics() grind.Metrics {
	return grind.Metrics{
		FrontAngle:       c.Targets.FrontAngleDeg,
		StepAngle:        c.Targets.StepAngleDeg,
		InternalDiameter: c.Targets.InternalDiameter,
	}
}

// SearchConfig returns the search tuning. The logger is left for the caller to set.
// Names are assumed valid; see Validate.
func (c *Config) SearchConfig() grind.SearchConfig {
	gate, _ := grind.ParseGate(c.Search.Gate)
	mode, _ := grind.ParseDiameterMode(c.Search.DiameterMode)
	return grind.SearchConfig{
		Workers:      c.Search.Workers,
		Gate:         gate,
		DiameterMode: mode,
		ArcSections:  c.Search.ArcSections,
	}
}

// EvaluateOptions returns the evaluation options shared by search and probe.
func (c *Config) EvaluateOptions() grind.EvaluateOptions {
	s := c.SearchConfig()
	return grind.EvaluateOptions{Gate: s.Gate, Diameter: s.DiameterMode, ArcSections: s.ArcSections}
}

// ProbeParams returns the wheel and its placement for the probe command.
func (c *Config) ProbeParams() (grind.WheelParams, grind.ProfileParams) {
	p := c.Probe
	return grind.WheelParams{Diameter: p.Diameter, Width: p.Width, R1: p.R1, R2: p.R2, BevelDeg: p.BevelDeg},
		grind.ProfileParams{OffsetRadius: p.OffsetRadius, OffsetAxis: p.OffsetAxis, RotationDeg: p.RotationDeg}
}

// LogLevel parses the configured log level. An empty level means info.
func (c *Config) LogLevel() (zerolog.Level, error) {
	if c.Log.Level == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(c.Log.Level)
}
