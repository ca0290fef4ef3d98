package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 1.0 / 60
	DefaultDuration = 60.0
	DefaultWidth    = 1024.0
	DefaultHeight   = 768.0
	DefaultMargin   = 10.0
	DefaultGridSize = 60
	DefaultLives    = 3
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Seed      int64           `yaml:"seed"`
	Dt        float64         `yaml:"dt"`
	Duration  float64         `yaml:"duration"`
	Arena     ArenaConfig     `yaml:"arena"`
	Lattice   LatticeConfig   `yaml:"lattice"`
	Round     RoundConfig     `yaml:"round"`
	Paddle    PaddleConfig    `yaml:"paddle"`
	AI        AIConfig        `yaml:"ai"`
	Player    PlayerConfig    `yaml:"player"`
	Obstacles ObstaclesConfig `yaml:"obstacles"`
}

type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// Margin is the gap between the screen edge and the paddle boxes.
	Margin float64 `yaml:"margin"`
}

type LatticeConfig struct {
	Size           int     `yaml:"size"`
	NodeMass       float64 `yaml:"node_mass"`
	SpringConstant float64 `yaml:"spring_constant"`
	Damping        float64 `yaml:"damping"`
}

type RoundConfig struct {
	Lives     int     `yaml:"lives"`
	Level     int     `yaml:"level"`
	Countdown float64 `yaml:"countdown"`
}

type PaddleConfig struct {
	MoveForce           float64 `yaml:"move_force"`
	WhackTorque         float64 `yaml:"whack_torque"`
	GravityBallSpeed    float64 `yaml:"gravity_ball_speed"`
	BulletSpeed         float64 `yaml:"bullet_speed"`
	GravityBallInterval float64 `yaml:"gravity_ball_interval"`
	BulletInterval      float64 `yaml:"bullet_interval"`
	SprayLevel          int     `yaml:"spray_level"`
}

type AIConfig struct {
	Enabled bool `yaml:"enabled"`
}

type PlayerConfig struct {
	// Autopilot drives the player paddle automatically in headless runs.
	Autopilot bool `yaml:"autopilot"`
}

type ObstaclesConfig struct {
	Count int `yaml:"count"`
}

func DefaultConfig() *Config {
	return &Config{
		Seed:     1,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Arena: ArenaConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Margin: DefaultMargin,
		},
		Lattice: LatticeConfig{
			Size:           DefaultGridSize,
			NodeMass:       5,
			SpringConstant: 100,
			Damping:        0.5,
		},
		Round: RoundConfig{
			Lives:     DefaultLives,
			Level:     1,
			Countdown: 2,
		},
		Paddle: PaddleConfig{
			MoveForce:           700,
			WhackTorque:         60000,
			GravityBallSpeed:    100,
			BulletSpeed:         500,
			GravityBallInterval: 4,
			BulletInterval:      0.1,
			SprayLevel:          20,
		},
		AI:        AIConfig{Enabled: true},
		Player:    PlayerConfig{Autopilot: true},
		Obstacles: ObstaclesConfig{Count: 4},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first setting the arena cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalidConfig, c.Dt)
	case c.Duration < 0:
		return fmt.Errorf("%w: duration must not be negative, got %v", ErrInvalidConfig, c.Duration)
	case c.Arena.Width <= 0 || c.Arena.Height <= 0:
		return fmt.Errorf("%w: arena must have a positive size, got %vx%v", ErrInvalidConfig, c.Arena.Width, c.Arena.Height)
	case c.Arena.Margin < 0 || 2*c.Arena.Margin >= c.Arena.Width:
		return fmt.Errorf("%w: margin %v does not fit the arena", ErrInvalidConfig, c.Arena.Margin)
	case c.Lattice.Size < 3:
		return fmt.Errorf("%w: lattice size must be at least 3, got %d", ErrInvalidConfig, c.Lattice.Size)
	case c.Lattice.NodeMass <= 0:
		return fmt.Errorf("%w: node mass must be positive, got %v", ErrInvalidConfig, c.Lattice.NodeMass)
	case c.Lattice.SpringConstant < 0:
		return fmt.Errorf("%w: spring constant must not be negative, got %v", ErrInvalidConfig, c.Lattice.SpringConstant)
	case c.Lattice.Damping < 0:
		return fmt.Errorf("%w: damping must not be negative, got %v", ErrInvalidConfig, c.Lattice.Damping)
	case c.Round.Lives < 1:
		return fmt.Errorf("%w: lives must be at least 1, got %d", ErrInvalidConfig, c.Round.Lives)
	case c.Round.Level < 1:
		return fmt.Errorf("%w: level must be at least 1, got %d", ErrInvalidConfig, c.Round.Level)
	case c.Round.Countdown < 0:
		return fmt.Errorf("%w: countdown must not be negative, got %v", ErrInvalidConfig, c.Round.Countdown)
	case c.Obstacles.Count < 0 || c.Obstacles.Count > 4:
		return fmt.Errorf("%w: obstacle count must be between 0 and 4, got %d", ErrInvalidConfig, c.Obstacles.Count)
	}
	return nil
}
