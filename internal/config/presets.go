package config

import "sort"

// Presets are named variations on DefaultConfig.
var Presets = map[string]func(*Config){
	"classic": func(c *Config) {},
	"zen": func(c *Config) {
		c.Obstacles.Count = 0
		c.AI.Enabled = false
		c.Round.Lives = 99
	},
	"frantic": func(c *Config) {
		c.Round.Level = 12
		c.Round.Countdown = 1
		c.Lattice.Damping = 0.3
	},
	"marathon": func(c *Config) {
		c.Duration = 600
		c.Round.Lives = 9
	},
}

// GetPreset returns a fresh config for the named preset, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
