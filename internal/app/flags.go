package app

import (
	"flag"

	"falling-sand/internal/scene"
	"falling-sand/internal/sims/sand"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Size     int
	Scale    int
	TPS      int
	Seed     int64
	Radius   int
	Scene    string
	Replay   string
	HUDWidth int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Scale: 3, TPS: 60, Radius: 4, HUDWidth: 180}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Size, "size", c.Size, "grid size in cells; 0 uses the scene or default size")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for slide tie-breaks; 0 uses the scene or default seed")
	fs.IntVar(&c.Radius, "radius", c.Radius, "initial brush radius")
	fs.StringVar(&c.Scene, "scene", c.Scene, "scene file (YAML) painted on reset, or \"demo\"")
	fs.StringVar(&c.Replay, "replay", c.Replay, "play back a .sand.zst recording instead of simulating (streamed from disk)")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels; 0 hides it")
}

// GridConfig resolves the grid configuration: defaults, then the scene, then
// explicit flags.
func (c *Config) GridConfig(sc scene.Scene) sand.Config {
	cfg := sc.Config(sand.DefaultConfig())
	if c.Size > 0 {
		cfg.Size = c.Size
	}
	if c.Seed != 0 {
		cfg.Seed = c.Seed
	}
	return cfg
}
