package app

import (
	"flag"
	"io"
	"testing"

	"falling-sand/internal/scene"
	"falling-sand/internal/sims/sand"
)

func TestConfigBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("sandbox", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)

	args := []string{"-size", "64", "-scale", "5", "-seed", "9", "-radius", "7", "-scene", "demo", "-hud", "0"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Size != 64 || cfg.Scale != 5 || cfg.Seed != 9 || cfg.Radius != 7 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Scene != scene.DemoName || cfg.HUDWidth != 0 || cfg.TPS != 60 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestGridConfigPrecedence(t *testing.T) {
	def := sand.DefaultConfig()

	cfg := NewConfig()
	if got := cfg.GridConfig(scene.Scene{}); got != def {
		t.Fatalf("no scene, no flags: got %+v, want %+v", got, def)
	}

	sc := scene.Scene{Size: 40, Seed: 3}
	if got := cfg.GridConfig(sc); got.Size != 40 || got.Seed != 3 {
		t.Fatalf("scene values not used: %+v", got)
	}

	cfg.Size = 80
	cfg.Seed = 11
	if got := cfg.GridConfig(sc); got.Size != 80 || got.Seed != 11 {
		t.Fatalf("flags should override scene: %+v", got)
	}
}
