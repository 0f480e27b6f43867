//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"falling-sand/internal/app"
	"falling-sand/internal/core"
	"falling-sand/internal/record"
	"falling-sand/internal/scene"
	"falling-sand/internal/sims/sand"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	var (
		sim core.Sim
		sc  scene.Scene
	)
	if cfg.Replay != "" {
		player, err := record.LoadPlayer(cfg.Replay)
		if err != nil {
			log.Fatalf("load replay: %v", err)
		}
		defer player.Close()
		sim = player
	} else {
		var err error
		sc, err = scene.Resolve(cfg.Scene)
		if err != nil {
			log.Fatalf("load scene: %v", err)
		}
		grid, err := sand.NewWithConfig(cfg.GridConfig(sc))
		if err != nil {
			log.Fatalf("create grid: %v", err)
		}
		sim = grid
	}

	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	game := app.New(app.NewSession(sim, sc, cfg), cfg.HUDWidth)
	size := sim.Size()

	ebiten.SetWindowTitle("falling-sand - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
