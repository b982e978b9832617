package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Battle-Sense/internal/config"
	"github.com/Garsondee/Battle-Sense/internal/game"
	"github.com/Garsondee/Battle-Sense/internal/roster"
	"github.com/Garsondee/Battle-Sense/internal/sim"
)

func main() {
	cfg, err := sim.LoadConfig()
	if err != nil {
		config.Exitf("error: %v", err)
	}
	opts := game.Options{
		Seed:   cfg.Seed,
		Logger: config.NewLogger(nil, cfg.LogLevel),
	}
	if cfg.Scenario != "" {
		if opts.Scenario, err = roster.LoadScenario(cfg.Scenario); err != nil {
			config.Exitf("error: %v", err)
		}
	}

	g, err := game.New(opts)
	if err != nil {
		config.Exitf("error: %v", err)
	}
	ebiten.SetWindowTitle("Battle Sense")
	ebiten.SetWindowSize(1280, 720)
	if err := ebiten.RunGame(g); err != nil {
		config.Exitf("error: %v", err)
	}
}
