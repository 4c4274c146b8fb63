package main

import (
	"flag"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/shadowmaze/levelgen"
	"github.com/milk9111/shadowmaze/logging"
	"github.com/milk9111/shadowmaze/sim"
)

func main() {
	seed := flag.Int64("seed", 1, "seed for roaming and generated layouts")
	variant := flag.String("variant", "", "pursuer variant: pursue or sight (default from pursuer.yaml)")
	difficulty := flag.String("difficulty", "", "easy, intermediate, hard or impossible (default from pursuer.yaml)")
	layout := flag.String("layout", "genesis", "layout: "+strings.Join(levelgen.Names(), ", "))
	script := flag.String("script", "", "tengo roam script in prefabs/scripts (default from pursuer.yaml)")
	watch := flag.Bool("watch", false, "reload pursuer tuning when prefabs/ changes on disk")
	debug := flag.Bool("debug", false, "draw sight rays and roam paths")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	if err := logging.Configure(*logLevel, os.Stderr); err != nil {
		logging.Log.WithError(err).Fatal("bad log level")
	}

	s, err := sim.New(sim.Config{
		Layout:     *layout,
		Seed:       *seed,
		Difficulty: *difficulty,
		Variant:    *variant,
		Script:     *script,
	})
	if err != nil {
		logging.Log.WithError(err).Fatal("build simulation")
	}

	game := NewGame(s, *debug, *watch)
	defer game.Close()

	bounds := s.Layout.Grid.Bounds()
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(bounds.Dx(), bounds.Dy())
	ebiten.SetWindowTitle("shadowmaze")

	if err := ebiten.RunGame(game); err != nil {
		logging.Log.WithError(err).Fatal("viewer stopped")
	}
}
