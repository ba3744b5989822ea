//go:build ebiten

package main

import (
	"errors"
	"flag"
	"os"

	log "github.com/sirupsen/logrus"

	"lavahop/internal/app"
	"lavahop/internal/audio"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sound := audio.NewPlayer()
	if cfg.Sound {
		if err := sound.Init(); err != nil {
			log.WithError(err).Warn("sound disabled")
		}
	}
	defer sound.Close()

	rt, err := app.NewRuntime(cfg, app.RuntimeOptions{LogOutput: os.Stderr, Sound: sound})
	if err != nil {
		log.Fatal(err)
	}
	defer rt.Close()

	game := app.New(rt.Session, cfg.Scale, cfg.TPS, cfg.HUDWidth)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("lavahop")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		rt.Logger.WithError(err).Error("game loop")
	}
}
