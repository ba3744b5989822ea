package main

import (
	"flag"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"

	"lavahop/internal/app"
	"lavahop/internal/audio"
	"lavahop/internal/tui"
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

	// The screen owns the terminal, so logs only go to a file with -debug.
	rt, err := app.NewRuntime(cfg, app.RuntimeOptions{Sound: sound})
	if err != nil {
		log.Fatal(err)
	}
	defer rt.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.WithError(err).Fatal("create screen")
	}
	if err := screen.Init(); err != nil {
		log.WithError(err).Fatal("init screen")
	}
	defer screen.Fini()

	tui.NewLoop(screen, rt.Session, cfg.TPS).Run()
	rt.Logger.Info("bye")
}
