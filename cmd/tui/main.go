package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"

	"github.com/Garsondee/ball-siege/internal/game"
	"github.com/Garsondee/ball-siege/internal/term"
	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"
)

func main() {
	var players int
	var seed int64
	var configPath string
	var logPath string

	flag.IntVar(&players, "players", 1, "players (1, 2 or 4)")
	flag.Int64Var(&seed, "seed", 1, "RNG seed for ball directions and base walls")
	flag.StringVar(&configPath, "config", "", "JSON config overlaid on the defaults")
	flag.StringVar(&logPath, "log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	cfg := game.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = game.LoadConfig(configPath); err != nil {
			log.WithError(err).Fatal("load config")
		}
	}

	// The screen owns the terminal, so logs go to a file or nowhere.
	logger := log.New()
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			log.WithError(err).Fatal("open log")
		}
		defer f.Close()
		logger.SetOutput(f)
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetOutput(io.Discard)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.WithError(err).Fatal("open terminal")
	}
	if err := screen.Init(); err != nil {
		log.WithError(err).Fatal("init terminal")
	}

	app, err := term.New(screen, term.Options{Config: cfg, Seed: seed, Players: players, Logger: logger})
	if err != nil {
		screen.Fini()
		log.WithError(err).Fatal("start match")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = app.Run(ctx)
	stop()
	screen.Fini()
	if err != nil {
		log.WithError(err).Fatal("run")
	}
	if out, over := app.Match().Result(); over {
		log.Info(out.Text())
	}
}
