package main

import (
	"flag"

	"github.com/Garsondee/ball-siege/internal/audio"
	"github.com/Garsondee/ball-siege/internal/game"
	"github.com/Garsondee/ball-siege/internal/ui"
	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"
)

func main() {
	var players int
	var seed int64
	var configPath string
	var mute bool
	var debug bool

	flag.IntVar(&players, "players", 0, "players (1, 2 or 4); 0 picks on screen")
	flag.Int64Var(&seed, "seed", 1, "RNG seed for ball directions and base walls")
	flag.StringVar(&configPath, "config", "", "JSON config overlaid on the defaults")
	flag.BoolVar(&mute, "mute", false, "start with sound off")
	flag.BoolVar(&debug, "debug", false, "debug logging")
	flag.Parse()

	if debug {
		log.SetLevel(log.DebugLevel)
	}

	cfg := game.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = game.LoadConfig(configPath); err != nil {
			log.WithError(err).Fatal("load config")
		}
	}

	sound := audio.NewPlayer()
	if err := sound.Init(); err != nil {
		log.WithError(err).Warn("audio unavailable, playing silent")
	}
	sound.SetMuted(mute)
	defer sound.Close()

	g := ui.New(ui.Options{
		Config:  cfg,
		Seed:    seed,
		Players: players,
		Sound:   sound,
		Logger:  log.StandardLogger(),
	})

	w, h := ui.WindowSize(cfg)
	ebiten.SetWindowTitle("Ball Siege")
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.WithError(err).Fatal("run game")
	}
}
