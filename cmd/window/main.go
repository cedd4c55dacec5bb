package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alessiosferro/space-shooter-v1/internal/audio"
	"github.com/alessiosferro/space-shooter-v1/internal/audio/sfx"
	"github.com/alessiosferro/space-shooter-v1/internal/config"
	"github.com/alessiosferro/space-shooter-v1/internal/loop"
	rules "github.com/alessiosferro/space-shooter-v1/internal/loop/config"
	"github.com/alessiosferro/space-shooter-v1/internal/window"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "window error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	r, err := rules.FromEnv()
	if err != nil {
		return err
	}

	logOut, closeLog, err := config.OpenLogOutput(os.Stderr)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()
	logger := config.NewLogger(logOut, "window")

	var sound audio.Player = audio.Silent{}
	if config.GetEnvBool("SHOOTER_AUDIO", true) {
		sp, err := sfx.NewSpeaker(config.GetEnvFloat("SHOOTER_VOLUME", 0.5))
		if err != nil {
			logger.Warn("audio unavailable", "err", err)
		} else {
			defer sp.Close()
			sound = sp
		}
	}

	g := loop.NewGame(loop.Options{Rules: r, Sound: sound, Logger: logger}, time.Now())
	w := window.New(g, logger)
	logger.Info("opening window", "variant", r.Variant, "tickRate", r.TickRate)
	return w.Run("Space Shooter", config.GetEnvFloat("SHOOTER_WINDOW_SCALE", 1.5))
}
