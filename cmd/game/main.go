package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/alessiosferro/space-shooter-v1/internal/audio"
	"github.com/alessiosferro/space-shooter-v1/internal/audio/sfx"
	"github.com/alessiosferro/space-shooter-v1/internal/config"
	rules "github.com/alessiosferro/space-shooter-v1/internal/loop/config"
	"github.com/alessiosferro/space-shooter-v1/internal/loop/client"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	r, err := rules.FromEnv()
	if err != nil {
		return err
	}

	logOut, closeLog, err := config.OpenLogOutput(io.Discard)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()
	logger := config.NewLogger(logOut, "game")

	// Local audio when a device is available, the terminal bell otherwise.
	var sound audio.Player
	if config.GetEnvBool("SHOOTER_AUDIO", true) {
		sp, err := sfx.NewSpeaker(config.GetEnvFloat("SHOOTER_VOLUME", 0.5))
		if err != nil {
			logger.Warn("audio unavailable, using terminal bell", "err", err)
		} else {
			defer sp.Close()
			sound = sp
		}
	} else {
		sound = audio.Silent{}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.New(bufio.NewReader(os.Stdin), os.Stdout, client.Options{
		Rules:  r,
		Sound:  sound,
		Logger: logger,
	})
	return c.Run(ctx)
}
