// Package client renders a game to an ANSI terminal and feeds it the
// terminal's key presses. One Client serves one terminal, local or SSH.
package client

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alessiosferro/space-shooter-v1/internal/audio"
	"github.com/alessiosferro/space-shooter-v1/internal/draw"
	"github.com/alessiosferro/space-shooter-v1/internal/input"
	"github.com/alessiosferro/space-shooter-v1/internal/loop"
	"github.com/alessiosferro/space-shooter-v1/internal/loop/config"
	"github.com/alessiosferro/space-shooter-v1/internal/loop/server"
)

// hudRows is the number of terminal rows kept above the playfield.
const hudRows = 1

// Client handles rendering and input for a single terminal.
type Client struct {
	host         server.Host // nil when playing locally
	handle       *server.SessionHandle
	rules        config.Rules
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	source       *terminalSource
	sound        audio.Player
	logger       *log.Logger
	layout       draw.Layout
	termSizeFunc draw.TermSizeFunc
	stars        []draw.Point
}

// Options configures the client.
type Options struct {
	Host         server.Host // Session server; nil runs a standalone game
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Rules        config.Rules // Ignored when Host is set
	Sound        audio.Player // Defaults to the terminal bell
	Logger       *log.Logger
}

// New creates a client reading keys from r and drawing to w. With a host
// the client registers a session right away.
func New(r *bufio.Reader, w io.Writer, opts Options) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sound := opts.Sound
	if sound == nil {
		sound = audio.NewBell(w)
	}

	rules := opts.Rules
	var handle *server.SessionHandle
	if opts.Host != nil {
		rules = opts.Host.Rules()
		handle = opts.Host.Register(opts.Username)
		logger = logger.With("session", handle.ID)
	}
	if rules.TickRate == 0 {
		rules = config.Classic()
	}
	rules = rules.Normalize()

	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	layout := draw.FitAspect(termWidth, termHeight, rules.Field.Width, rules.Field.Height, hudRows)
	canvas := draw.NewScaledCanvas(layout.Cols, layout.Rows, rules.Field.Width, rules.Field.Height)
	canvas.SetOffset(layout.OffsetCol, layout.OffsetRow)

	return &Client{
		host:         opts.Host,
		handle:       handle,
		rules:        rules,
		state:        &ClientState{},
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, layout.OffsetCol, layout.OffsetRow),
		writer:       w,
		source:       newTerminalSource(r, time.Now()),
		sound:        sound,
		logger:       logger,
		layout:       layout,
		termSizeFunc: termSizeFunc,
		stars:        draw.StarField(rules.Field.Width, rules.Field.Height, config.BackgroundStars, 1),
	}
}

// Run shows the title screen, then plays until the player quits, the
// terminal closes, or ctx is done.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	draw.EnableFocusReporting(c.writer)
	draw.ClearScreen(c.writer)
	defer func() {
		if c.host != nil {
			c.host.Unregister(c.handle.ID)
		}
		draw.DisableFocusReporting(c.writer)
		draw.ClearScreen(c.writer)
		draw.ShowCursor(c.writer)
	}()

	start, err := c.runStartScreen(ctx)
	if err != nil || !start {
		return ignoreQuit(err)
	}

	c.clearScreen()
	g := c.newGame(time.Now())
	c.logger.Info("game started", "variant", c.rules.Variant)
	err = loop.NewRunner(g, c.source, c, config.ClientTargetFPS).Run(ctx)
	c.logger.Info("game finished", "score", g.Score())
	return err
}

// runStartScreen draws the title screen until the player starts or quits.
func (c *Client) runStartScreen(ctx context.Context) (bool, error) {
	intents := make(chan input.Intent, 16)
	unsubscribe := c.source.Subscribe(func(in input.Intent) {
		select {
		case intents <- in:
		default:
		}
	})
	defer unsubscribe()

	ticker := time.NewTicker(config.ClientTargetFrameTime)
	defer ticker.Stop()

	for {
		if err := c.drawStartFrame(time.Now()); err != nil {
			return false, err
		}
		select {
		case <-ctx.Done():
			return false, nil
		case in := <-intents:
			switch in {
			case input.IntentQuit:
				return false, nil
			case input.IntentFire, input.IntentConfirm:
				if !c.state.shuttingDown() {
					return true, nil
				}
			}
		case <-ticker.C:
		}
	}
}

func (c *Client) newGame(now time.Time) *loop.Game {
	if c.host != nil {
		return c.host.NewGame(c.handle, c.sound, now)
	}
	return loop.NewGame(loop.Options{Rules: c.rules, Sound: c.sound, Logger: c.logger}, now)
}

// checkSession handles server events and inactivity. It returns
// loop.ErrQuit once the session should end.
func (c *Client) checkSession(now time.Time) error {
	if c.handle != nil {
	events:
		for {
			select {
			case event, ok := <-c.handle.EventsCh:
				if !ok {
					return loop.ErrQuit
				}
				if event.Type == server.EventServerShutdown && !c.state.shuttingDown() {
					c.state.shutdownAt = now
				}
			default:
				break events
			}
		}
	}

	if c.state.shuttingDown() && now.Sub(c.state.shutdownAt) >= config.ShutdownDisplaySeconds*time.Second {
		return loop.ErrQuit
	}

	idle := now.Sub(c.source.LastInput())
	if idle > config.InactivityDisconnectUser*time.Second {
		c.logger.Info("disconnecting inactive session", "idle", idle.Round(time.Second))
		return loop.ErrQuit
	}
	c.state.inactive = idle > config.InactivityWarnUser*time.Second
	return nil
}

// updateScreen follows terminal resizes. On actual size changes it clears
// the terminal to remove residual pixels outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	layout := draw.FitAspect(termWidth, termHeight, c.rules.Field.Width, c.rules.Field.Height, hudRows)
	if layout == c.layout {
		return
	}
	c.layout = layout
	c.canvas.Resize(layout.Cols, layout.Rows)
	c.canvas.SetOffset(layout.OffsetCol, layout.OffsetRow)
	c.chunkWriter.SetOffset(layout.OffsetCol, layout.OffsetRow)
	c.clearScreen()
}

// clearScreen queues a full terminal clear and forces the next canvas
// render to repaint everything.
func (c *Client) clearScreen() {
	c.chunkWriter.WriteString("\033[H\033[2J")
	c.canvas.Invalidate()
}

func ignoreQuit(err error) error {
	if err == loop.ErrQuit {
		return nil
	}
	return err
}
