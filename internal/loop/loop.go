package loop

import (
	"context"
	"errors"
	"time"

	"github.com/alessiosferro/space-shooter-v1/internal/input"
)

// ErrQuit is returned by a Renderer to stop the runner without error.
var ErrQuit = errors.New("quit")

// Runner drives a Game from a frame ticker, feeding it intents from a
// source and snapshots to a renderer. Everything that touches the game
// happens on the goroutine calling Run.
type Runner struct {
	game      *Game
	source    IntentSource
	renderer  Renderer
	frameTime time.Duration
	intents   chan input.Intent
	snapshot  Snapshot
}

// NewRunner creates a runner refreshing frameRate times per second.
func NewRunner(g *Game, src IntentSource, r Renderer, frameRate int) *Runner {
	if frameRate < 1 {
		frameRate = 1
	}
	return &Runner{
		game:      g,
		source:    src,
		renderer:  r,
		frameTime: time.Second / time.Duration(frameRate),
		intents:   make(chan input.Intent, 64),
	}
}

// enqueue hands an intent to the loop goroutine. Intents are dropped when
// the loop falls too far behind.
func (r *Runner) enqueue(in input.Intent) {
	select {
	case r.intents <- in:
	default:
	}
}

// Run loops until ctx is done, an IntentQuit arrives, or the renderer
// fails. The game is closed on return.
func (r *Runner) Run(ctx context.Context) error {
	defer r.game.Close()
	if r.source != nil {
		unsubscribe := r.source.Subscribe(r.enqueue)
		defer unsubscribe()
	}

	ticker := time.NewTicker(r.frameTime)
	defer ticker.Stop()

	if err := r.frame(time.Now()); err != nil {
		return ignoreQuit(err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case in := <-r.intents:
			if in == input.IntentQuit {
				return nil
			}
			r.game.Apply(in, time.Now())
		case now := <-ticker.C:
			if err := r.frame(now); err != nil {
				return ignoreQuit(err)
			}
		}
	}
}

func (r *Runner) frame(now time.Time) error {
	r.game.Frame(now)
	r.game.SnapshotInto(&r.snapshot)
	return r.renderer.Render(r.snapshot)
}

func ignoreQuit(err error) error {
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}
