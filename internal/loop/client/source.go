package client

import (
	"bufio"
	"sync/atomic"
	"time"

	"github.com/alessiosferro/space-shooter-v1/internal/input"
)

// pollInterval is how often the terminal is drained for key presses.
// It also bounds how late a synthesized stop intent can arrive.
const pollInterval = 15 * time.Millisecond

// terminalSource turns raw terminal bytes into intents. Only one
// subscription may be active at a time.
type terminalSource struct {
	stream     *input.Stream
	translator *input.Translator
	lastInput  atomic.Int64 // Unix nanoseconds of the last key press
}

func newTerminalSource(r *bufio.Reader, now time.Time) *terminalSource {
	s := &terminalSource{
		stream:     input.StartStream(r),
		translator: input.NewTranslator(),
	}
	s.lastInput.Store(now.UnixNano())
	return s
}

// LastInput returns when a key was last pressed.
func (s *terminalSource) LastInput() time.Time {
	return time.Unix(0, s.lastInput.Load())
}

// Subscribe polls the terminal on a background goroutine until the
// returned function is called. A closed terminal is reported as
// IntentQuit.
func (s *terminalSource) Subscribe(fn func(input.Intent)) func() {
	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case now := <-ticker.C:
				buf, ok := s.stream.Drain()
				if len(buf) > 0 {
					s.lastInput.Store(now.UnixNano())
				}
				for _, in := range s.translator.Translate(input.Decode(buf), now) {
					fn(in)
				}
				if !ok {
					fn(input.IntentQuit)
					return
				}
			}
		}
	}()

	return func() {
		close(stop)
		<-done
	}
}
