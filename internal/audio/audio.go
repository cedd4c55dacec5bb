// Package audio plays the game's sound effects.
package audio

import (
	"io"
	"sync"
)

// Effect is a sound the game can request.
type Effect int

const (
	EffectLaser Effect = iota
	EffectExplosion
)

func (e Effect) String() string {
	switch e {
	case EffectLaser:
		return "laser"
	case EffectExplosion:
		return "explosion"
	default:
		return "unknown"
	}
}

// Player plays sound effects. Play must not block, and playing an effect
// that is still sounding restarts it from the beginning.
type Player interface {
	Play(e Effect)
}

// Silent discards every effect.
type Silent struct{}

func (Silent) Play(Effect) {}

// Bell rings the terminal bell. It is the fallback for sessions without a
// local audio device, such as SSH clients.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell creates a bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Play(Effect) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = b.w.Write([]byte{'\a'})
}
