// Package sfx synthesizes the game's effects and plays them on the local
// audio device. It links the platform audio backend, so only local
// front ends import it.
package sfx

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/alessiosferro/space-shooter-v1/internal/audio"
)

const (
	laserDuration     = 120 * time.Millisecond
	explosionDuration = 350 * time.Millisecond
)

// LaserGenerator is a falling pitch sweep with a fast decay.
type LaserGenerator struct {
	sr       beep.SampleRate
	pos      int
	phase    float64
	from, to float64
	length   int
}

// NewLaserGenerator creates a sweep from 1400Hz down to 350Hz.
func NewLaserGenerator(sr beep.SampleRate) *LaserGenerator {
	return &LaserGenerator{sr: sr, from: 1400, to: 350, length: sr.N(laserDuration)}
}

func (g *LaserGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.length), 1)
		freq := g.from + (g.to-g.from)*progress

		// Square-ish tone: fundamental plus a third harmonic.
		v := math.Sin(2*math.Pi*g.phase) + math.Sin(6*math.Pi*g.phase)/3
		sample := 0.5 * v * (1 - progress)

		samples[i][0] = sample
		samples[i][1] = sample

		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *LaserGenerator) Err() error {
	return nil
}

// ExplosionGenerator is decaying noise over a low rumble.
type ExplosionGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed int64
}

// NewExplosionGenerator creates an explosion generator. The seed only
// changes the noise texture.
func NewExplosionGenerator(sr beep.SampleRate, seed int64) *ExplosionGenerator {
	return &ExplosionGenerator{sr: sr, seed: seed & 0x7fffffff}
}

func (g *ExplosionGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 9)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1
		rumble := math.Sin(2 * math.Pi * 60 * t)

		sample := envelope * (0.6*noise + 0.4*rumble)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ExplosionGenerator) Err() error {
	return nil
}

// Synthesize returns a finite streamer for the effect at the given volume
// (0 is silent, 1 is unchanged).
func Synthesize(e audio.Effect, sr beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch e {
	case audio.EffectLaser:
		s = beep.Take(sr.N(laserDuration), NewLaserGenerator(sr))
	default:
		s = beep.Take(sr.N(explosionDuration), NewExplosionGenerator(sr, time.Now().UnixNano()))
	}
	return newVolume(s, volume)
}

// newVolume scales a streamer. math.Log2(0) is -Inf, so zero is handled as silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
