package sfx

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/alessiosferro/space-shooter-v1/internal/audio"
)

const sampleRate = beep.SampleRate(44100)

// Speaker plays effects on the local audio device through a shared mixer.
type Speaker struct {
	mixer  *beep.Mixer
	active map[audio.Effect]*beep.Ctrl
	volume float64
}

// NewSpeaker opens the audio device. Only one Speaker may exist per process.
func NewSpeaker(volume float64) (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	s := &Speaker{
		mixer:  &beep.Mixer{},
		active: make(map[audio.Effect]*beep.Ctrl),
		volume: volume,
	}
	speaker.Play(s.mixer)
	return s, nil
}

// Play starts the effect, cutting off the previous instance of the same effect.
func (s *Speaker) Play(e audio.Effect) {
	ctrl := &beep.Ctrl{Streamer: Synthesize(e, sampleRate, s.volume)}

	speaker.Lock()
	defer speaker.Unlock()
	if prev, ok := s.active[e]; ok {
		// A Ctrl without a streamer reports drained and the mixer drops it.
		prev.Streamer = nil
	}
	s.active[e] = ctrl
	s.mixer.Add(ctrl)
}

// Close stops all sound and releases the device.
func (s *Speaker) Close() {
	speaker.Lock()
	s.mixer.Clear()
	clear(s.active)
	speaker.Unlock()
	speaker.Close()
}
