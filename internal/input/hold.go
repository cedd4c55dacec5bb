package input

import "time"

// Terminals report key presses but never releases. A held key shows up as
// one press, a pause of the keyboard's repeat delay, then a steady stream of
// repeats. A direction counts as released once its presses stop arriving.
const (
	// DefaultInitialHold covers the pause before auto-repeat starts.
	DefaultInitialHold = 550 * time.Millisecond
	// DefaultRepeatHold covers the gap between auto-repeated presses.
	DefaultRepeatHold = 120 * time.Millisecond
)

// axis tracks one movement axis. dir is -1, 0, or +1.
type axis struct {
	dir     int
	last    time.Time
	repeats int
}

func (a *axis) press(dir int, now time.Time) {
	if a.dir == dir {
		a.repeats++
	} else {
		a.dir = dir
		a.repeats = 0
	}
	a.last = now
}

func (a *axis) expired(now time.Time, initial, repeat time.Duration) bool {
	if a.dir == 0 {
		return false
	}
	hold := initial
	if a.repeats > 0 {
		hold = repeat
	}
	return now.Sub(a.last) > hold
}

// Translator turns decoded key presses into intents, synthesizing stop
// intents when a direction's presses stop arriving.
type Translator struct {
	initialHold time.Duration
	repeatHold  time.Duration
	horizontal  axis
	vertical    axis
}

// NewTranslator creates a translator with the default hold timings.
func NewTranslator() *Translator {
	return NewTranslatorWithHold(DefaultInitialHold, DefaultRepeatHold)
}

// NewTranslatorWithHold creates a translator with explicit hold timings.
func NewTranslatorWithHold(initial, repeat time.Duration) *Translator {
	return &Translator{initialHold: initial, repeatHold: repeat}
}

// Translate converts the keys seen at now into intents, followed by any stop
// intents for directions whose hold has run out.
func (t *Translator) Translate(keys []Key, now time.Time) []Intent {
	var intents []Intent
	for _, k := range keys {
		switch k {
		case KeyLeft:
			t.horizontal.press(-1, now)
			intents = append(intents, IntentMoveLeft)
		case KeyRight:
			t.horizontal.press(1, now)
			intents = append(intents, IntentMoveRight)
		case KeyUp:
			t.vertical.press(-1, now)
			intents = append(intents, IntentMoveUp)
		case KeyDown:
			t.vertical.press(1, now)
			intents = append(intents, IntentMoveDown)
		case KeyFire:
			intents = append(intents, IntentFire)
		case KeyEnter:
			intents = append(intents, IntentConfirm)
		case KeyReset:
			t.Release()
			intents = append(intents, IntentReset)
		case KeyQuit:
			intents = append(intents, IntentQuit)
		case KeyFocusIn:
			intents = append(intents, IntentVisible)
		case KeyFocusOut:
			intents = append(intents, IntentHidden)
		}
	}
	return append(intents, t.Expire(now)...)
}

// Expire returns stop intents for every direction no longer held at now.
func (t *Translator) Expire(now time.Time) []Intent {
	var intents []Intent
	if t.horizontal.expired(now, t.initialHold, t.repeatHold) {
		t.horizontal = axis{}
		intents = append(intents, IntentStopHorizontal)
	}
	if t.vertical.expired(now, t.initialHold, t.repeatHold) {
		t.vertical = axis{}
		intents = append(intents, IntentStopVertical)
	}
	return intents
}

// Release forgets every held direction without emitting stops.
func (t *Translator) Release() {
	t.horizontal = axis{}
	t.vertical = axis{}
}

// Holding reports whether any direction is currently held.
func (t *Translator) Holding() bool {
	return t.horizontal.dir != 0 || t.vertical.dir != 0
}
