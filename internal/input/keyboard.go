package input

// Keyboard turns press and release events from devices that report both,
// such as a desktop window, into intents. Releasing a direction while the
// opposite one is still held moves the other way instead of stopping.
type Keyboard struct {
	held map[Key]bool
}

// NewKeyboard creates a keyboard with nothing held.
func NewKeyboard() *Keyboard {
	return &Keyboard{held: make(map[Key]bool)}
}

// Press records key going down and returns its intents.
func (k *Keyboard) Press(key Key) []Intent {
	if k.held[key] {
		return nil
	}
	k.held[key] = true

	switch key {
	case KeyLeft:
		return []Intent{IntentMoveLeft}
	case KeyRight:
		return []Intent{IntentMoveRight}
	case KeyUp:
		return []Intent{IntentMoveUp}
	case KeyDown:
		return []Intent{IntentMoveDown}
	case KeyFire:
		return []Intent{IntentFire}
	case KeyEnter:
		return []Intent{IntentConfirm}
	case KeyReset:
		return []Intent{IntentReset}
	case KeyQuit:
		return []Intent{IntentQuit}
	case KeyFocusIn:
		delete(k.held, key)
		return []Intent{IntentVisible}
	case KeyFocusOut:
		delete(k.held, key)
		return []Intent{IntentHidden}
	}
	return nil
}

// Release records key going up and returns its intents.
func (k *Keyboard) Release(key Key) []Intent {
	if !k.held[key] {
		return nil
	}
	delete(k.held, key)

	switch key {
	case KeyLeft:
		return k.settle(KeyRight, IntentMoveRight, IntentStopHorizontal)
	case KeyRight:
		return k.settle(KeyLeft, IntentMoveLeft, IntentStopHorizontal)
	case KeyUp:
		return k.settle(KeyDown, IntentMoveDown, IntentStopVertical)
	case KeyDown:
		return k.settle(KeyUp, IntentMoveUp, IntentStopVertical)
	}
	return nil
}

func (k *Keyboard) settle(other Key, move, stop Intent) []Intent {
	if k.held[other] {
		return []Intent{move}
	}
	return []Intent{stop}
}

// ReleaseAll lets go of every key, as when the window loses focus.
func (k *Keyboard) ReleaseAll() []Intent {
	var intents []Intent
	if k.held[KeyLeft] || k.held[KeyRight] {
		intents = append(intents, IntentStopHorizontal)
	}
	if k.held[KeyUp] || k.held[KeyDown] {
		intents = append(intents, IntentStopVertical)
	}
	clear(k.held)
	return intents
}

// Held reports whether key is down.
func (k *Keyboard) Held(key Key) bool {
	return k.held[key]
}
