// Package input turns device events into abstract game intents.
package input

// Intent is an abstract player action, independent of the device that produced it.
type Intent int

const (
	IntentNone Intent = iota
	IntentMoveLeft
	IntentMoveRight
	IntentMoveUp
	IntentMoveDown
	IntentStopHorizontal
	IntentStopVertical
	IntentFire

	// IntentConfirm restarts the game once it is over and is ignored otherwise.
	IntentConfirm
	// IntentReset restarts the game unconditionally.
	IntentReset
	IntentHidden
	IntentVisible
	IntentQuit
)

var intentNames = [...]string{
	IntentNone:           "none",
	IntentMoveLeft:       "move-left",
	IntentMoveRight:      "move-right",
	IntentMoveUp:         "move-up",
	IntentMoveDown:       "move-down",
	IntentStopHorizontal: "stop-horizontal",
	IntentStopVertical:   "stop-vertical",
	IntentFire:           "fire",
	IntentConfirm:        "confirm",
	IntentReset:          "reset",
	IntentHidden:         "hidden",
	IntentVisible:        "visible",
	IntentQuit:           "quit",
}

func (i Intent) String() string {
	if i >= 0 && int(i) < len(intentNames) {
		return intentNames[i]
	}
	return "unknown"
}
