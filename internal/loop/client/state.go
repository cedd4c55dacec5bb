package client

import "time"

// overlay is the text screen drawn over the playfield.
type overlay int

const (
	overlayNone     overlay = iota
	overlayGameOver         // Out of hit points, waiting for a restart
	overlayInactive         // No key pressed for a while
	overlayShutdown         // Server is going away
)

// ClientState holds per-session presentation state. The game itself keeps
// everything else.
type ClientState struct {
	overlay     overlay   // Overlay drawn on the previous frame
	inactive    bool      // Inactivity warning is showing
	shutdownAt  time.Time // When the server announced shutdown, zero if it has not
	wasGameOver bool      // Game over seen on the previous frame
	best        int       // Best score reported by the server
}

// shuttingDown reports whether the server announced a shutdown.
func (s *ClientState) shuttingDown() bool {
	return !s.shutdownAt.IsZero()
}
