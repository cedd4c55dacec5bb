// Package config centralizes all tunable game parameters.
package config

import "time"

// Playfield in logical units. Frontends scale it to fit their surface.
const (
	FieldWidth  = 350
	FieldHeight = 600
)

// Player. The ship is an 8px sprite drawn at 6x; it may not enter the
// bottom margin band.
const (
	PlayerSize           = 48
	PlayerMaxSpeedX      = 4.0
	PlayerMaxSpeedY      = 3.0
	PlayerStartX         = 150
	PlayerStartY         = 400
	PlayerBottomMargin   = 150
	InitialHP            = 5
	InvulnerabilityTicks = 200
	RespawnDelay         = 1000 * time.Millisecond
	ShieldBlinkTicks     = 8
	MaxUsernameLength    = 16
)

// Bullets
const (
	FireDelay     = 100 * time.Millisecond
	BulletOffsetX = 20
	BulletSpeed   = 5.0
	BulletSize    = 8
)

// Hazards
const (
	DefaultSpawnInterval = 800 * time.Millisecond
	HazardMinSpeed       = 0.2
	HazardMaxSpeed       = 1.2
	HazardMaxDrift       = 0.2
)

// Background
const (
	BackgroundScrollVelocity = 0.3
	BackgroundStars          = 70
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Tick rates
const (
	ClassicTickRate = 60
	ArcadeTickRate  = 144
	MaxTickRate     = 1000
)
