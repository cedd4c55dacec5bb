package object

import "github.com/alessiosferro/space-shooter-v1/internal/physics"

// Status is the animation state of the player ship.
type Status int

const (
	StatusIdle Status = iota
	StatusMovingLeft
	StatusMovingRight
	StatusDead
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusMovingLeft:
		return "moving-left"
	case StatusMovingRight:
		return "moving-right"
	case StatusDead:
		return "dead"
	default:
		return "unknown"
	}
}

// PlayerSpec describes a freshly spawned player.
type PlayerSpec struct {
	X, Y      float64
	Size      float64
	MaxSpeedX float64
	MaxSpeedY float64
	HP        int
}

// Player is the ship controlled by the user.
type Player struct {
	X, Y      float64
	SpeedX    float64
	SpeedY    float64
	MaxSpeedX float64
	MaxSpeedY float64
	Size      float64
	HP        int
	Status    Status

	// InvulnerableTicks counts down once per tick. Hazards are ignored
	// while it is positive.
	InvulnerableTicks int
}

// NewPlayer creates an idle, motionless player.
func NewPlayer(spec PlayerSpec) *Player {
	return &Player{
		X:         spec.X,
		Y:         spec.Y,
		MaxSpeedX: spec.MaxSpeedX,
		MaxSpeedY: spec.MaxSpeedY,
		Size:      spec.Size,
		HP:        spec.HP,
		Status:    StatusIdle,
	}
}

// Dead reports whether the ship is destroyed and awaiting respawn.
func (p *Player) Dead() bool {
	return p.Status == StatusDead
}

// Shielded reports whether hazards currently pass through the ship.
func (p *Player) Shielded() bool {
	return p.InvulnerableTicks > 0
}

// Box returns the ship's collision box.
func (p *Player) Box() physics.Rect {
	return Box(p.X, p.Y, p.Size)
}

// StartLeft begins moving left at full speed.
func (p *Player) StartLeft() {
	if p.Dead() {
		return
	}
	p.SpeedX = -p.MaxSpeedX
	p.Status = StatusMovingLeft
}

// StartRight begins moving right at full speed.
func (p *Player) StartRight() {
	if p.Dead() {
		return
	}
	p.SpeedX = p.MaxSpeedX
	p.Status = StatusMovingRight
}

// StartUp begins moving up at full speed.
func (p *Player) StartUp() {
	if p.Dead() {
		return
	}
	p.SpeedY = -p.MaxSpeedY
}

// StartDown begins moving down at full speed.
func (p *Player) StartDown() {
	if p.Dead() {
		return
	}
	p.SpeedY = p.MaxSpeedY
}

// StopHorizontal zeroes the horizontal speed.
func (p *Player) StopHorizontal() {
	if p.Dead() {
		return
	}
	p.SpeedX = 0
	p.settle()
}

// StopVertical zeroes the vertical speed.
func (p *Player) StopVertical() {
	if p.Dead() {
		return
	}
	p.SpeedY = 0
	p.settle()
}

// settle returns to idle once the ship is fully stopped.
func (p *Player) settle() {
	if p.SpeedX == 0 && p.SpeedY == 0 {
		p.Status = StatusIdle
	}
}

// Kill marks the ship destroyed and stops it.
func (p *Player) Kill() {
	p.Status = StatusDead
	p.SpeedX = 0
	p.SpeedY = 0
}

// Move applies one tick of motion inside b. A dead ship does not move.
func (p *Player) Move(b Bounds, policy BoundaryPolicy) {
	if p.Dead() {
		return
	}

	nextX := p.X + p.SpeedX
	switch {
	case nextX >= b.MinX && nextX <= b.MaxX:
		p.X = nextX
	case policy == WrapHorizontal && p.SpeedX < 0:
		p.X = b.MaxX
	case policy == WrapHorizontal && p.SpeedX > 0:
		p.X = b.MinX
	}

	nextY := p.Y + p.SpeedY
	if nextY >= b.MinY && nextY <= b.MaxY {
		p.Y = nextY
	}
}
