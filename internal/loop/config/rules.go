package config

import (
	"fmt"
	"time"

	env "github.com/alessiosferro/space-shooter-v1/internal/config"
	"github.com/alessiosferro/space-shooter-v1/internal/object"
)

// SpawnPolicy selects how hazards enter the playfield.
type SpawnPolicy int

const (
	// SpawnTimed creates one hazard per wall-clock interval while visible.
	SpawnTimed SpawnPolicy = iota
	// SpawnPhased creates hazards from tick countdowns walking a phase list.
	SpawnPhased
)

func (p SpawnPolicy) String() string {
	if p == SpawnPhased {
		return "phased"
	}
	return "interval"
}

// Variant names a preset ruleset.
type Variant string

const (
	VariantClassic Variant = "classic"
	VariantArcade  Variant = "arcade"
	VariantWrap    Variant = "wrap"
)

// Rules is everything that differs between game variants.
type Rules struct {
	Variant  Variant
	TickRate int
	Field    object.Playfield
	Player   object.PlayerSpec

	BottomMargin         float64
	Boundary             object.BoundaryPolicy
	InvulnerabilityTicks int
	RespawnDelay         time.Duration

	FireDelay     time.Duration
	BulletOffsetX float64
	BulletSpeed   float64
	BulletSize    float64

	Spawn         SpawnPolicy
	SpawnInterval time.Duration
	IntervalKind  object.HazardKind
	Phases        []object.Phase
	LoopPhases    bool
	Motion        object.Motion
	HitboxInset   float64

	HazardExplosion object.Animation
	PlayerExplosion object.Animation
	// DualExplosion also blows up the hazard that destroyed the player.
	DualExplosion   bool

	BackgroundVelocity float64

	// Seed feeds the game's random source. Zero means seed from the clock.
	Seed int64
}

// TickInterval returns the duration of one simulation step.
func (r Rules) TickInterval() time.Duration {
	return time.Second / time.Duration(r.TickRate)
}

// PlayerBounds returns the region the player may occupy.
func (r Rules) PlayerBounds() object.Bounds {
	return r.Field.PlayerBounds(r.Player.Size, r.BottomMargin)
}

// Classic is the original ruleset: 60 ticks per second, meteors on a timer.
func Classic() Rules {
	return Rules{
		Variant:  VariantClassic,
		TickRate: ClassicTickRate,
		Field:    object.Playfield{Width: FieldWidth, Height: FieldHeight},
		Player: object.PlayerSpec{
			X:         PlayerStartX,
			Y:         PlayerStartY,
			Size:      PlayerSize,
			MaxSpeedX: PlayerMaxSpeedX,
			MaxSpeedY: PlayerMaxSpeedY,
			HP:        InitialHP,
		},
		BottomMargin:         PlayerBottomMargin,
		Boundary:             object.FreezeAtBoundary,
		InvulnerabilityTicks: InvulnerabilityTicks,
		RespawnDelay:         RespawnDelay,
		FireDelay:            FireDelay,
		BulletOffsetX:        BulletOffsetX,
		BulletSpeed:          BulletSpeed,
		BulletSize:           BulletSize,
		Spawn:                SpawnTimed,
		SpawnInterval:        DefaultSpawnInterval,
		IntervalKind:         object.Meteor,
		Motion: object.Motion{
			MinSpeedY: HazardMinSpeed,
			MaxSpeedY: HazardMaxSpeed,
			MaxDriftX: HazardMaxDrift,
		},
		HazardExplosion:    object.Animation{Frames: 3, FrameTicks: 10},
		PlayerExplosion:    object.Animation{Frames: 3, FrameTicks: 10},
		BackgroundVelocity: BackgroundScrollVelocity,
	}
}

// Arcade runs at 144 ticks per second with phased enemy and asteroid waves.
func Arcade() Rules {
	r := Classic()
	r.Variant = VariantArcade
	r.TickRate = ArcadeTickRate
	r.InvulnerabilityTicks = 250
	r.Spawn = SpawnPhased
	r.Phases = []object.Phase{
		{Kind: object.Enemy, Duration: 20 * ArcadeTickRate, Every: 2 * ArcadeTickRate},
		{Kind: object.Asteroid, Duration: 25 * ArcadeTickRate, Every: ArcadeTickRate},
		{Kind: object.Enemy, Duration: 20 * ArcadeTickRate, Every: ArcadeTickRate},
	}
	r.LoopPhases = true
	r.HitboxInset = 0.3
	r.HazardExplosion = object.Animation{Frames: 7, FrameTicks: 8}
	r.PlayerExplosion = object.Animation{Frames: 7, FrameTicks: 8}
	r.DualExplosion = true
	return r
}

// Wrap is Classic with the ship wrapping around the side edges.
func Wrap() Rules {
	r := Classic()
	r.Variant = VariantWrap
	r.Boundary = object.WrapHorizontal
	return r
}

// Preset returns the ruleset for a variant name.
func Preset(v Variant) (Rules, error) {
	switch v {
	case VariantClassic, "":
		return Classic(), nil
	case VariantArcade:
		return Arcade(), nil
	case VariantWrap:
		return Wrap(), nil
	}
	return Rules{}, fmt.Errorf("unknown variant %q", v)
}

// FromEnv builds the ruleset selected by SHOOTER_VARIANT and applies the
// individual SHOOTER_* overrides.
func FromEnv() (Rules, error) {
	r, err := Preset(Variant(env.GetEnv("SHOOTER_VARIANT", string(VariantClassic))))
	if err != nil {
		return Rules{}, err
	}

	r.TickRate = env.GetEnvInt("SHOOTER_TICK_RATE", r.TickRate)
	r.SpawnInterval = env.GetEnvDuration("SHOOTER_SPAWN_INTERVAL", r.SpawnInterval)
	r.HitboxInset = env.GetEnvFloat("SHOOTER_HITBOX_INSET", r.HitboxInset)
	r.Player.HP = env.GetEnvInt("SHOOTER_START_HP", r.Player.HP)
	r.Seed = int64(env.GetEnvInt("SHOOTER_SEED", int(r.Seed)))
	if name := env.GetEnv("SHOOTER_BOUNDARY", ""); name != "" {
		policy, ok := object.ParseBoundaryPolicy(name)
		if !ok {
			return Rules{}, fmt.Errorf("unknown boundary policy %q", name)
		}
		r.Boundary = policy
	}
	if name := env.GetEnv("SHOOTER_HAZARD", ""); name != "" {
		kind, ok := object.ParseHazardKind(name)
		if !ok {
			return Rules{}, fmt.Errorf("unknown hazard kind %q", name)
		}
		r.IntervalKind = kind
	}

	return r.Normalize(), nil
}

// Normalize clamps out-of-range values to something playable.
func (r Rules) Normalize() Rules {
	r.TickRate = min(max(r.TickRate, 1), MaxTickRate)
	r.HitboxInset = min(max(r.HitboxInset, 0), 0.9)
	r.Player.HP = max(r.Player.HP, 1)
	if r.SpawnInterval <= 0 {
		r.SpawnInterval = DefaultSpawnInterval
	}
	if r.FireDelay < 0 {
		r.FireDelay = 0
	}
	return r
}
