package object

import "github.com/alessiosferro/space-shooter-v1/internal/physics"

// Sprite is a region of a sprite sheet, kept for frontends that draw from one.
type Sprite struct {
	X, Y int
	W, H int
}

// BulletSprite is the single-pixel region bullets are stretched from.
var BulletSprite = Sprite{X: 4, Y: 4, W: 1, H: 1}

// Bullet is a player projectile travelling straight up.
type Bullet struct {
	ID     ID
	X, Y   float64
	VX, VY float64
	Size   float64
	Sprite Sprite
}

// NewBullet creates a bullet at (x, y) moving with speed units per tick upward.
func NewBullet(id ID, x, y, speed, size float64) *Bullet {
	return &Bullet{
		ID:     id,
		X:      x,
		Y:      y,
		VY:     -speed,
		Size:   size,
		Sprite: BulletSprite,
	}
}

// Box returns the bullet's collision box.
func (b *Bullet) Box() physics.Rect {
	return Box(b.X, b.Y, b.Size)
}

// Visible reports whether the bullet has not yet left through the top edge.
func (b *Bullet) Visible() bool {
	return b.Y >= 0
}

// Move applies one tick of motion.
func (b *Bullet) Move() {
	b.X += b.VX
	b.Y += b.VY
}
