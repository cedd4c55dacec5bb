package client

import (
	"fmt"
	"math"
	"time"

	"github.com/alessiosferro/space-shooter-v1/internal/draw"
	"github.com/alessiosferro/space-shooter-v1/internal/loop"
	"github.com/alessiosferro/space-shooter-v1/internal/loop/config"
	"github.com/alessiosferro/space-shooter-v1/internal/object"
)

// ASCII art titles (figlet "small" font)
var (
	titleArt = []string{
		` ___  ___    _     ___  ___ `,
		`/ __|| _ \  /_\   / __|| __|`,
		`\__ \|  _/ / _ \ | (__ | _| `,
		`|___/|_|  /_/ \_\ \___||___|`,
		` ___  _  _   ___    ___   _____  ___  ___ `,
		`/ __|| || | / _ \  / _ \ |_   _|| __|| _ \`,
		`\__ \| __ || (_) || (_) |  | |  | _| |   /`,
		`|___/|_||_| \___/  \___/   |_|  |___||_|_\`,
	}
	gameOverArt = []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}
)

// Round outline for the invulnerability shield.
var shieldFactors = []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}

// Render draws one snapshot. It implements loop.Renderer.
func (c *Client) Render(s loop.Snapshot) error {
	now := time.Now()
	if err := c.checkSession(now); err != nil {
		return err
	}
	if s.GameOver && !c.state.wasGameOver && c.host != nil {
		c.state.best = c.host.ReportScore(c.handle.ID, s.Score)
	}
	c.state.wasGameOver = s.GameOver

	c.updateScreen()
	c.setOverlay(c.overlayFor(s.GameOver))

	c.canvas.Clear()
	c.drawBackground(s.BackgroundY, s.Field)
	c.drawHazards(s.Hazards, s.Tick)
	c.drawBullets(s.Bullets)
	c.drawPlayer(&s.Player)
	c.drawExplosions(s.Explosions)

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawHUD(s)
	switch c.state.overlay {
	case overlayShutdown:
		c.drawShutdownScreen(now)
	case overlayInactive:
		c.drawInactivityScreen(now)
	case overlayGameOver:
		c.drawGameOverScreen(s)
	}

	return c.chunkWriter.Flush()
}

// drawStartFrame draws the title screen over a still sky.
func (c *Client) drawStartFrame(now time.Time) error {
	if err := c.checkSession(now); err != nil {
		return err
	}
	c.updateScreen()
	over := overlayNone
	if c.state.shuttingDown() {
		over = overlayShutdown
	}
	c.setOverlay(over)

	c.canvas.Clear()
	c.drawBackground(0, c.rules.Field)
	c.canvas.Render(c.chunkWriter)
	c.canvas.RenderBorder(c.chunkWriter)

	if over == overlayShutdown {
		c.drawShutdownScreen(now)
	} else {
		c.drawStartScreen(now)
	}
	return c.chunkWriter.Flush()
}

// overlayFor picks the screen to show. Shutdown wins over inactivity,
// which wins over game over.
func (c *Client) overlayFor(gameOver bool) overlay {
	switch {
	case c.state.shuttingDown():
		return overlayShutdown
	case c.state.inactive:
		return overlayInactive
	case gameOver:
		return overlayGameOver
	}
	return overlayNone
}

// setOverlay switches overlays. On transitions it does a full terminal
// clear so text from the previous screen doesn't persist.
func (c *Client) setOverlay(o overlay) {
	if o == c.state.overlay {
		return
	}
	c.state.overlay = o
	c.clearScreen()
}

// drawBackground draws the star field twice, one playfield height apart,
// so the scroll wraps without a seam.
func (c *Client) drawBackground(y float64, f object.Playfield) {
	for i, st := range c.stars {
		for _, oy := range [2]float64{y, y - f.Height} {
			sy := st.Y + oy
			if sy < 0 || sy >= f.Height {
				continue
			}
			if i%7 == 0 {
				c.canvas.FillRect(st.X, sy, 2, 2)
			} else {
				c.canvas.SetFloat(st.X, sy)
			}
		}
	}
}

func (c *Client) drawPlayer(p *object.Player) {
	if p.Dead() {
		return
	}
	// Blink while invulnerable
	if p.Shielded() && !object.ShouldRenderBlink(p.InvulnerableTicks, config.ShieldBlinkTicks) {
		return
	}
	c.canvas.DrawPolygon(draw.Triangle(p.X, p.Y, p.Size, p.Size, true), true)
	if p.Shielded() {
		cx, cy := p.Box().Center()
		pts := draw.RadialPolygon(c.canvas.BorrowPoints(len(shieldFactors)), cx, cy, p.Size*0.75, 0, shieldFactors)
		c.canvas.DrawPolygon(pts, false)
	}
}

func (c *Client) drawBullets(bullets []object.Bullet) {
	for i := range bullets {
		b := &bullets[i]
		c.canvas.FillRect(b.X, b.Y, b.Size, b.Size)
	}
}

// drawHazards draws meteors as outlines, asteroids filled, and enemies as
// downward ships. Rocks spin slowly.
func (c *Client) drawHazards(hazards []object.Hazard, tick uint64) {
	for i := range hazards {
		h := &hazards[i]
		if h.Kind == object.Enemy {
			c.canvas.DrawPolygon(draw.Triangle(h.X, h.Y, h.Size, h.Size*0.8, false), true)
			continue
		}
		cx, cy := h.Box().Center()
		rotation := float64(h.ID)*0.7 + float64(tick)*0.01
		pts := draw.RadialPolygon(c.canvas.BorrowPoints(len(h.Vertices)), cx, cy, h.Size/2, rotation, h.Vertices)
		c.canvas.DrawPolygon(pts, h.Kind == object.Asteroid)
	}
}

// drawExplosions grows a ring of shards frame by frame. The first frame is
// a solid flash.
func (c *Client) drawExplosions(explosions []object.Explosion) {
	for i := range explosions {
		e := &explosions[i]
		progress := float64(e.Frame+1) / float64(max(e.Anim.Frames, 1))
		radius := e.Size / 2 * progress
		rotation := float64(e.Frame) * math.Pi / 8
		if e.Kind == object.ExplosionPlayer {
			radius *= 1.3
		}
		pts := draw.RadialPolygon(c.canvas.BorrowPoints(len(draw.ShardFactors)), e.X+e.Size/2, e.Y+e.Size/2, radius, rotation, draw.ShardFactors)
		c.canvas.DrawPolygon(pts, e.Frame == 0)
	}
}

// drawHUD writes the status line over the top border.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawHUD(s loop.Snapshot) {
	cw := c.chunkWriter
	scoreText := fmt.Sprintf(" Score: %-6d", s.Score)
	cw.WriteAt(2, 0, scoreText)

	hpText := fmt.Sprintf(" HP: %-2d", s.Player.HP)
	if c.layout.Cols-len(hpText) > len(scoreText)+2 {
		cw.WriteAt(c.layout.Cols-len(hpText), 0, hpText)
	}
}

// writeCentered writes s centered on the canvas at the given canvas row,
// keeping it inside the terminal when the canvas is narrower than s.
func (c *Client) writeCentered(row int, s string) {
	col := (c.layout.Cols-len(s))/2 + 1
	if col+c.layout.OffsetCol < 1 {
		col = 1 - c.layout.OffsetCol
	}
	c.chunkWriter.WriteAt(col, row, s)
}

// writeArt centers a block of ASCII art, falling back to plain text when
// the terminal is too narrow for it.
func (c *Client) writeArt(row int, art []string, fallback string) int {
	width := 0
	for _, line := range art {
		width = max(width, len(line))
	}
	if width > c.layout.TermCols {
		c.writeCentered(row, fallback)
		return 1
	}
	for i, line := range art {
		c.writeCentered(row+i, line)
	}
	return len(art)
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(now time.Time) {
	centerY := c.layout.Rows / 2
	row := centerY - 8
	row += c.writeArt(row, titleArt, "SPACE SHOOTER") + 1

	c.writeCentered(row, fmt.Sprintf("~ %s mode ~", c.rules.Variant))
	row += 2

	c.writeCentered(row, "Controls")
	controlLines := []string{
		"WASD / arrows  . . Move",
		"SPACE . . . . . . Fire",
		"R . . . . . . .  Reset",
		"Q . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		c.writeCentered(row+1+i, line)
	}
	row += len(controlLines) + 2

	// Blinking start prompt
	prompt := ">> Press SPACE to Start <<"
	if now.UnixMilli()/600%2 != 0 {
		prompt = "                          "
	}
	c.writeCentered(row, prompt)
}

// drawGameOverScreen draws the game over screen.
func (c *Client) drawGameOverScreen(s loop.Snapshot) {
	centerY := c.layout.Rows / 2
	row := centerY - 5
	row += c.writeArt(row, gameOverArt, "GAME OVER") + 1

	c.writeCentered(row, fmt.Sprintf("Score: %d", s.Score))
	if c.host != nil && c.state.best > 0 {
		row++
		c.writeCentered(row, fmt.Sprintf("Best on this server: %d", c.state.best))
	}
	row += 2
	c.writeCentered(row, "ENTER  Play again")
	c.writeCentered(row+1, "R      Reset     ")
	c.writeCentered(row+2, "Q      Quit      ")
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(now time.Time) {
	centerY := c.layout.Rows / 2
	c.writeCentered(centerY-2, "INACTIVITY WARNING")

	left := config.InactivityDisconnectUser*time.Second - now.Sub(c.source.LastInput())
	c.writeCentered(centerY, fmt.Sprintf("Disconnecting in %3d seconds", int(left.Seconds())))
	c.writeCentered(centerY+2, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(now time.Time) {
	centerY := c.layout.Rows / 2
	c.writeCentered(centerY-3, "SERVER SHUTTING DOWN")
	c.writeCentered(centerY-1, "The server is restarting.")
	c.writeCentered(centerY, "Please reconnect in a moment.")

	left := config.ShutdownDisplaySeconds*time.Second - now.Sub(c.state.shutdownAt)
	c.writeCentered(centerY+2, fmt.Sprintf("Disconnecting in %2d seconds...", int(left.Seconds())+1))
	c.writeCentered(centerY+4, "Press Q to disconnect now")
}
