// Package window runs a game in a desktop window. The window's refresh
// drives the game loop; key presses and releases become intents.
package window

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/alessiosferro/space-shooter-v1/internal/draw"
	"github.com/alessiosferro/space-shooter-v1/internal/input"
	"github.com/alessiosferro/space-shooter-v1/internal/loop"
	"github.com/alessiosferro/space-shooter-v1/internal/loop/config"
	"github.com/alessiosferro/space-shooter-v1/internal/object"
)

// bindings maps window keys to game keys.
var bindings = []struct {
	key ebiten.Key
	to  input.Key
}{
	{ebiten.KeyArrowLeft, input.KeyLeft},
	{ebiten.KeyA, input.KeyLeft},
	{ebiten.KeyArrowRight, input.KeyRight},
	{ebiten.KeyD, input.KeyRight},
	{ebiten.KeyArrowUp, input.KeyUp},
	{ebiten.KeyW, input.KeyUp},
	{ebiten.KeyArrowDown, input.KeyDown},
	{ebiten.KeyS, input.KeyDown},
	{ebiten.KeySpace, input.KeyFire},
	{ebiten.KeyEnter, input.KeyEnter},
	{ebiten.KeyR, input.KeyReset},
	{ebiten.KeyQ, input.KeyQuit},
	{ebiten.KeyEscape, input.KeyQuit},
}

var (
	colorSpace    = color.RGBA{R: 0x05, G: 0x06, B: 0x14, A: 0xff}
	colorStar     = color.RGBA{R: 0x9a, G: 0xa4, B: 0xc8, A: 0xff}
	colorPlayer   = color.RGBA{R: 0x4f, G: 0xd1, B: 0xff, A: 0xff}
	colorShield   = color.RGBA{R: 0x4f, G: 0xd1, B: 0xff, A: 0x80}
	colorBullet   = color.RGBA{R: 0xff, G: 0xf0, B: 0x60, A: 0xff}
	colorMeteor   = color.RGBA{R: 0xb0, G: 0x9a, B: 0x80, A: 0xff}
	colorAsteroid = color.RGBA{R: 0x8a, G: 0x70, B: 0x5a, A: 0xff}
	colorEnemy    = color.RGBA{R: 0xe0, G: 0x40, B: 0x50, A: 0xff}
	colorBlast    = color.RGBA{R: 0xff, G: 0x9a, B: 0x30, A: 0xff}
)

// Window adapts a game to ebiten. It implements ebiten.Game.
type Window struct {
	game    *loop.Game
	keys    *input.Keyboard
	logger  *log.Logger
	focused bool
	quit    bool

	snap     loop.Snapshot
	stars    []draw.Point
	poly     []draw.Point
	vertices []ebiten.Vertex
	indices  []uint16
	white    *ebiten.Image
}

var _ ebiten.Game = (*Window)(nil)

// New creates a window for g.
func New(g *loop.Game, logger *log.Logger) *Window {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	f := g.Rules().Field
	return &Window{
		game:    g,
		keys:    input.NewKeyboard(),
		logger:  logger,
		focused: true,
		stars:   draw.StarField(f.Width, f.Height, config.BackgroundStars, 1),
	}
}

// Run opens the window and blocks until it is closed or the player quits.
func (w *Window) Run(title string, scale float64) error {
	f := w.game.Rules().Field
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(int(f.Width*scale), int(f.Height*scale))
	ebiten.SetTPS(ebiten.SyncWithFPS)
	defer w.game.Close()

	// RunGame returns nil once Update reports ebiten.Termination.
	return ebiten.RunGame(w)
}

// Update feeds the frame's key events to the game, then lets it tick.
func (w *Window) Update() error {
	now := time.Now()

	if focused := ebiten.IsFocused(); focused != w.focused {
		w.focused = focused
		w.logger.Debug("window focus changed", "focused", focused)
		if focused {
			w.apply(w.keys.Press(input.KeyFocusIn), now)
		} else {
			w.apply(w.keys.ReleaseAll(), now)
			w.apply(w.keys.Press(input.KeyFocusOut), now)
		}
	}

	for _, b := range bindings {
		if inpututil.IsKeyJustReleased(b.key) {
			w.apply(w.keys.Release(b.to), now)
		}
		if inpututil.IsKeyJustPressed(b.key) {
			w.apply(w.keys.Press(b.to), now)
		}
	}
	if w.quit {
		w.logger.Info("quit requested", "score", w.game.Score())
		return ebiten.Termination
	}

	w.game.Frame(now)
	w.game.SnapshotInto(&w.snap)
	return nil
}

func (w *Window) apply(intents []input.Intent, now time.Time) {
	for _, in := range intents {
		if in == input.IntentQuit {
			w.quit = true
			continue
		}
		w.game.Apply(in, now)
	}
}

// Layout keeps the logical playfield size; ebiten scales it to the window.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	f := w.game.Rules().Field
	return int(f.Width), int(f.Height)
}

// Draw paints the latest snapshot.
func (w *Window) Draw(screen *ebiten.Image) {
	s := &w.snap
	screen.Fill(colorSpace)

	for _, oy := range [2]float64{s.BackgroundY, s.BackgroundY - s.Field.Height} {
		for i, st := range w.stars {
			size := float32(1)
			if i%7 == 0 {
				size = 2
			}
			vector.DrawFilledRect(screen, float32(st.X), float32(st.Y+oy), size, size, colorStar, false)
		}
	}

	for i := range s.Hazards {
		w.drawHazard(screen, &s.Hazards[i], s.Tick)
	}
	for i := range s.Bullets {
		b := &s.Bullets[i]
		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.Size), float32(b.Size), colorBullet, false)
	}
	w.drawPlayer(screen, &s.Player)
	for i := range s.Explosions {
		w.drawExplosion(screen, &s.Explosions[i])
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d  HP: %d", s.Score, s.Player.HP), 4, 2)
	if s.GameOver {
		lines := []string{"GAME OVER", fmt.Sprintf("Score: %d", s.Score), "", "ENTER play again", "R reset", "Q quit"}
		y := int(s.Field.Height)/2 - len(lines)*8
		for i, line := range lines {
			ebitenutil.DebugPrintAt(screen, line, int(s.Field.Width)/2-len(line)*3, y+i*16)
		}
	}
}

func (w *Window) drawPlayer(screen *ebiten.Image, p *object.Player) {
	if p.Dead() {
		return
	}
	if p.Shielded() && !object.ShouldRenderBlink(p.InvulnerableTicks, config.ShieldBlinkTicks) {
		return
	}
	w.fillPolygon(screen, draw.Triangle(p.X, p.Y, p.Size, p.Size, true), colorPlayer)
	if p.Shielded() {
		cx, cy := p.Box().Center()
		vector.StrokeCircle(screen, float32(cx), float32(cy), float32(p.Size*0.75), 1.5, colorShield, true)
	}
}

func (w *Window) drawHazard(screen *ebiten.Image, h *object.Hazard, tick uint64) {
	if h.Kind == object.Enemy {
		w.fillPolygon(screen, draw.Triangle(h.X, h.Y, h.Size, h.Size*0.8, false), colorEnemy)
		return
	}
	cx, cy := h.Box().Center()
	rotation := float64(h.ID)*0.7 + float64(tick)*0.01
	w.poly = draw.RadialPolygon(w.poly, cx, cy, h.Size/2, rotation, h.Vertices)
	if h.Kind == object.Asteroid {
		w.fillPolygon(screen, w.poly, colorAsteroid)
		return
	}
	strokePolygon(screen, w.poly, colorMeteor)
}

func (w *Window) drawExplosion(screen *ebiten.Image, e *object.Explosion) {
	progress := float64(e.Frame+1) / float64(max(e.Anim.Frames, 1))
	radius := e.Size / 2 * progress
	if e.Kind == object.ExplosionPlayer {
		radius *= 1.3
	}
	rotation := float64(e.Frame) * math.Pi / 8
	w.poly = draw.RadialPolygon(w.poly, e.X+e.Size/2, e.Y+e.Size/2, radius, rotation, draw.ShardFactors)
	if e.Frame == 0 {
		w.fillPolygon(screen, w.poly, colorBlast)
		return
	}
	strokePolygon(screen, w.poly, colorBlast)
}

// fillPolygon fills a polygon that is star-shaped around its centroid as
// a triangle fan from that centroid.
func (w *Window) fillPolygon(screen *ebiten.Image, pts []draw.Point, clr color.RGBA) {
	if len(pts) < 3 {
		return
	}
	if w.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		w.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}

	var cx, cy float64
	for _, p := range pts {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(pts))
	cy /= float64(len(pts))

	r, g, b, a := float32(clr.R)/0xff, float32(clr.G)/0xff, float32(clr.B)/0xff, float32(clr.A)/0xff
	vertex := func(x, y float64) ebiten.Vertex {
		return ebiten.Vertex{DstX: float32(x), DstY: float32(y), SrcX: 1, SrcY: 1, ColorR: r, ColorG: g, ColorB: b, ColorA: a}
	}

	w.vertices = append(w.vertices[:0], vertex(cx, cy))
	w.indices = w.indices[:0]
	for i, p := range pts {
		w.vertices = append(w.vertices, vertex(p.X, p.Y))
		next := (i+1)%len(pts) + 1
		w.indices = append(w.indices, 0, uint16(i+1), uint16(next))
	}
	screen.DrawTriangles(w.vertices, w.indices, w.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func strokePolygon(screen *ebiten.Image, pts []draw.Point, clr color.Color) {
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		vector.StrokeLine(screen, float32(p.X), float32(p.Y), float32(q.X), float32(q.Y), 1.5, clr, true)
	}
}
