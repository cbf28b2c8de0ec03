package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/murmur/ui"
)

// drawActiveOverlays renders all currently enabled world-space overlays.
func (g *Game) drawActiveOverlays() {
	if g.overlays.IsEnabled(ui.OverlayGrid) {
		g.drawGrid()
	}
	if g.overlays.IsEnabled(ui.OverlayRepulsors) {
		g.drawRepulsors()
	}
	if g.overlays.IsEnabled(ui.OverlayCursorRadius) && g.cursorActive {
		g.drawCursorRadius()
	}
}

// drawGrid draws the spatial index cell boundaries.
func (g *Game) drawGrid() {
	b := g.swarm.Bounds()
	cell := float32(g.cfg.Grid.CellSize)
	color := rl.Color{R: 60, G: 70, B: 90, A: 90}

	for x := float32(0); x <= b.Width; x += cell {
		x0, y0 := g.camera.WorldToScreen(x, 0)
		x1, y1 := g.camera.WorldToScreen(x, b.Height)
		rl.DrawLineV(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, color)
	}
	for y := float32(0); y <= b.Height; y += cell {
		x0, y0 := g.camera.WorldToScreen(0, y)
		x1, y1 := g.camera.WorldToScreen(b.Width, y)
		rl.DrawLineV(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, color)
	}
}

// drawRepulsors outlines each repulsor region.
func (g *Game) drawRepulsors() {
	color := rl.Color{R: 220, G: 90, B: 90, A: 160}
	for _, r := range g.repulsors {
		sx, sy := g.camera.WorldToScreen(r.X, r.Y)
		rl.DrawCircleLines(int32(sx), int32(sy), r.Radius*g.camera.Zoom, color)
	}
}

// drawCursorRadius shows the area the cursor activates.
func (g *Game) drawCursorRadius() {
	sx, sy := g.camera.WorldToScreen(g.cursor.X, g.cursor.Y)
	radius := float32(g.cfg.Signal.CursorRadius) * g.camera.Zoom
	rl.DrawCircleLines(int32(sx), int32(sy), radius, rl.Color{R: 255, G: 230, B: 170, A: 120})
}
