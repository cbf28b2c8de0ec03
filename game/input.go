package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/murmur/systems"
)

// repulsorRadius is the radius of repulsors placed with the right mouse button.
const repulsorRadius = 80

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyS) {
		g.cfg.Signal.Enabled = !g.cfg.Signal.Enabled
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		g.overlays.HandleKeyPress(key)
	}

	g.handleCameraInput()
	g.handleMouse()
}

// handleMouse moves the cursor and handles clicks in world space.
func (g *Game) handleMouse() {
	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && g.inspector.OverClose(mouse.X, mouse.Y) {
		g.inspector.Deselect()
		return
	}
	overPanel := (g.controls.IsVisible() && g.overWeightsPanel(mouse)) ||
		g.controls.Contains(mouse.X, mouse.Y) ||
		g.inspector.Contains(mouse.X, mouse.Y)

	g.cursorActive = rl.IsCursorOnScreen() && !overPanel
	if !g.cursorActive {
		return
	}
	g.cursor.X, g.cursor.Y = g.camera.ScreenToWorld(mouse.X, mouse.Y)

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.swarm.ActivateArea(g.cursor.X, g.cursor.Y, float32(g.cfg.Signal.CursorRadius))
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		g.repulsors = toggleRepulsor(g.repulsors, g.cursor.X, g.cursor.Y, repulsorRadius)
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonMiddle) {
		g.selectAt(g.cursor.X, g.cursor.Y)
	}
}

func (g *Game) overWeightsPanel(mouse rl.Vector2) bool {
	x := g.screenWidth - 300
	return mouse.X >= x && mouse.Y <= float32(10+g.weightsPanel.Height())
}

// toggleRepulsor removes the first repulsor containing (x, y), or adds a new
// one centered there if none does.
func toggleRepulsor(repulsors []systems.Repulsor, x, y, radius float32) []systems.Repulsor {
	for i, r := range repulsors {
		dx := x - r.X
		dy := y - r.Y
		if dx*dx+dy*dy < r.Radius*r.Radius {
			return append(repulsors[:i], repulsors[i+1:]...)
		}
	}
	return append(repulsors, systems.Repulsor{X: x, Y: y, Radius: radius})
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.resize(w, h)
}

// resize applies a new screen size. The world follows the screen unless the
// config fixed its dimensions.
func (g *Game) resize(w, h float32) {
	g.screenWidth = w
	g.screenHeight = h

	if g.worldFollowsScreen {
		if err := g.swarm.Resize(w, h); err != nil {
			return
		}
	}
	if g.camera == nil {
		return
	}
	b := g.swarm.Bounds()
	g.camera.Resize(w, h)
	g.camera.SetWorld(b.Width, b.Height)
	g.background.Resize(int32(w), int32(h))
	g.perfPanel.SetPosition(int32(w)-270, 10)
	g.weightsPanel.SetPosition(int32(w)-300, 10)
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0) / g.camera.Zoom

	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		mouse := rl.GetMousePosition()
		g.camera.ZoomAt(mouse.X, mouse.Y, 1+wheel*0.1)
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// controlsLegend is shown at the bottom of the window.
const controlsLegend = "Space pause | < > steps | Tab panels | S signal | LMB pulse | RMB repulsor | MMB inspect | wheel zoom | Home reset"
