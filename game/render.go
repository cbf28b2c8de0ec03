package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/murmur/systems"
	"github.com/pthm-cable/murmur/ui"
)

// Draw renders the game state.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()
	g.agents = g.swarm.Agents(g.agents[:0])

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	g.background.Draw()

	tint := g.cfg.Signal.Enabled && g.overlays.IsEnabled(ui.OverlayActivation)
	if g.overlays.IsEnabled(ui.OverlayEdges) {
		g.network.DrawEdges(g.camera, g.agents, g.swarm.Edges(), tint)
	}
	g.network.DrawNodes(g.camera, g.agents, tint)
	g.inspector.DrawSelectionHighlight(g.swarm, g.camera, float32(g.cfg.Flocking.ConnectionRadius))

	g.drawActiveOverlays()
	g.drawUI()
	g.drawTooltip()

	rl.EndDrawing()
}

// drawUI draws the HUD and the toggled panels.
func (g *Game) drawUI() {
	g.hud.Draw(ui.HUDData{
		Title:         "murmur",
		Agents:        g.swarm.Count(),
		Edges:         len(g.swarm.Edges()),
		Tick:          g.swarm.Ticks(),
		StepsPerFrame: g.stepsPerUpdate,
		FPS:           rl.GetFPS(),
		Paused:        g.paused,
		SignalEnabled: g.cfg.Signal.Enabled,
		Transfers:     g.swarm.LastTick().Transfers,
	})
	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)

	if g.controls.IsVisible() {
		g.controls.Draw(g.overlays)
		if w, changed := g.weightsPanel.Draw(g.swarm.Weights()); changed {
			g.swarm.SetWeights(w)
		}
	}
	g.inspector.Draw(g.swarm, int32(g.screenHeight))

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		y := int32(10)
		if g.controls.IsVisible() {
			y += g.weightsPanel.Height() + 10
		}
		g.perfPanel.SetPosition(int32(g.screenWidth)-270, y)
		g.perfPanel.Draw(g.perfCollector.Stats())
	}
}

// drawTooltip shows the state of the agent under the mouse.
func (g *Game) drawTooltip() {
	if !g.cursorActive {
		return
	}
	i := nearestAgent(g.agents, g.cursor.X, g.cursor.Y, 12/g.camera.Zoom)
	if i < 0 {
		return
	}
	a := &g.agents[i]

	lines := []string{
		fmt.Sprintf("Agent %d", a.Entity.ID()),
		fmt.Sprintf("Pos: %.0f, %.0f", a.Pos.X, a.Pos.Y),
		fmt.Sprintf("Speed: %.2f", systems.Magnitude(a.Vel.X, a.Vel.Y)),
		fmt.Sprintf("Activation: %.2f", a.Activation),
		fmt.Sprintf("Size: %.2f", a.Size),
	}

	const fontSize = 14
	const padding = 8
	const lineHeight = 16

	maxWidth := int32(0)
	for _, line := range lines {
		maxWidth = max(maxWidth, rl.MeasureText(line, fontSize))
	}
	width := maxWidth + padding*2
	height := int32(len(lines)*lineHeight + padding*2)

	// Offset from cursor, flipped to stay on screen
	mouse := rl.GetMousePosition()
	x := int32(mouse.X) + 15
	y := int32(mouse.Y) + 15
	if x+width > int32(g.screenWidth)-10 {
		x = int32(mouse.X) - width - 10
	}
	if y+height > int32(g.screenHeight)-10 {
		y = int32(mouse.Y) - height - 10
	}

	rl.DrawRectangle(x, y, width, height, rl.Color{R: 20, G: 25, B: 30, A: 230})
	rl.DrawRectangleLines(x, y, width, height, rl.Color{R: 60, G: 70, B: 80, A: 255})
	for i, line := range lines {
		color := rl.LightGray
		if i == 0 {
			color = g.network.Palette.At(a.Activation)
		}
		rl.DrawText(line, x+padding, y+padding+int32(i*lineHeight), fontSize, color)
	}
}
