// Package renderer draws the swarm with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/murmur/camera"
	"github.com/pthm-cable/murmur/swarm"
	"github.com/pthm-cable/murmur/systems"
)

// NetworkRenderer draws agents as nodes and their connections as lines.
type NetworkRenderer struct {
	Palette   *Palette
	EdgeColor rl.Color
	EdgeAlpha float32 // alpha of a full-strength edge, in [0, 1]
	NodeScale float32 // screen radius per unit of agent size at zoom 1
}

// NewNetworkRenderer creates a renderer with the default palette.
func NewNetworkRenderer() *NetworkRenderer {
	return &NetworkRenderer{
		Palette:   DefaultPalette(),
		EdgeColor: rl.Color{R: 120, G: 160, B: 220, A: 255},
		EdgeAlpha: 0.5,
		NodeScale: 1.5,
	}
}

// DrawEdges draws a line per edge with alpha proportional to its strength.
// agents must be in the order the edge handles index.
func (r *NetworkRenderer) DrawEdges(cam *camera.Camera, agents []swarm.AgentView, edges []systems.Edge, tint bool) {
	for _, e := range edges {
		if int(e.A) >= len(agents) || int(e.B) >= len(agents) {
			continue
		}
		a, b := &agents[e.A], &agents[e.B]
		if !cam.IsVisible(a.Pos.X, a.Pos.Y, 0) && !cam.IsVisible(b.Pos.X, b.Pos.Y, 0) {
			continue
		}

		color := r.EdgeColor
		if tint {
			color = r.Palette.At(max(a.Activation, b.Activation))
		}
		color.A = uint8(255 * r.EdgeAlpha * e.Strength)
		if color.A == 0 {
			continue
		}

		ax, ay := cam.WorldToScreen(a.Pos.X, a.Pos.Y)
		bx, by := cam.WorldToScreen(b.Pos.X, b.Pos.Y)
		rl.DrawLineV(rl.Vector2{X: ax, Y: ay}, rl.Vector2{X: bx, Y: by}, color)
	}
}

// DrawNodes draws each agent as a circle sized by its breathing size.
// With tint set, color follows activation; otherwise every node uses the
// palette's cold end.
func (r *NetworkRenderer) DrawNodes(cam *camera.Camera, agents []swarm.AgentView, tint bool) {
	for i := range agents {
		a := &agents[i]
		radius := max(a.Size*r.NodeScale*cam.Zoom, 0.5)
		if !cam.IsVisible(a.Pos.X, a.Pos.Y, radius) {
			continue
		}

		var activation float32
		if tint {
			activation = a.Activation
		}
		sx, sy := cam.WorldToScreen(a.Pos.X, a.Pos.Y)
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius, r.Palette.At(activation))

		// Halo on strongly activated nodes
		if tint && a.Activation > 0.5 {
			halo := r.Palette.At(1)
			halo.A = uint8(80 * a.Activation)
			rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius*3, halo)
		}
	}
}
