package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/murmur/systems"
	"github.com/pthm-cable/murmur/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title         string
	Agents        int
	Edges         int
	Tick          int64
	StepsPerFrame int
	FPS           int32
	Paused        bool
	SignalEnabled bool
	Transfers     int
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Agents: %d | Connections: %d", data.Agents, data.Edges),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Steps: %dx | FPS: %d", data.Tick, data.StepsPerFrame, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	if data.SignalEnabled {
		status += fmt.Sprintf(" | Signal: %d transfers", data.Transfers)
	}
	rl.DrawText(status, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase tick timings.
type PerfPanel struct {
	renderer *Renderer
	phases   *systems.SystemRegistry
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), phases: systems.NewSystemRegistry(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	pad := r.Theme.Padding
	width := int32(260)
	height := r.Theme.LineHeight*int32(len(telemetry.Phases())+3) + pad*2

	r.DrawPanel(p.x, p.y, width, height)

	x := p.x + pad
	y := r.DrawSectionHeader(x, p.y+pad, "Tick Performance")
	y = r.DrawLabelValue(x, y, "Avg tick", stats.AvgTickDuration.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "Ticks/sec", fmt.Sprintf("%.0f", stats.TicksPerSecond))

	for _, phase := range telemetry.Phases() {
		pct := stats.PhasePct[phase]
		color := r.Theme.LabelColor
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-13s %8s %5.1f%%", p.phases.GetName(phase), stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, r.Theme.FontSize, color,
		)
		y += r.Theme.LineHeight
	}
}
