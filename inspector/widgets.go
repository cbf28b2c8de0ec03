package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Widget colors
var (
	ColorBarBg       = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill     = rl.Color{R: 100, G: 180, B: 220, A: 255}
	ColorText        = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorAngleBg     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorAngleNeedle = rl.Color{R: 255, G: 200, B: 100, A: 255}
	ColorBoolOn      = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff     = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

const valueX = 90 // label column width

// DrawLabel renders a text value and returns the height used.
func DrawLabel(x, y int32, name string, value any, options map[string]string) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)
	rl.DrawText(FormatValue(value, options["fmt"]), x+valueX, y, 14, ColorText)
	return 18
}

// DrawBar renders a horizontal bar filled to value/max.
func DrawBar(x, y int32, name string, value float32, options map[string]string) int32 {
	ratio := min(max(value/GetMax(options), 0), 1)

	const barWidth, barHeight = 120, 14
	rl.DrawText(name, x, y, 14, ColorTextDim)

	barX := x + valueX
	rl.DrawRectangle(barX, y, barWidth, barHeight, ColorBarBg)
	rl.DrawRectangle(barX, y, int32(barWidth*ratio), barHeight, ColorBarFill)
	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barWidth+5, y, 14, ColorTextDim)
	return 18
}

// DrawAngle renders a compass needle for an angle in radians.
func DrawAngle(x, y int32, name string, radians float32, _ map[string]string) int32 {
	const size = 36
	cx := x + valueX + size/2
	cy := y + size/2

	rl.DrawText(name, x, y+size/2-7, 14, ColorTextDim)
	rl.DrawCircle(cx, cy, size/2, ColorAngleBg)
	rl.DrawCircleLines(cx, cy, size/2, ColorTextDim)

	needle := float32(size/2 - 4)
	s, c := math.Sincos(float64(radians))
	rl.DrawLineEx(
		rl.Vector2{X: float32(cx), Y: float32(cy)},
		rl.Vector2{X: float32(cx) + needle*float32(c), Y: float32(cy) + needle*float32(s)},
		2, ColorAngleNeedle,
	)

	deg := math.Mod(float64(radians)*180/math.Pi, 360)
	if deg < 0 {
		deg += 360
	}
	rl.DrawText(fmt.Sprintf("%.0f deg", deg), x+valueX+size+6, y+size/2-7, 14, ColorTextDim)
	return size + 4
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)

	color, text := ColorBoolOff, "OFF"
	if value {
		color, text = ColorBoolOn, "ON"
	}
	rl.DrawRectangle(x+valueX, y, 14, 14, color)
	rl.DrawText(text, x+valueX+19, y, 14, color)
	return 18
}

// DrawField renders a field using its widget type.
func DrawField(x, y int32, field Field) int32 {
	switch field.Widget {
	case WidgetBar:
		if v, ok := GetFloatValue(field.Value); ok {
			return DrawBar(x, y, field.Name, v, field.Options)
		}
	case WidgetAngle:
		if v, ok := GetFloatValue(field.Value); ok {
			return DrawAngle(x, y, field.Name, v, field.Options)
		}
	case WidgetBool:
		if v, ok := field.Value.(bool); ok {
			return DrawBool(x, y, field.Name, v)
		}
	}
	return DrawLabel(x, y, field.Name, field.Value, field.Options)
}

// FieldHeight is the height DrawField uses for f.
func FieldHeight(f Field) int32 {
	if f.Widget == WidgetAngle {
		if _, ok := GetFloatValue(f.Value); ok {
			return 40
		}
	}
	return 18
}
