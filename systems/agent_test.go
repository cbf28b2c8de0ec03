package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/murmur/components"
)

func TestIntegrateClampsSpeed(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	b := Bounds{Width: 800, Height: 600}

	for i := 0; i < 1000; i++ {
		pos := components.Position{X: rng.Float32() * 800, Y: rng.Float32() * 600}
		vel := components.Velocity{X: rng.Float32()*10 - 5, Y: rng.Float32()*10 - 5}
		maxSpeed := 0.1 + rng.Float32()*3
		fx := rng.Float32()*20 - 10
		fy := rng.Float32()*20 - 10

		Integrate(&pos, &vel, maxSpeed, fx, fy, b)

		if speed := Magnitude(vel.X, vel.Y); speed > maxSpeed+1e-5 {
			t.Fatalf("speed %v exceeds max %v", speed, maxSpeed)
		}
	}
}

func TestIntegrateKeepsDirectionWhenClamping(t *testing.T) {
	pos := components.Position{X: 10, Y: 10}
	vel := components.Velocity{}
	Integrate(&pos, &vel, 1, 3, 4, Bounds{Width: 100, Height: 100})

	if math.Abs(float64(vel.X-0.6)) > 1e-6 || math.Abs(float64(vel.Y-0.8)) > 1e-6 {
		t.Errorf("vel = (%v, %v), want (0.6, 0.8)", vel.X, vel.Y)
	}
	if math.Abs(float64(pos.X-10.6)) > 1e-5 || math.Abs(float64(pos.Y-10.8)) > 1e-5 {
		t.Errorf("pos = (%v, %v), want (10.6, 10.8)", pos.X, pos.Y)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name   string
		margin float32
		in     components.Position
		want   components.Position
	}{
		{"inside untouched", 0, components.Position{X: 50, Y: 50}, components.Position{X: 50, Y: 50}},
		{"left edge hard", 0, components.Position{X: -0.5, Y: 50}, components.Position{X: 100, Y: 50}},
		{"right edge hard", 0, components.Position{X: 100.5, Y: 50}, components.Position{X: 0, Y: 50}},
		{"top edge hard", 0, components.Position{X: 50, Y: -1}, components.Position{X: 50, Y: 80}},
		{"bottom edge hard", 0, components.Position{X: 50, Y: 81}, components.Position{X: 50, Y: 0}},
		{"inside soft margin", 50, components.Position{X: -30, Y: 120}, components.Position{X: -30, Y: 120}},
		{"past soft margin", 50, components.Position{X: -51, Y: 131}, components.Position{X: 150, Y: -50}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := tc.in
			Wrap(&pos, Bounds{Width: 100, Height: 80, Margin: tc.margin})
			if pos != tc.want {
				t.Errorf("Wrap(%v) = %v, want %v", tc.in, pos, tc.want)
			}
		})
	}
}

func TestIntegrateStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, margin := range []float32{0, 25} {
		b := Bounds{Width: 200, Height: 100, Margin: margin}
		pos := components.Position{X: 100, Y: 50}
		vel := components.Velocity{}
		for i := 0; i < 5000; i++ {
			Integrate(&pos, &vel, 4, rng.Float32()*2-1, rng.Float32()*2-1, b)
			if pos.X < -margin || pos.X > b.Width+margin || pos.Y < -margin || pos.Y > b.Height+margin {
				t.Fatalf("margin %v: position %v left bounds", margin, pos)
			}
		}
	}
}

func TestClampInside(t *testing.T) {
	pos := components.Position{X: 500, Y: -3}
	ClampInside(&pos, 300, 200)
	if pos.X != 300 || pos.Y != 0 {
		t.Errorf("ClampInside = %v, want {300 0}", pos)
	}
}

func TestActivate(t *testing.T) {
	tests := []struct {
		name         string
		start, delta float32
		want         float32
	}{
		{"adds", 0.2, 0.3, 0.5},
		{"saturates", 0.9, 0.5, 1.0},
		{"never negative", 0.1, -0.5, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := components.Agent{Activation: tc.start}
			Activate(&a, tc.delta)
			if math.Abs(float64(a.Activation-tc.want)) > 1e-6 {
				t.Errorf("Activation = %v, want %v", a.Activation, tc.want)
			}
		})
	}
}

func TestDecayMonotoneAndSnaps(t *testing.T) {
	a := components.Agent{Activation: 1}
	prev := a.Activation
	for i := 0; i < 200; i++ {
		Decay(&a, 0.95, 0.01)
		if a.Activation > prev {
			t.Fatalf("tick %d: activation rose from %v to %v", i, prev, a.Activation)
		}
		if a.Activation < 0 || a.Activation > 1 {
			t.Fatalf("tick %d: activation %v out of [0,1]", i, a.Activation)
		}
		if a.Activation != 0 && a.Activation < 0.01 {
			t.Fatalf("tick %d: activation %v below epsilon was not snapped", i, a.Activation)
		}
		prev = a.Activation
	}
	if a.Activation != 0 {
		t.Errorf("activation after 200 ticks = %v, want 0", a.Activation)
	}
}

func TestBreathe(t *testing.T) {
	b := components.Breath{BaseSize: 2, Amplitude: 0.15, Speed: 0.5}
	for i := 0; i < 100; i++ {
		Breathe(&b)
		if b.Size < 2*0.85-1e-5 || b.Size > 2*1.15+1e-5 {
			t.Fatalf("size %v outside breathing range", b.Size)
		}
		if b.Phase < 0 || b.Phase >= 2*math.Pi {
			t.Fatalf("phase %v not wrapped", b.Phase)
		}
	}
}
