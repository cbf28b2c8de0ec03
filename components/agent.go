package components

// Agent holds the behavioral state of a single node.
type Agent struct {
	MaxSpeed   float32 `inspect:"label,fmt:%.2f"` // velocity magnitude cap after integration
	MaxForce   float32 `inspect:"label,fmt:%.3f"` // steering force magnitude cap
	Activation float32 `inspect:"bar"`            // 0 = resting, 1 = fully activated
	NoiseSeed  float32 `inspect:"skip"`           // offset into the wander noise field
}

// Limits returns the steering limits of the agent.
func (a Agent) Limits() Limits {
	return Limits{MaxSpeed: a.MaxSpeed, MaxForce: a.MaxForce}
}

// Limits bundles the speed and force caps used by steering behaviors.
type Limits struct {
	MaxSpeed float32
	MaxForce float32
}

// Breath holds the visual size oscillation of a node.
// It has no effect on motion.
type Breath struct {
	Phase     float32 `inspect:"angle"` // radians
	Speed     float32 `inspect:"skip"`  // radians per tick
	BaseSize  float32 `inspect:"label,fmt:%.1f"`
	Amplitude float32 `inspect:"bar,max:0.5"` // fraction of BaseSize
	Size      float32 `inspect:"label,fmt:%.2f"` // current rendered radius
}
