package game

import "github.com/pthm-cable/murmur/swarm"

// nearestAgent returns the index of the agent closest to (x, y) within
// maxDist, or -1 if there is none.
func nearestAgent(agents []swarm.AgentView, x, y, maxDist float32) int {
	best := -1
	bestSq := maxDist * maxDist
	for i := range agents {
		dx := agents[i].Pos.X - x
		dy := agents[i].Pos.Y - y
		if d := dx*dx + dy*dy; d <= bestSq {
			best = i
			bestSq = d
		}
	}
	return best
}

// selectAt inspects the agent nearest (x, y), or clears the selection when
// nothing is close.
func (g *Game) selectAt(x, y float32) {
	g.agents = g.swarm.Agents(g.agents[:0])
	i := nearestAgent(g.agents, x, y, 12/g.camera.Zoom)
	if i < 0 {
		g.inspector.Deselect()
		return
	}
	g.inspector.Select(g.agents[i].Entity)
}
