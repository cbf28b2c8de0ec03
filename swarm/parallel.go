package swarm

import (
	"runtime"
	"sync"

	"github.com/pthm-cable/murmur/systems"
)

// intent captures computed outputs to apply after the compute phase.
type intent struct {
	FX, FY float32
	edges  []systems.Edge // connections to higher handles
}

// workerScratch holds per-worker reusable buffers.
type workerScratch struct {
	Neighbors []systems.Neighbor
}

// workChunk represents a range of agents for a worker to process.
type workChunk struct {
	start, end int
	cursor     *Cursor
	repulsors  []systems.Repulsor
}

// parallelState holds resources for parallel force computation.
type parallelState struct {
	scratches  []workerScratch
	numWorkers int

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newParallelState(workers int) *parallelState {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	scratches := make([]workerScratch, workers)
	for i := range scratches {
		scratches[i].Neighbors = make([]systems.Neighbor, 0, 64)
	}
	return &parallelState{
		numWorkers: workers,
		scratches:  scratches,
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(s *Swarm) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(s, i)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *parallelState) worker(s *Swarm, workerID int) {
	defer p.wg.Done()
	scratch := &p.scratches[workerID]

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			s.computeChunk(chunk.start, chunk.end, scratch, chunk.cursor, chunk.repulsors)
			p.doneChan <- struct{}{}
		}
	}
}

// computeIntents fills one intent per snapshot body, single-threaded for
// small swarms and on the worker pool otherwise. Each intent depends only on
// the snapshot, so both paths produce identical results.
func (s *Swarm) computeIntents(cursor *Cursor, repulsors []systems.Repulsor) {
	n := len(s.bodies)
	if cap(s.intents) < n {
		grown := make([]intent, n)
		copy(grown, s.intents[:cap(s.intents)])
		s.intents = grown
	}
	s.intents = s.intents[:n]

	if n < s.cfg.Physics.ParallelThreshold || s.parallel.numWorkers == 1 {
		s.computeChunk(0, n, &s.parallel.scratches[0], cursor, repulsors)
		return
	}
	s.computeParallel(n, cursor, repulsors)
}

// computeParallel dispatches work to the worker pool.
func (s *Swarm) computeParallel(n int, cursor *Cursor, repulsors []systems.Repulsor) {
	p := s.parallel
	if !p.running {
		p.startWorkers(s)
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	chunksDispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}

		p.workChan <- workChunk{start: start, end: end, cursor: cursor, repulsors: repulsors}
		chunksDispatched++
	}

	for i := 0; i < chunksDispatched; i++ {
		<-p.doneChan
	}
}

// computeChunk processes a range of agents for a single worker.
// It reads only the snapshot, the grid and the weights.
func (s *Swarm) computeChunk(i0, i1 int, scratch *workerScratch, cursor *Cursor, repulsors []systems.Repulsor) {
	w := s.weights
	radius := float32(s.cfg.Flocking.ConnectionRadius)
	sepDist := float32(s.cfg.Flocking.SeparationDistance)

	for i := i0; i < i1; i++ {
		self := s.bodies[i]
		in := &s.intents[i]
		in.edges = in.edges[:0]

		scratch.Neighbors = s.grid.QueryRadiusInto(
			scratch.Neighbors[:0],
			self.Pos.X, self.Pos.Y, radius,
			systems.Handle(i),
		)
		nbs := scratch.Neighbors

		var fx, fy float32

		// Fixed accumulation order keeps results reproducible.
		if w.Alignment != 0 {
			ax, ay := systems.Align(self, nbs, s.bodies)
			fx += ax * w.Alignment
			fy += ay * w.Alignment
		}
		if w.Cohesion != 0 {
			cx, cy := systems.Cohere(self, nbs)
			fx += cx * w.Cohesion
			fy += cy * w.Cohesion
		}
		if w.Separation != 0 {
			sx, sy := systems.Separate(nbs, sepDist)
			fx += sx * w.Separation
			fy += sy * w.Separation
		}
		if cursor != nil && w.Seek != 0 {
			kx, ky := systems.Seek(self, cursor.X, cursor.Y)
			fx += kx * w.Seek
			fy += ky * w.Seek
		}
		if len(repulsors) > 0 && w.Repulsion != 0 {
			rx, ry := systems.Repel(self.Pos, repulsors)
			fx += rx * w.Repulsion
			fy += ry * w.Repulsion
		}
		if w.Wander != 0 {
			dx, dy := s.wanderer.Direction(self.NoiseSeed, s.tick)
			fx += dx * w.Wander
			fy += dy * w.Wander
		}

		in.FX = fx
		in.FY = fy

		for _, nb := range nbs {
			if int(nb.H) <= i {
				continue
			}
			in.edges = append(in.edges, systems.Edge{
				A:        systems.Handle(i),
				B:        nb.H,
				Strength: 1 - systems.Magnitude(nb.DX, nb.DY)/radius,
			})
		}
	}
}
