package game

import (
	"runtime"
	"sync"

	"github.com/pthm-cable/physarum/components"
	"github.com/pthm-cable/physarum/systems"
	"github.com/pthm-cable/physarum/telemetry"
)

// parallelThreshold is the minimum agent count to dispatch to the worker pool.
// Below this the same chunks run inline on the calling goroutine.
const parallelThreshold = 4096

// chunkSeedStride separates the jitter streams of neighboring chunks.
const chunkSeedStride = 7919

// agentSnapshot captures one agent's state at the start of the frame.
type agentSnapshot struct {
	Pos     components.Position
	Heading components.Heading
}

// intent captures a computed step to apply after the parallel phase.
type intent struct {
	Pos          components.Position
	Heading      components.Heading
	CellX, CellY int32
}

// chunkState is owned by one chunk index for the whole run.
type chunkState struct {
	jitter *systems.RandJitter
	tally  telemetry.Tally
}

// workChunk represents a range of agents for a worker to process.
type workChunk struct {
	index      int
	start, end int
}

// parallelState holds resources for the deferred-deposit step.
//
// Agents are split into numChunks contiguous ranges. Each chunk has its own
// jitter stream, so results depend only on the seed and numChunks, not on
// which worker runs a chunk or in what order.
type parallelState struct {
	snapshots []agentSnapshot
	intents   []intent
	chunks    []chunkState
	numChunks int

	// Worker pool channels
	workChan chan workChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func newParallelState(workers int, seed int64) *parallelState {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &parallelState{
		numChunks: workers,
		chunks:    make([]chunkState, workers),
	}
	p.reseed(seed)
	return p
}

// reseed restarts every chunk's jitter stream from seed.
func (p *parallelState) reseed(seed int64) {
	for i := range p.chunks {
		p.chunks[i].jitter = systems.NewRandJitter(seed + int64(i+1)*chunkSeedStride)
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(g *Game) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numChunks)
	p.doneChan = make(chan struct{}, p.numChunks)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numChunks; i++ {
		p.wg.Add(1)
		go p.worker(g)
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
func (p *parallelState) worker(g *Game) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			g.computeChunk(chunk)
			p.doneChan <- struct{}{}
		}
	}
}

// chunkBounds returns the agent range of chunk i out of n agents.
func (p *parallelState) chunkBounds(i, n int) (start, end int) {
	size := (n + p.numChunks - 1) / p.numChunks
	start = min(i*size, n)
	end = min(start+size, n)
	return start, end
}

// snapshotAgents copies every agent's state out of the ECS, indexed by agent
// index. (Phase A)
func (g *Game) snapshotAgents() {
	n := len(g.agents)
	p := g.parallel
	if cap(p.snapshots) < n {
		p.snapshots = make([]agentSnapshot, n)
		p.intents = make([]intent, n)
	}
	p.snapshots = p.snapshots[:n]
	p.intents = p.intents[:n]

	query := g.agentFilter.Query()
	for query.Next() {
		pos, heading, agent := query.Get()
		p.snapshots[agent.Index] = agentSnapshot{Pos: *pos, Heading: *heading}
	}
}

// computeIntents runs every agent's step against the frozen field. (Phase B)
func (g *Game) computeIntents() {
	n := len(g.parallel.snapshots)
	if n == 0 {
		return
	}

	if n < parallelThreshold {
		for i := 0; i < g.parallel.numChunks; i++ {
			start, end := g.parallel.chunkBounds(i, n)
			g.computeChunk(workChunk{index: i, start: start, end: end})
		}
		return
	}
	g.computeParallel(n)
}

// computeParallel dispatches chunks to the worker pool and waits for them.
func (g *Game) computeParallel(n int) {
	if !g.parallel.running {
		g.parallel.startWorkers(g)
	}

	dispatched := 0
	for i := 0; i < g.parallel.numChunks; i++ {
		start, end := g.parallel.chunkBounds(i, n)
		if start >= end {
			continue
		}
		g.parallel.workChan <- workChunk{index: i, start: start, end: end}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-g.parallel.doneChan
	}
}

// computeChunk steps a contiguous range of agents. It reads the field and
// writes only its own intents and chunk state.
func (g *Game) computeChunk(c workChunk) {
	cs := &g.parallel.chunks[c.index]
	for i := c.start; i < c.end; i++ {
		snap := &g.parallel.snapshots[i]
		in := &g.parallel.intents[i]

		in.Pos = snap.Pos
		in.Heading = snap.Heading
		res := systems.StepAgent(&in.Pos, &in.Heading, g.field, &g.params, cs.jitter)
		in.CellX, in.CellY = int32(res.CellX), int32(res.CellY)

		tallyStep(&cs.tally, res)
	}
}

// applyIntents writes new agent state back to the ECS and deposits every
// agent's trail. (Phase C, single-threaded)
func (g *Game) applyIntents() {
	for i, e := range g.agents {
		in := &g.parallel.intents[i]
		*g.posMap.Get(e) = in.Pos
		*g.headingMap.Get(e) = in.Heading
		g.field.Deposit(int(in.CellX), int(in.CellY))
	}

	for i := range g.parallel.chunks {
		g.frameTally.Add(g.parallel.chunks[i].tally)
		g.parallel.chunks[i].tally = telemetry.Tally{}
	}
}

// tallyStep counts one step outcome.
func tallyStep(t *telemetry.Tally, res systems.StepResult) {
	switch res.Decision {
	case systems.DecisionStraight:
		t.Straight++
	case systems.DecisionLeft:
		t.Left++
	case systems.DecisionRight:
		t.Right++
	default:
		t.Ties++
	}
	if res.Bounced {
		t.Bounces++
	}
}

// stopParallelWorkers should be called when shutting down the game.
func (g *Game) stopParallelWorkers() {
	if g.parallel != nil {
		g.parallel.stopWorkers()
	}
}
