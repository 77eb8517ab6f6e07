package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetrics summarizes one search call for evaluation harnesses.
type SearchMetrics struct {
	Duration     time.Duration
	Iterations   int64
	Rollouts     int64
	RolloutMoves int64 // total simulated moves, for average playout depth
	Workers      int
}

// Collector gathers search metrics. Implementations must be safe for
// concurrent use by root-parallel workers.
type Collector interface {
	Start(workers int)
	AddIteration()
	AddRollout(moves int)
	Complete() SearchMetrics
}

type collector struct {
	startTime    time.Time
	workers      int
	iterations   atomic.Int64
	rollouts     atomic.Int64
	rolloutMoves atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(workers int) {
	c.startTime = time.Now()
	c.workers = workers
	c.iterations.Store(0)
	c.rollouts.Store(0)
	c.rolloutMoves.Store(0)
}

func (c *collector) AddIteration() {
	c.iterations.Add(1)
}

func (c *collector) AddRollout(moves int) {
	c.rollouts.Add(1)
	c.rolloutMoves.Add(int64(moves))
}

func (c *collector) Complete() SearchMetrics {
	return SearchMetrics{
		Duration:     time.Since(c.startTime),
		Iterations:   c.iterations.Load(),
		Rollouts:     c.rollouts.Load(),
		RolloutMoves: c.rolloutMoves.Load(),
		Workers:      c.workers,
	}
}

type noopCollector struct{}

func NewNoopCollector() Collector {
	return &noopCollector{}
}

func (noopCollector) Start(workers int)       {}
func (noopCollector) AddIteration()           {}
func (noopCollector) AddRollout(moves int)    {}
func (noopCollector) Complete() SearchMetrics { return SearchMetrics{} }
