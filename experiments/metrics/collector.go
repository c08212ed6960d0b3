package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric is a snapshot of a single move decision: how long the search
// ran and how much work it did. Rollouts and full playouts apply to MCTS,
// nodes and completed depth to alpha-beta.
type SearchMetric struct {
	Strategy     string
	Duration     time.Duration
	Rollouts     int
	FullPlayouts int
	Cutoff       int
	Nodes        int
	Depth        int
}

type MoveMetric struct {
	Step   int
	Player string
	SearchMetric
}

type GameMetric struct {
	White      string
	Black      string
	Outcome    string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start(strategy string, cutoff int)
	AddRollout()
	AddFullPlayout()
	AddNode()
	SetDepth(depth int)
	Complete() SearchMetric
}

type collector struct {
	strategy     string
	cutoff       int
	startTime    time.Time
	rollouts     atomic.Int64
	fullPlayouts atomic.Int64
	nodes        atomic.Int64
	depth        atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(strategy string, cutoff int) {
	m.startTime = time.Now()
	m.strategy = strategy
	m.cutoff = cutoff
	m.rollouts.Store(0)
	m.fullPlayouts.Store(0)
	m.nodes.Store(0)
	m.depth.Store(0)
}

func (m *collector) AddRollout() {
	m.rollouts.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) SetDepth(depth int) {
	m.depth.Store(int64(depth))
}

// Complete snapshots the current search and clears the counters, so a
// decision that never started a search (a short-circuited move) reports
// zero work instead of the previous search's numbers.
func (m *collector) Complete() SearchMetric {
	var duration time.Duration
	if !m.startTime.IsZero() {
		duration = time.Since(m.startTime)
	}
	metric := SearchMetric{
		Strategy:     m.strategy,
		Duration:     duration,
		Rollouts:     int(m.rollouts.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Cutoff:       m.cutoff,
		Nodes:        int(m.nodes.Load()),
		Depth:        int(m.depth.Load()),
	}

	m.startTime = time.Time{}
	m.rollouts.Store(0)
	m.fullPlayouts.Store(0)
	m.nodes.Store(0)
	m.depth.Store(0)
	return metric
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(strategy string, cutoff int) {}
func (m *dummyCollector) AddRollout()                       {}
func (m *dummyCollector) AddFullPlayout()                   {}
func (m *dummyCollector) AddNode()                          {}
func (m *dummyCollector) SetDepth(depth int)                {}
func (m *dummyCollector) Complete() SearchMetric            { return SearchMetric{} }
