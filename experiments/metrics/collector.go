package metrics

import (
	"morris/game"
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Budget   time.Duration
	MaxDepth int
	Duration time.Duration
	Depth    int   // Deepest fully completed iteration
	Nodes    int64 // Nodes visited across all iterations
	Score    int   // Value of the chosen move at Depth
	Fallback bool  // No iteration completed before the deadline
}

type MoveMetric struct {
	Step   int
	Player game.Color
	Move   string
	SearchMetric
}

type GameMetric struct {
	ID         string
	Blue       string // Agent name
	Orange     string // Agent name
	Winner     game.Color
	Reason     string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

type Collector interface {
	Start(maxDepth int, budget time.Duration)
	AddNode()
	CompleteDepth(depth, score int)
	SetFallback()
	Complete() SearchMetric
}

type collector struct {
	maxDepth  int
	budget    time.Duration
	startTime time.Time
	nodes     atomic.Int64
	depth     atomic.Int32
	score     atomic.Int64
	fallback  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(maxDepth int, budget time.Duration) {
	m.startTime = time.Now()
	m.maxDepth = maxDepth
	m.budget = budget
	m.nodes.Store(0)
	m.depth.Store(0)
	m.score.Store(0)
	m.fallback.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) CompleteDepth(depth, score int) {
	m.depth.Store(int32(depth))
	m.score.Store(int64(score))
}

func (m *collector) SetFallback() {
	m.fallback.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Budget:   m.budget,
		MaxDepth: m.maxDepth,
		Duration: time.Since(m.startTime),
		Depth:    int(m.depth.Load()),
		Nodes:    m.nodes.Load(),
		Score:    int(m.score.Load()),
		Fallback: m.fallback.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(maxDepth int, budget time.Duration) {}
func (m *dummyCollector) AddNode()                                 {}
func (m *dummyCollector) CompleteDepth(depth, score int)           {}
func (m *dummyCollector) SetFallback()                             {}
func (m *dummyCollector) Complete() SearchMetric                   { return SearchMetric{} }
