package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Workers    int
	Iterations int // Requested budget
	Duration   time.Duration
	Episodes   int // Playouts actually run
	Wins       int // Playouts won by the player who moved into the simulated node
}

type MoveMetric struct {
	Step   int
	Player int
	Move   int
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int
	Winner         int // -1 for a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector records search metrics. Episodes are added concurrently by the
// search workers.
type Collector interface {
	Start(workers, iterations int)
	AddEpisode(won bool)
	Complete() SearchMetric
}

type collector struct {
	workers    int
	iterations int
	startTime  time.Time
	episodes   atomic.Int32
	wins       atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(workers, iterations int) {
	m.startTime = time.Now()
	m.workers = workers
	m.iterations = iterations
	m.episodes.Store(0)
	m.wins.Store(0)
}

func (m *collector) AddEpisode(won bool) {
	m.episodes.Add(1)
	if won {
		m.wins.Add(1)
	}
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Workers:    m.workers,
		Iterations: m.iterations,
		Duration:   time.Since(m.startTime),
		Episodes:   int(m.episodes.Load()),
		Wins:       int(m.wins.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(workers, iterations int) {}
func (m *dummyCollector) AddEpisode(won bool)           {}
func (m *dummyCollector) Complete() SearchMetric        { return SearchMetric{} }
