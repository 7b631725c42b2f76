package searcher

import (
	"fmt"
	"sync"

	"github.com/sirOrange17/connect4/experiments/metrics"
	"github.com/sirOrange17/connect4/game"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

type Option func(mcts *MCTS)

// MoveStats holds the merged statistics of one root child.
type MoveStats struct {
	Move   game.Move
	Visits int
	Wins   int
}

// MCTS runs root-parallel UCT search: every worker grows a private tree and
// the per-move statistics are summed into one result tree at the end.
type MCTS struct {
	workers    int
	iterations int
	sources    SourceFactory
	metrics    metrics.Collector
	result     *Node
}

func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		m.iterations = iterations
	}
}

// WithSeed makes the search reproducible: worker i draws from a PCG source
// seeded with seed+i.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.sources = SeededSources(seed)
	}
}

func WithSources(sources SourceFactory) Option {
	return func(m *MCTS) {
		if sources != nil {
			m.sources = sources
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(m *MCTS) {
		if collector != nil {
			m.metrics = collector
		}
	}
}

func NewMCTS(workers int, options ...Option) *MCTS {
	if workers <= 0 {
		panic(fmt.Sprintf("cannot search with %d workers", workers))
	}
	m := &MCTS{ // Default values
		workers: workers,
		sources: EntropySources(),
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.iterations < 0 {
		panic(fmt.Sprintf("cannot search with %d iterations", m.iterations))
	}
	return m
}

// Search returns the best move for the player on move after spending
// iterations playouts over workers goroutines.
func Search(state game.State, iterations, workers int) game.Move {
	return NewMCTS(workers, WithIterations(iterations)).FindNextMove(state)
}

// FindNextMove blocks until every worker has spent its share of the
// iteration budget, then returns the most visited move. A panic in any worker
// is re-raised here.
func (m *MCTS) FindNextMove(state game.State) game.Move {
	result := NewNode(state)
	result.Expand()
	var mu sync.Mutex

	perWorker := m.iterations / m.workers
	m.metrics.Start(m.workers, m.iterations)

	var g errgroup.Group
	for i := 0; i < m.workers; i++ {
		rng := m.sources(i)
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("worker %d: %v", i, r)
				}
			}()

			root := NewNode(state)
			root.Expand()
			m.iterate(root, rng, perWorker)

			mu.Lock()
			defer mu.Unlock()
			merge(result, root)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		panic(err)
	}

	m.result = result
	metric := m.metrics.Complete()
	log.Debug().
		Int("workers", metric.Workers).
		Int("episodes", metric.Episodes).
		Dur("duration", metric.Duration).
		Msg("search complete")

	return result.BestMove()
}

func (m *MCTS) iterate(root *Node, rng game.Rand, iterations int) {
	for i := 0; i < iterations; i++ {
		node := root.Select()
		won := node.Simulate(rng)
		node.Backpropagate(won)
		root.Backpropagate(won)
		m.metrics.AddEpisode(won)
	}
}

// merge adds the child statistics of a worker tree to the result tree. Both
// were expanded from the same state, so children line up by index.
func merge(result, root *Node) {
	for i, child := range root.children {
		result.children[i].visits += child.visits
		result.children[i].wins += child.wins
	}
	result.visits += root.visits
	result.wins += root.wins
}

// Stats returns the merged per-move statistics of the last search.
func (m *MCTS) Stats() []MoveStats {
	if m.result == nil {
		return nil
	}
	return lo.Map(m.result.children, func(child *Node, _ int) MoveStats {
		return MoveStats{Move: child.move, Visits: child.visits, Wins: child.wins}
	})
}

// TotalVisits sums the visits of all moves in stats.
func TotalVisits(stats []MoveStats) int {
	return lo.SumBy(stats, func(s MoveStats) int { return s.Visits })
}
