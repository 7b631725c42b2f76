package agent

import (
	"github.com/sirOrange17/connect4/experiments/metrics"
	"github.com/sirOrange17/connect4/game"
	"github.com/sirOrange17/connect4/searcher"
)

type evaluationAgent struct {
	mcts    *searcher.MCTS
	metrics metrics.Collector
}

// NewEvaluationAgent returns an agent that always plays the most visited move.
func NewEvaluationAgent(workers int, options ...searcher.Option) Agent {
	collector := metrics.NewCollector()
	options = append(options, searcher.WithMetrics(collector))
	return evaluationAgent{
		mcts:    searcher.NewMCTS(workers, options...),
		metrics: collector,
	}
}

func (a evaluationAgent) FindMove(position *game.Position) (game.Move, metrics.SearchMetric, error) {
	move := a.mcts.FindNextMove(position)
	return move, a.metrics.Complete(), nil
}
