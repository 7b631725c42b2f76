package agent

import (
	"math"

	"github.com/sirOrange17/connect4/experiments/metrics"
	"github.com/sirOrange17/connect4/game"
	"github.com/sirOrange17/connect4/searcher"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	metrics     metrics.Collector
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns an agent for self-play that samples moves in
// proportion to visits^(1/temperature) instead of always taking the most
// visited one.
func NewTrainingAgent(workers int, temperature float64, seed uint64, options ...searcher.Option) Agent {
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	collector := metrics.NewCollector()
	options = append(options, searcher.WithMetrics(collector))
	return trainingAgent{
		mcts:        searcher.NewMCTS(workers, options...),
		metrics:     collector,
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a trainingAgent) FindMove(position *game.Position) (game.Move, metrics.SearchMetric, error) {
	best := a.mcts.FindNextMove(position)
	policy := adjustTemperature(a.mcts.Stats(), a.temperature)
	if policy == nil { // No visits to sample from
		return best, a.metrics.Complete(), nil
	}
	return sample(policy, a.rng.Float64()), a.metrics.Complete(), nil
}

type weightedMove struct {
	move game.Move
	prob float64
}

func adjustTemperature(stats []searcher.MoveStats, temperature float64) []weightedMove {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	policy := make([]weightedMove, 0, len(stats))
	for _, s := range stats {
		prob := math.Pow(float64(s.Visits), exponent)
		sum += prob
		policy = append(policy, weightedMove{move: s.Move, prob: prob})
	}
	if sum == 0 {
		return nil
	}
	// Normalize
	for i := range policy {
		policy[i].prob /= sum
	}
	return policy
}

func sample(policy []weightedMove, sampled float64) game.Move {
	cumulative := 0.0
	for _, wm := range policy {
		cumulative += wm.prob
		if sampled < cumulative {
			return wm.move
		}
	}
	return policy[len(policy)-1].move // Fallback in case of rounding errors
}
