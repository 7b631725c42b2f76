package experiments

import "github.com/sirOrange17/connect4/experiments/metrics"

var workerCounts = []int{1, 2, 4, 8, 16}

// ParallelizationExperiment pairs agents with a growing number of workers
// against a single-worker baseline with the same iteration budget. Splitting
// the budget over more independent trees should not weaken play.
func ParallelizationExperiment(numGames, iterations int, seed uint64) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Workers: 1, Iterations: iterations}
	configs := []metrics.AgentConfig{baseline}
	matchUps := [][2]metrics.AgentConfig{}
	for i, workers := range workerCounts {
		config := metrics.AgentConfig{ID: i + 1, Workers: workers, Iterations: iterations}
		configs = append(configs, config)
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}

	return Experiment{
		Name:     "parallelization",
		Configs:  configs,
		MatchUps: matchUps,
		NumGames: numGames,
		Seed:     seed,
	}
}
