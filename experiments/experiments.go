package experiments

import (
	"fmt"

	"github.com/sirOrange17/connect4/engine"
	"github.com/sirOrange17/connect4/experiments/metrics"
	"github.com/sirOrange17/connect4/searcher"
	"github.com/sirOrange17/connect4/searcher/agent"

	"github.com/rs/zerolog/log"
)

// Experiment pits agent configurations against each other in self-play.
type Experiment struct {
	Name     string
	Configs  []metrics.AgentConfig
	MatchUps [][2]metrics.AgentConfig
	NumGames int // Per match up
	Seed     uint64
}

// Run plays every match up and stores configs, games and moves as CSV files
// under root. It returns the directory holding the files.
func (x Experiment) Run(root string) (string, error) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", x.Name)

	for mi, matchup := range x.MatchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(x.MatchUps), matchup[0], matchup[1])

		for i := 0; i < x.NumGames; i++ {
			// Alternate the starting agent
			seats := matchup
			if i%2 == 1 {
				seats[0], seats[1] = seats[1], seats[0]
			}
			count++

			winner, gameMetric, moveMetrics, err := x.runGame(seats, count)
			if err != nil {
				return "", fmt.Errorf("failed to run game %d: %w", count, err)
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     seats[0].ID,
				Agent2:     seats[1].ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %d", mi+1, len(x.MatchUps), i+1, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", x.Name)

	writer, err := metrics.NewWriter(root, x.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(x.Configs); err != nil {
		return "", err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")

	return writer.Dir(), nil
}

// runGame executes a single game where seats[i] plays for player i.
func (x Experiment) runGame(seats [2]metrics.AgentConfig, gameID int) (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	var agents [2]agent.Agent
	for i, config := range seats {
		agents[i] = createAgent(config, x.Seed, gameID*2+i)
	}
	return engine.NewLocalEngine(agents, nil).Run()
}

// createAgent seeds the agent when the experiment has a seed, so that runs can
// be reproduced.
func createAgent(config metrics.AgentConfig, seed uint64, salt int) agent.Agent {
	options := []searcher.Option{searcher.WithIterations(config.Iterations)}
	if seed != 0 {
		options = append(options, searcher.WithSeed(seed+uint64(salt)*1000))
	}
	return agent.NewEvaluationAgent(config.Workers, options...)
}
