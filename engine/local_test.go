package engine

import (
	"bytes"
	"testing"

	"github.com/sirOrange17/connect4/experiments/metrics"
	"github.com/sirOrange17/connect4/game"
	"github.com/sirOrange17/connect4/searcher"
	"github.com/sirOrange17/connect4/searcher/agent"

	"github.com/stretchr/testify/require"
)

// A full board without four in a row for either player
var drawnGame = []game.Move{
	5, 4, 5, 0, 6, 2, 4, 5, 5, 0, 4, 1, 1, 0, 4, 5, 6, 5, 3, 1, 1,
	2, 2, 6, 2, 6, 6, 3, 6, 2, 0, 3, 0, 3, 3, 4, 3, 1, 4, 2, 1, 0,
}

type scriptedAgent struct {
	moves []game.Move
}

func (s *scriptedAgent) FindMove(position *game.Position) (game.Move, metrics.SearchMetric, error) {
	if len(s.moves) == 0 {
		return game.NoMove, metrics.SearchMetric{}, agent.ErrQuit
	}
	move := s.moves[0]
	s.moves = s.moves[1:]
	return move, metrics.SearchMetric{Episodes: 10}, nil
}

// scripted splits a move sequence between the two players.
func scripted(moves ...game.Move) [2]agent.Agent {
	var split [2][]game.Move
	for i, move := range moves {
		split[i%2] = append(split[i%2], move)
	}
	return [2]agent.Agent{&scriptedAgent{moves: split[0]}, &scriptedAgent{moves: split[1]}}
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("playing till a win", func(t *testing.T) {
		var out bytes.Buffer
		e := NewLocalEngine(scripted(0, 6, 1, 6, 2, 6, 3, 6), &out)

		winner, gameMetric, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, 0, winner, "Player 0 completes the bottom row")
		require.Equal(t, 0, gameMetric.StartingPlayer)
		require.Equal(t, 0, gameMetric.Winner)
		require.Equal(t, 7, gameMetric.TotalMoves, "Game should stop at the winning move")
		require.Len(t, moveMetrics, 7)
		require.Equal(t, metrics.MoveMetric{Step: 7, Player: 0, Move: 3, SearchMetric: metrics.SearchMetric{Episodes: 10}}, moveMetrics[6])
		require.Contains(t, out.String(), "X X X X . . O", "Board should be rendered after every move")
	})

	t.Run("playing till a draw", func(t *testing.T) {
		e := NewLocalEngine(scripted(drawnGame...), nil)

		winner, gameMetric, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, game.NoPlayer, winner)
		require.Equal(t, 42, gameMetric.TotalMoves)
		require.Len(t, moveMetrics, 42)
		require.True(t, e.Position.Full())
	})

	t.Run("rejecting an illegal move", func(t *testing.T) {
		e := NewLocalEngine(scripted(0, 0, 0, 0, 0, 0, 0), nil)

		winner, _, moveMetrics, err := e.Run()

		require.ErrorIs(t, err, ErrIllegalMove)
		require.Equal(t, game.NoPlayer, winner)
		require.Len(t, moveMetrics, 6, "Moves before the illegal one should be recorded")
		require.Equal(t, 6, e.Position.Moves(), "Illegal move should not be played")
	})

	t.Run("stopping when a player quits", func(t *testing.T) {
		e := NewLocalEngine(scripted(3, 3), nil)

		_, gameMetric, _, err := e.Run()

		require.ErrorIs(t, err, agent.ErrQuit)
		require.Equal(t, 2, gameMetric.TotalMoves)
	})

	t.Run("playing a game between search agents", func(t *testing.T) {
		agents := [2]agent.Agent{
			agent.NewEvaluationAgent(2, searcher.WithIterations(200), searcher.WithSeed(1)),
			agent.NewEvaluationAgent(2, searcher.WithIterations(50), searcher.WithSeed(2)),
		}
		e := NewLocalEngine(agents, nil)

		winner, gameMetric, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.Contains(t, []int{0, 1, game.NoPlayer}, winner)
		require.Equal(t, e.Position.Winner(), winner, "Reported winner should match the board")
		require.Len(t, moveMetrics, gameMetric.TotalMoves)
		require.Equal(t, 200, moveMetrics[0].Episodes, "First move should be searched by player 0")
	})

	t.Run("panics without agents", func(t *testing.T) {
		require.Panics(t, func() { NewLocalEngine([2]agent.Agent{}, nil) })
	})
}
