package engine

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirOrange17/connect4/experiments/metrics"
	"github.com/sirOrange17/connect4/game"
	"github.com/sirOrange17/connect4/searcher/agent"
	"github.com/sirOrange17/connect4/utils"

	"github.com/rs/zerolog/log"
)

var ErrIllegalMove = errors.New("illegal move")

type LocalEngine struct {
	Position *game.Position
	Agents   [2]agent.Agent
	out      io.Writer
}

// NewLocalEngine sets up a game on an empty board where agents[i] plays for
// player i. When out is not nil the board is rendered to it after every move.
func NewLocalEngine(agents [2]agent.Agent, out io.Writer) *LocalEngine {
	for i, a := range agents {
		if a == nil {
			panic(fmt.Sprintf("missing agent for player %d", i))
		}
	}
	return &LocalEngine{
		Position: game.NewPosition(),
		Agents:   agents,
		out:      out,
	}
}

// Run executes the game loop until a player connects four or the board is
// full. The winner is game.NoPlayer for a draw or an aborted game.
func (e *LocalEngine) Run() (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.Position.Player(),
		Winner:         game.NoPlayer,
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("player %d is starting", e.Position.Player())
	e.render()

	winner := e.Position.Winner()
	var err error
	for winner == game.NoPlayer && !e.Position.Full() {
		player := e.Position.Player()

		var move game.Move
		var searchMetric metrics.SearchMetric
		move, searchMetric, err = e.Agents[player].FindMove(e.Position)
		if err != nil {
			err = fmt.Errorf("player %d: %w", player, err)
			break
		}
		if utils.FindIndex(e.Position.LegalMoves(), move) < 0 {
			err = fmt.Errorf("player %d chose column %d: %w", player, move, ErrIllegalMove)
			break
		}

		e.Position.Play(move)
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         e.Position.Moves(),
			Player:       player,
			Move:         int(move),
			SearchMetric: searchMetric,
		})
		log.Info().
			Int("step", e.Position.Moves()).
			Int("player", player).
			Int("column", int(move)).
			Int("episodes", searchMetric.Episodes).
			Msg("move played")
		e.render()

		if e.Position.IsWin(player) {
			winner = player
		}
	}

	gameMetric.Winner = winner
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = e.Position.Moves()

	if err != nil {
		return winner, gameMetric, moveMetrics, err
	}
	if winner == game.NoPlayer {
		log.Info().Msg("game ended in a draw")
	} else {
		log.Info().Msgf("game over! winner: player %d", winner)
	}
	return winner, gameMetric, moveMetrics, nil
}

func (e *LocalEngine) render() {
	if e.out == nil {
		return
	}
	fmt.Fprintln(e.out, e.Position)
}
