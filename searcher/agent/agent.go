package agent

import (
	"errors"

	"github.com/sirOrange17/connect4/experiments/metrics"
	"github.com/sirOrange17/connect4/game"
)

// ErrQuit is returned by agents whose player gave up the game.
var ErrQuit = errors.New("player quit")

type Agent interface {
	// FindMove returns the move to play and the metrics of the search behind
	// it (zero for agents that do not search)
	FindMove(position *game.Position) (game.Move, metrics.SearchMetric, error)
}
