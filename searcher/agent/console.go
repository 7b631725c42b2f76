package agent

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirOrange17/connect4/experiments/metrics"
	"github.com/sirOrange17/connect4/game"
	"github.com/sirOrange17/connect4/utils"

	"github.com/rs/zerolog/log"
)

// AIToken asks the console agent to let the AI pick the move.
const AIToken = "mc"

// QuitToken ends the game from the console.
const QuitToken = "q"

type consoleAgent struct {
	in  *bufio.Reader
	out io.Writer
	ai  Agent
}

// NewConsoleAgent reads moves typed by a human. Typing AIToken hands the turn
// to ai instead.
func NewConsoleAgent(in io.Reader, out io.Writer, ai Agent) Agent {
	return consoleAgent{
		in:  bufio.NewReader(in),
		out: out,
		ai:  ai,
	}
}

// FindMove prompts until the human types a legal column, the AI token or the
// quit token.
func (a consoleAgent) FindMove(position *game.Position) (game.Move, metrics.SearchMetric, error) {
	legal := position.LegalMoves()
	for {
		fmt.Fprintf(a.out, "player %d, column or %q: ", position.Player(), AIToken)
		line, err := a.in.ReadString('\n')
		if errors.Is(err, io.EOF) && line == "" {
			return game.NoMove, metrics.SearchMetric{}, ErrQuit
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return game.NoMove, metrics.SearchMetric{}, fmt.Errorf("failed to read move: %w", err)
		}

		input := strings.TrimSpace(line)
		switch input {
		case QuitToken:
			return game.NoMove, metrics.SearchMetric{}, ErrQuit
		case AIToken:
			if a.ai == nil {
				fmt.Fprintln(a.out, "no AI available")
				continue
			}
			return a.ai.FindMove(position)
		}

		column, err := strconv.Atoi(input)
		if err != nil {
			log.Debug().Str("input", input).Msg("rejected non-numeric move")
			fmt.Fprintf(a.out, "%q is not a column\n", input)
			continue
		}
		if utils.FindIndex(legal, game.Move(column)) < 0 {
			fmt.Fprintf(a.out, "column %d is not playable\n", column)
			continue
		}
		return game.Move(column), metrics.SearchMetric{}, nil
	}
}
