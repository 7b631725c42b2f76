package game

// Move identifies a legal action in a State. For Connect Four it is the column
// index.
type Move int

// NoMove marks the absence of a move (e.g. the root of a search tree).
const NoMove Move = -1

// NoPlayer is returned as the winner of a drawn game.
const NoPlayer = -1

// Rand is the source of uniform random choices used by playouts. Both
// *golang.org/x/exp/rand.Rand and *lukechampine.com/frand.RNG satisfy it.
type Rand interface {
	Intn(n int) int
}

// State is a two-player, perfect-information, alternating-move game position
// that can be searched by the searcher package. Unlike immutable states, Play
// mutates in place, so searchers Clone before they branch.
type State interface {
	// Player returns the player on move (0 or 1)
	Player() int
	LegalMoves() []Move
	Play(Move)
	// Playout plays random moves till the game is over, restores the state and
	// returns the winner or NoPlayer
	Playout(rng Rand) int
	Clone() State
}

// Opponent returns the other player of a two-player game.
func Opponent(player int) int {
	return 1 - player
}
