package searcher

import (
	"math"

	"github.com/sirOrange17/connect4/game"

	"github.com/rs/zerolog/log"
)

// Node is a search tree node owning a private copy of its game state. Children
// are owned exclusively by their parent and there are no back-pointers.
type Node struct {
	state    game.State
	move     game.Move // Move from the parent, NoMove for the root
	player   int       // Player who made move
	visits   int
	wins     int
	children []*Node
}

// NewNode returns an unexpanded root holding a clone of state.
func NewNode(state game.State) *Node {
	return &Node{
		state:  state.Clone(),
		move:   game.NoMove,
		player: game.Opponent(state.Player()),
	}
}

func (n *Node) Move() game.Move {
	return n.move
}

func (n *Node) Visits() int {
	return n.visits
}

func (n *Node) Wins() int {
	return n.wins
}

func (n *Node) Children() []*Node {
	return n.children
}

// Select descends to a leaf, picking at every level the child with the
// highest UCT score.
func (n *Node) Select() *Node {
	node := n
	for len(node.children) > 0 {
		node = node.children[node.pickChild()]
	}
	return node
}

// pickChild returns the index of the first child with the maximum score.
func (n *Node) pickChild() int {
	policy := newUCT(CSquared, float64(n.visits))

	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range n.children {
		score := policy.evaluate(float64(child.wins), float64(child.visits))
		if score == math.Inf(1) {
			return i
		}
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

// Expand adds one child per legal move. A node is expanded at most once.
func (n *Node) Expand() {
	if n.children != nil {
		panic("node is already expanded")
	}

	moves := n.state.LegalMoves()
	n.children = make([]*Node, 0, len(moves))
	for _, move := range moves {
		state := n.state.Clone()
		state.Play(move)
		n.children = append(n.children, &Node{
			state:  state,
			move:   move,
			player: n.state.Player(),
		})
	}
}

// Simulate plays a random game from the node's state and reports whether the
// player who moved into this node won it.
func (n *Node) Simulate(rng game.Rand) bool {
	return n.state.Playout(rng) == n.player
}

func (n *Node) Backpropagate(result bool) {
	n.visits++
	if result {
		n.wins++
	}
}

// BestMove returns the move of the most visited child.
func (n *Node) BestMove() game.Move {
	if len(n.children) == 0 {
		panic("node has no children")
	}

	best := n.children[0]
	for _, child := range n.children {
		log.Debug().
			Int("move", int(child.move)).
			Int("visits", child.visits).
			Int("wins", child.wins).
			Msg("child statistics")
		if child.visits > best.visits {
			best = child
		}
	}
	return best.move
}
