package searcher

import (
	"testing"

	"github.com/sirOrange17/connect4/game"

	"github.com/stretchr/testify/require"
)

type mockState struct {
	player int
	moves  []game.Move
	played []game.Move
	winner int
	panics bool
}

func (m *mockState) Player() int {
	return m.player
}

func (m *mockState) LegalMoves() []game.Move {
	return m.moves
}

func (m *mockState) Play(move game.Move) {
	m.played = append(m.played, move)
	m.player = game.Opponent(m.player)
}

func (m *mockState) Playout(rng game.Rand) int {
	if m.panics {
		panic("playout failed")
	}
	return m.winner
}

func (m *mockState) Clone() game.State {
	clone := *m
	clone.played = append([]game.Move(nil), m.played...)
	return &clone
}

func newMockNode(visits int, children ...*Node) *Node {
	return &Node{
		state:    &mockState{},
		move:     game.NoMove,
		visits:   visits,
		children: children,
	}
}

func TestNodeSelect(t *testing.T) {
	t.Run("selecting unvisited child first", func(t *testing.T) {
		unvisited := &Node{move: 0}
		node := newMockNode(10,
			unvisited,
			&Node{move: 1, visits: 5, wins: 5},
			&Node{move: 2, visits: 5, wins: 5},
		)

		require.Same(t, unvisited, node.Select(), "Unvisited child should score infinity")
	})

	t.Run("selecting unvisited child after visited ones", func(t *testing.T) {
		unvisited := &Node{move: 2}
		node := newMockNode(10,
			&Node{move: 0, visits: 5, wins: 5},
			&Node{move: 1, visits: 5, wins: 5},
			unvisited,
		)

		require.Same(t, unvisited, node.Select(), "Unvisited child should score infinity")
	})

	t.Run("visiting every child before revisiting one", func(t *testing.T) {
		node := newMockNode(10,
			&Node{move: 0},
			&Node{move: 1, visits: 5, wins: 5},
			&Node{move: 2, visits: 5},
			&Node{move: 3},
		)

		first := node.Select()
		first.Backpropagate(true)
		node.Backpropagate(true)
		second := node.Select()

		require.Equal(t, game.Move(0), first.Move(), "First unvisited child should be selected")
		require.Equal(t, game.Move(3), second.Move(), "Remaining unvisited child should be selected next")
	})

	t.Run("selecting max UCT child", func(t *testing.T) {
		best := &Node{move: 1, visits: 5, wins: 4}
		node := newMockNode(15,
			&Node{move: 0, visits: 5, wins: 1},
			best,
			&Node{move: 2, visits: 5, wins: 2},
		)

		require.Same(t, best, node.Select(), "Child with the highest win rate should be selected at equal visits")
	})

	t.Run("breaking ties by child order", func(t *testing.T) {
		first := &Node{move: 0, visits: 5, wins: 2}
		node := newMockNode(10,
			first,
			&Node{move: 1, visits: 5, wins: 2},
		)

		require.Same(t, first, node.Select(), "First maximum should win ties")
	})

	t.Run("stagnating on leaf node", func(t *testing.T) {
		node := newMockNode(0)

		require.Same(t, node, node.Select(), "Leaf should select itself")
	})
}

func TestNodeExpand(t *testing.T) {
	t.Run("adding one child per legal move", func(t *testing.T) {
		state := &mockState{player: 0, moves: []game.Move{2, 4, 5}}
		node := NewNode(state)

		node.Expand()

		require.Len(t, node.Children(), 3, "Node should have a child per legal move")
		for i, child := range node.Children() {
			require.Equal(t, state.moves[i], child.Move(), "Children should follow move order")
			require.Equal(t, []game.Move{state.moves[i]}, child.state.(*mockState).played,
				"Child state should have the move applied")
			require.Equal(t, 0, child.player, "Child should record the player who moved")
			require.Zero(t, child.Visits())
			require.Zero(t, child.Wins())
		}
		require.Empty(t, node.state.(*mockState).played, "Parent state should not change")
		require.Empty(t, state.played, "Caller state should not change")
	})

	t.Run("expanding terminal node", func(t *testing.T) {
		node := NewNode(&mockState{})

		node.Expand()

		require.Empty(t, node.Children(), "Terminal node has no children")
		require.Same(t, node, node.Select(), "Terminal node should select itself")
	})

	t.Run("expanding twice", func(t *testing.T) {
		node := NewNode(&mockState{moves: []game.Move{0, 1}})
		node.Expand()

		require.Panics(t, node.Expand, "Second expansion should panic")
		require.Len(t, node.Children(), 2, "Children should not be duplicated")
	})
}

func TestNodeSimulate(t *testing.T) {
	t.Run("crediting the player who moved into the node", func(t *testing.T) {
		node := NewNode(&mockState{player: 0, moves: []game.Move{0}, winner: 0})
		node.Expand()
		child := node.Children()[0]

		require.True(t, child.Simulate(nil), "Player 0 moved into the child and won")
		require.Zero(t, child.Visits(), "Simulation should not update statistics")
	})

	t.Run("losing and drawn playouts", func(t *testing.T) {
		lost := NewNode(&mockState{player: 0, moves: []game.Move{0}, winner: 1})
		lost.Expand()
		drawn := NewNode(&mockState{player: 0, moves: []game.Move{0}, winner: game.NoPlayer})
		drawn.Expand()

		require.False(t, lost.Children()[0].Simulate(nil))
		require.False(t, drawn.Children()[0].Simulate(nil))
	})
}

func TestNodeBackpropagate(t *testing.T) {
	node := newMockNode(0)

	node.Backpropagate(true)
	node.Backpropagate(false)
	node.Backpropagate(true)

	require.Equal(t, 3, node.Visits(), "Every result should add a visit")
	require.Equal(t, 2, node.Wins(), "Only wins should add a win")
}

func TestNodeBestMove(t *testing.T) {
	t.Run("picking most visited child", func(t *testing.T) {
		node := newMockNode(30,
			&Node{move: 0, visits: 5, wins: 5},
			&Node{move: 1, visits: 20, wins: 2},
			&Node{move: 2, visits: 5, wins: 0},
		)

		require.Equal(t, game.Move(1), node.BestMove(), "Visits should decide, not win rate")
	})

	t.Run("breaking ties by child order", func(t *testing.T) {
		node := newMockNode(20,
			&Node{move: 3, visits: 5},
			&Node{move: 4, visits: 10},
			&Node{move: 5, visits: 10},
		)

		require.Equal(t, game.Move(4), node.BestMove(), "First maximum should win ties")
	})

	t.Run("panics without children", func(t *testing.T) {
		require.Panics(t, func() { newMockNode(0).BestMove() })
	})
}
