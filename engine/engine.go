package engine

import "github.com/sirOrange17/connect4/experiments/metrics"

type Engine interface {
	// Run plays a game till there's a winner or the board is full
	Run() (winner int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
