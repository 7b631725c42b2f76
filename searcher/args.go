package searcher

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant
