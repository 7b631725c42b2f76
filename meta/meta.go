package meta

// Iterations is the default number of playouts per AI move.
const Iterations = 5000

// Workers is the default number of search goroutines.
const Workers = 16

// Games is the default number of games per experiment match up.
const Games = 10

// OutputDir is where experiment records are written by default.
const OutputDir = "experiments"
