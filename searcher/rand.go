package searcher

import (
	"github.com/sirOrange17/connect4/game"

	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

// SourceFactory hands each worker its own random source. Workers never share
// a source, so none of them needs locking.
type SourceFactory func(worker int) game.Rand

// EntropySources seeds every worker from the operating system.
func EntropySources() SourceFactory {
	return func(int) game.Rand {
		return frand.New()
	}
}

// SeededSources gives worker i a PCG source seeded with seed+i.
func SeededSources(seed uint64) SourceFactory {
	return func(worker int) game.Rand {
		return rand.New(rand.NewSource(seed + uint64(worker)))
	}
}
