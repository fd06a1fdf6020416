// Package engine resolves battle turns: switch, move and status phases over a
// Battle aggregate, plus the AI selector and action validation.
package engine

import (
	"math/rand"

	"github.com/shotam27/NoGambleMonsterBattle/internal/catalog"
)

// Catalog is the read-only definition source the engine needs, including
// roster generation for rematch mode.
type Catalog interface {
	catalog.Lookup
	RandomRoster(r *rand.Rand, n int) []string
}

// Engine is stateless apart from its catalog; one instance serves every
// battle concurrently.
type Engine struct {
	cat Catalog
}

func New(cat Catalog) *Engine {
	return &Engine{cat: cat}
}
