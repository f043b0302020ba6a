package mindgrid

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
)

// Generator builds grids from an engine's profiles using its own RNG.
// A Generator is not safe for concurrent use; give each run its own.
type Generator struct {
	engine *Engine
	rng    *rand.Rand
	logger *log.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithLogger sets the logger used for fairness diagnostics.
func WithLogger(l *log.Logger) GeneratorOption {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGenerator creates a generator seeded with seed.
func NewGenerator(engine *Engine, seed int64, opts ...GeneratorOption) *Generator {
	g := &Generator{
		engine: engine,
		rng:    rand.New(rand.NewSource(seed)),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds a grid for a level: weighted kinds, per-kind values,
// then at most one rarity tile.
func (g *Generator) Generate(level int) (Grid, error) {
	profile, err := g.engine.Profile(level)
	if err != nil {
		return nil, err
	}

	grid := newGrid(profile.GridSize)
	for r := range grid {
		for c := range grid[r] {
			kind := g.pickKind(profile)
			grid[r][c].Kind = kind
			grid[r][c].Value = g.drawValue(kind)
		}
	}

	g.injectRarity(grid, level)
	return grid, nil
}

// pickKind draws from [0, total) and walks the bands in stable order.
func (g *Generator) pickKind(p Profile) Kind {
	total := p.TotalWeight()
	if total <= 0 {
		return KindNumber
	}
	r := g.rng.Intn(total)
	for _, w := range p.Weights {
		if r < w.Weight {
			return w.Kind
		}
		r -= w.Weight
	}
	return KindNumber
}

func (g *Generator) drawValue(k Kind) int {
	v := g.engine.cfg.Values
	switch k {
	case KindBonus:
		return g.randInt(v.Bonus.Min, v.Bonus.Max)
	case KindChain:
		return g.randInt(v.Chain.Min, v.Chain.Max)
	case KindRisk:
		return g.randInt(v.Risk.Min, v.Risk.Max)
	default:
		return g.randInt(v.Number.Min, v.Number.Max)
	}
}

// randInt returns a uniform integer in [lo, hi].
func (g *Generator) randInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}

// injectRarity overwrites one uniformly chosen cell with a rarity tile when
// the level's probability gate passes. Tiers above the level are skipped.
func (g *Generator) injectRarity(grid Grid, level int) {
	if len(grid) == 0 {
		return
	}
	if g.rng.Float64() >= g.engine.rarityChance(level) {
		return
	}

	total := 0
	for _, t := range g.engine.tiers {
		if level >= t.minLevel {
			total += t.weight
		}
	}
	if total <= 0 {
		return
	}

	r := g.rng.Intn(total)
	var chosen rarityTier
	for _, t := range g.engine.tiers {
		if level < t.minLevel {
			continue
		}
		if r < t.weight {
			chosen = t
			break
		}
		r -= t.weight
	}

	size := len(grid)
	idx := g.rng.Intn(size * size)
	cell := &grid[idx/size][idx%size]
	cell.Kind = chosen.kind
	cell.Value = chosen.value
}
