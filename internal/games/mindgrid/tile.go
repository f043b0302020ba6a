package mindgrid

import "fmt"

// Position identifies a cell within one grid generation (0-indexed).
type Position struct {
	Row int
	Col int
}

// String returns "row-col".
func (p Position) String() string {
	return fmt.Sprintf("%d-%d", p.Row, p.Col)
}

// Tile is a single cell of the grid.
type Tile struct {
	Pos      Position
	Kind     Kind
	Value    int
	Consumed bool
}

// Grid is a square tile matrix indexed [row][col].
type Grid [][]Tile

// Size returns the grid dimension.
func (g Grid) Size() int {
	return len(g)
}

// At returns a pointer to the tile at p, or false if p is outside the grid.
func (g Grid) At(p Position) (*Tile, bool) {
	if p.Row < 0 || p.Row >= len(g) {
		return nil, false
	}
	row := g[p.Row]
	if p.Col < 0 || p.Col >= len(row) {
		return nil, false
	}
	return &row[p.Col], true
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]Tile(nil), row...)
	}
	return out
}

// Available returns all tiles that have not been consumed.
func (g Grid) Available() []Tile {
	var tiles []Tile
	for _, row := range g {
		for _, t := range row {
			if !t.Consumed {
				tiles = append(tiles, t)
			}
		}
	}
	return tiles
}

// RarityTiles returns the rarity tiles on the grid.
func (g Grid) RarityTiles() []Tile {
	var tiles []Tile
	for _, row := range g {
		for _, t := range row {
			if t.Kind.IsRarity() {
				tiles = append(tiles, t)
			}
		}
	}
	return tiles
}

// newGrid allocates an empty size x size grid with positions assigned.
func newGrid(size int) Grid {
	g := make(Grid, size)
	for r := range size {
		g[r] = make([]Tile, size)
		for c := range size {
			g[r][c].Pos = Position{Row: r, Col: c}
		}
	}
	return g
}
