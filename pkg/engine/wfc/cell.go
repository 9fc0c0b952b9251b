package wfc

import (
	"math"
	"math/rand/v2"
)

// Cell is one grid position and the tiles it may still resolve to.
// Cells are owned by their Model; neighbor links are looked up through it.
type Cell struct {
	x, y int

	domain    []*Tile
	entropy   int
	collapsed bool

	// neighbor cache, valid while the cell keeps the coordinates it was filled at
	neighbors       [4]*Cell
	neighborsAt     [2]int
	neighborsCached bool
}

// newCell creates a cell at the given position seeded with tiles. The slice is
// owned by the cell afterwards.
func newCell(x, y int, tiles []*Tile) *Cell {
	c := &Cell{x: x, y: y}
	c.setDomain(tiles)
	return c
}

// X returns the cell column
func (c *Cell) X() int {
	return c.x
}

// Y returns the cell row; row 0 is the bottom of the grid
func (c *Cell) Y() int {
	return c.y
}

// Entropy returns the number of tiles still possible
func (c *Cell) Entropy() int {
	return c.entropy
}

// Collapsed reports whether exactly one tile is left
func (c *Cell) Collapsed() bool {
	return c.collapsed
}

// Tile returns the resolved tile, or nil while the cell is not collapsed
func (c *Cell) Tile() *Tile {
	if !c.collapsed {
		return nil
	}
	return c.domain[0]
}

// Domain returns a copy of the tiles still possible for this cell
func (c *Cell) Domain() []*Tile {
	out := make([]*Tile, len(c.domain))
	copy(out, c.domain)
	return out
}

// Has reports whether t is still in the domain
func (c *Cell) Has(t *Tile) bool {
	for _, d := range c.domain {
		if d == t {
			return true
		}
	}
	return false
}

// setDomain replaces the domain and refreshes the derived state. Callers never
// pass an empty domain.
func (c *Cell) setDomain(tiles []*Tile) {
	c.domain = tiles
	c.entropy = len(tiles)
	c.collapsed = c.entropy == 1
}

// collapse narrows the domain to a single tile. Each candidate draws
// u^(1/weight) for a uniform u and the largest key wins, which selects tiles
// proportionally to their weight in one pass.
func (c *Cell) collapse(r *rand.Rand) {
	if len(c.domain) == 0 {
		return
	}
	best := c.domain[0]
	bestKey := -1.0
	for _, t := range c.domain {
		key := math.Pow(r.Float64(), 1/t.weight)
		if key > bestKey {
			best, bestKey = t, key
		}
	}
	c.setDomain([]*Tile{best})
}

// neighborsIn returns the adjacent cells indexed by Direction, nil at a grid
// boundary. The lookup is cached per coordinate pair.
func (c *Cell) neighborsIn(m *Model) *[4]*Cell {
	at := [2]int{c.x, c.y}
	if c.neighborsCached && c.neighborsAt == at {
		return &c.neighbors
	}
	for _, dir := range AllDirections() {
		dx, dy := dir.Delta()
		c.neighbors[dir] = m.lookup(c.x+dx, c.y+dy)
	}
	c.neighborsAt = at
	c.neighborsCached = true
	return &c.neighbors
}

// GetNeighbor returns the neighboring cell in the given direction
func (c *Cell) GetNeighbor(m *Model, dir Direction) *Cell {
	if c == nil || !dir.IsValid() {
		return nil
	}
	return c.neighborsIn(m)[dir]
}

func (c *Cell) invalidateNeighbors() {
	c.neighborsCached = false
	c.neighbors = [4]*Cell{}
}
