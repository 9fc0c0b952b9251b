// Package wfc implements a wave function collapse tile generator: every cell
// of a 2D grid starts with the full tile catalog and is narrowed until it
// holds one tile whose edges match all of its neighbors.
package wfc

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"wavecollapse/pkg/engine/rng"
)

// Model owns the grid of cells and drives selection, collapse and propagation.
// It is not safe for concurrent use.
type Model struct {
	width  int
	height int

	cells       []*Cell // row-major, index = width*y + x
	uncollapsed *cellSet

	catalog    Catalog
	index      *AdjacencyIndex
	maxEntropy int

	rand *rand.Rand
	ties []*Cell

	contradictions int
}

// New creates a model of width x height cells, each seeded with a shuffled
// copy of the catalog.
func New(catalog Catalog, width, height int, opts ...Option) (*Model, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if err := catalog.validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.rand == nil {
		o.rand = rng.New(rng.TimeSeed())
	}

	m := &Model{
		width:       width,
		height:      height,
		cells:       make([]*Cell, 0, width*height),
		uncollapsed: newCellSet(width * height),
		catalog:     append(Catalog(nil), catalog...),
		index:       NewAdjacencyIndex(catalog),
		maxEntropy:  len(catalog),
		rand:        o.rand,
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := newCell(x, y, m.shuffledCatalog())
			m.cells = append(m.cells, c)
			if !c.collapsed {
				m.uncollapsed.Put(c)
			}
		}
	}

	log.WithFields(logrus.Fields{
		"width":  width,
		"height": height,
		"tiles":  len(catalog),
	}).Debug("model created")

	return m, nil
}

func (m *Model) shuffledCatalog() []*Tile {
	return rng.Shuffled(m.rand, m.catalog)
}

// Width returns the number of columns
func (m *Model) Width() int {
	return m.width
}

// Height returns the number of rows
func (m *Model) Height() int {
	return m.height
}

// MaxEntropy returns the catalog size, the entropy of an untouched cell
func (m *Model) MaxEntropy() int {
	return m.maxEntropy
}

// Catalog returns the tiles the model was built with
func (m *Model) Catalog() Catalog {
	return m.catalog
}

// Contradictions returns how many times propagation found no compatible tile
// for a neighbor and left its domain unchanged, plus how many times a freshly
// collapsed cell met a collapsed neighbor it does not fit. The second kind
// happens when a cell is settled along another propagation path before its
// source reaches it. Zero means every adjacent pair in the grid fits.
func (m *Model) Contradictions() int {
	return m.contradictions
}

// CellAt returns the cell at (x, y). It panics when the position is outside
// the grid.
func (m *Model) CellAt(x, y int) *Cell {
	if !m.IsValidPosition(x, y) {
		panic(fmt.Sprintf("wfc: cell (%d,%d) out of bounds for %dx%d grid", x, y, m.width, m.height))
	}
	return m.cells[m.width*y+x]
}

// IsValidPosition checks if a position is within grid bounds
func (m *Model) IsValidPosition(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// lookup is CellAt without the bounds panic
func (m *Model) lookup(x, y int) *Cell {
	if !m.IsValidPosition(x, y) {
		return nil
	}
	return m.cells[m.width*y+x]
}

// ForEachCell iterates over all cells row by row, bottom row first
func (m *Model) ForEachCell(fn func(x, y int, cell *Cell)) {
	for _, c := range m.cells {
		fn(c.x, c.y, c)
	}
}

// IsComplete reports whether every cell has collapsed
func (m *Model) IsComplete() bool {
	return m.uncollapsed.Len() == 0
}

// CollapsedCount returns the number of collapsed cells
func (m *Model) CollapsedCount() int {
	return len(m.cells) - m.uncollapsed.Len()
}

// PercentComplete returns the share of collapsed cells in [0, 100]
func (m *Model) PercentComplete() float64 {
	total := float64(len(m.cells))
	return float64(m.CollapsedCount()) / total * 100
}

// Solve collapses a uniformly random pending cell and propagates the result.
// It is used to seed a generation run.
func (m *Model) Solve() Matrix {
	if m.uncollapsed.Len() > 0 {
		m.processCell(rng.Pick(m.rand, m.uncollapsed.cells))
	}
	return m.RenderMatrix()
}

// Iterate collapses one of the pending cells with the fewest remaining tiles
// and propagates the result. It reports false, without doing anything, once
// the grid is complete.
func (m *Model) Iterate() (Matrix, bool) {
	next := m.findLowestEntropy()
	if next == nil {
		return nil, false
	}
	m.processCell(next)
	return m.RenderMatrix(), true
}

// Run iterates until the grid is complete. The context is checked between
// iterations.
func (m *Model) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := m.Iterate(); !ok {
			return nil
		}
	}
}

// Force pins the cell at (x, y) to the tile with the given id and propagates
// the result, as if the cell had collapsed to it.
func (m *Model) Force(x, y int, id TileID) error {
	c := m.CellAt(x, y)
	if c.collapsed {
		return fmt.Errorf("%w: (%d,%d)", ErrCollapsed, x, y)
	}
	if _, ok := m.catalog.ByID(id); !ok {
		return fmt.Errorf("%w: %w %d", ErrTileNotInDomain, ErrUnknownTile, id)
	}
	var pick *Tile
	for _, t := range c.domain {
		if t.id == id {
			pick = t
			break
		}
	}
	if pick == nil {
		return fmt.Errorf("%w: tile %d at (%d,%d)", ErrTileNotInDomain, id, x, y)
	}

	log.WithFields(logrus.Fields{"x": x, "y": y, "tile": id}).Debug("forcing cell")

	c.setDomain([]*Tile{pick})
	m.settle(c)
	return nil
}

func (m *Model) processCell(c *Cell) {
	c.collapse(m.rand)
	m.settle(c)
}

// settle records a freshly collapsed cell and ripples its constraint outward.
func (m *Model) settle(c *Cell) {
	m.uncollapsed.Remove(c)
	m.propagate(c)
}

// findLowestEntropy returns a random cell among the pending cells with the
// smallest domain, or nil when none are pending.
func (m *Model) findLowestEntropy() *Cell {
	if m.uncollapsed.Len() == 0 {
		return nil
	}
	lowest := math.MaxInt
	m.ties = m.ties[:0]
	for _, c := range m.uncollapsed.cells {
		switch {
		case c.entropy < lowest:
			lowest = c.entropy
			m.ties = append(m.ties[:0], c)
		case c.entropy == lowest:
			m.ties = append(m.ties, c)
		}
	}
	return rng.Pick(m.rand, m.ties)
}

// RenderMatrix returns the resolved tiles indexed [x][y]; pending cells are nil.
func (m *Model) RenderMatrix() Matrix {
	mx := make(Matrix, m.width)
	for x := range mx {
		col := make([]*Tile, m.height)
		for y := range col {
			col[y] = m.cells[m.width*y+x].Tile()
		}
		mx[x] = col
	}
	return mx
}

// EntropyMatrix returns every cell's entropy indexed [x][y].
func (m *Model) EntropyMatrix() [][]int {
	out := make([][]int, m.width)
	for x := range out {
		col := make([]int, m.height)
		for y := range col {
			col[y] = m.cells[m.width*y+x].entropy
		}
		out[x] = col
	}
	return out
}

// PrependEmptyRow scrolls the grid by one row: the bottom row is dropped,
// every other row moves down and a fresh row of full-catalog cells is added
// at the top, already narrowed by the row beneath it. The grid must be
// complete; otherwise ErrIncomplete is returned and nothing changes.
func (m *Model) PrependEmptyRow() error {
	if !m.IsComplete() {
		return fmt.Errorf("%w: %d cells pending", ErrIncomplete, m.uncollapsed.Len())
	}

	kept := make([]*Cell, 0, m.width*m.height)
	kept = append(kept, m.cells[m.width:]...)
	for _, c := range kept {
		c.y--
		c.invalidateNeighbors()
	}

	top := m.height - 1
	for x := 0; x < m.width; x++ {
		c := newCell(x, top, m.shuffledCatalog())
		kept = append(kept, c)
		if !c.collapsed {
			m.uncollapsed.Put(c)
		}
	}
	m.cells = kept

	if m.height > 1 {
		for x := 0; x < m.width; x++ {
			m.evaluateNeighbor(m.CellAt(x, top-1), Up)
		}
	}

	log.WithFields(logrus.Fields{
		"pending": m.uncollapsed.Len(),
	}).Debug("row appended")

	return nil
}
