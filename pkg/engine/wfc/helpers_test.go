package wfc

import "testing"

// edgeCodes builds the 8 corner/edge codes for a tile whose corners are all 0
// and whose four sides carry the given codes.
func edgeCodes(up, right, down, left int) []int {
	return []int{up, 0, right, 0, down, 0, left, 0}
}

func mustTile(t *testing.T, id TileID, codes []int) *Tile {
	t.Helper()
	tile, err := NewTile(id, codes, DefaultWeight)
	if err != nil {
		t.Fatalf("NewTile(%d): %v", id, err)
	}
	return tile
}

func sideTile(t *testing.T, id TileID, up, right, down, left int) *Tile {
	t.Helper()
	return mustTile(t, id, edgeCodes(up, right, down, left))
}

// wildcardCatalog returns n tiles that fit each other on every side.
func wildcardCatalog(t *testing.T, n int) Catalog {
	t.Helper()
	c := make(Catalog, 0, n)
	for i := 0; i < n; i++ {
		c = append(c, mustTile(t, TileID(i), make([]int, EdgeCodeCount)))
	}
	return c
}

// twoColorCatalog returns all 16 tiles whose four sides are independently
// colored 0 or 1. Any partial layout of it can be completed, so generation
// never hits a contradiction.
func twoColorCatalog(t *testing.T) Catalog {
	t.Helper()
	c := make(Catalog, 0, 16)
	for mask := 0; mask < 16; mask++ {
		c = append(c, sideTile(t, TileID(mask), mask&1, mask>>1&1, mask>>2&1, mask>>3&1))
	}
	return c
}

func newModel(t *testing.T, c Catalog, w, h int, seed int64) *Model {
	t.Helper()
	m, err := New(c, w, h, WithSeed(seed))
	if err != nil {
		t.Fatalf("New(%dx%d): %v", w, h, err)
	}
	return m
}

// checkInvariants verifies the derived cell state and the uncollapsed set.
func checkInvariants(t *testing.T, m *Model) {
	t.Helper()
	pending := 0
	m.ForEachCell(func(x, y int, c *Cell) {
		if c.Entropy() != len(c.domain) {
			t.Errorf("cell (%d,%d) entropy %d != domain size %d", x, y, c.Entropy(), len(c.domain))
		}
		if c.Collapsed() != (c.Entropy() == 1) {
			t.Errorf("cell (%d,%d) collapsed=%v with entropy %d", x, y, c.Collapsed(), c.Entropy())
		}
		if c.Entropy() == 0 {
			t.Errorf("cell (%d,%d) has an empty domain", x, y)
		}
		if m.uncollapsed.Has(c) == c.Collapsed() {
			t.Errorf("cell (%d,%d) collapsed=%v but tracked as pending=%v", x, y, c.Collapsed(), m.uncollapsed.Has(c))
		}
		if !c.Collapsed() {
			pending++
		}
	})
	if pending != m.uncollapsed.Len() {
		t.Errorf("uncollapsed set has %d cells, want %d", m.uncollapsed.Len(), pending)
	}
}

// checkAdjacency verifies that adjacent collapsed cells share edge signatures.
func checkAdjacency(t *testing.T, m *Model) {
	t.Helper()
	m.ForEachCell(func(x, y int, c *Cell) {
		if !c.Collapsed() {
			return
		}
		for _, dir := range []Direction{Up, Right} {
			n := c.GetNeighbor(m, dir)
			if n == nil || !n.Collapsed() {
				continue
			}
			if !c.Tile().Fits(dir, n.Tile()) {
				t.Errorf("cell (%d,%d) %v does not fit %v neighbor %v", x, y, c.Tile(), dir, n.Tile())
			}
		}
	})
}
