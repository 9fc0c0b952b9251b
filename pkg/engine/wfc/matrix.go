package wfc

// Matrix is a width x height snapshot of resolved tiles indexed [x][y].
// Unresolved positions hold nil.
type Matrix [][]*Tile

// Width returns the number of columns
func (mx Matrix) Width() int {
	return len(mx)
}

// Height returns the number of entries per column
func (mx Matrix) Height() int {
	if len(mx) == 0 {
		return 0
	}
	return len(mx[0])
}

// At returns the tile at (x, y), or nil when unresolved
func (mx Matrix) At(x, y int) *Tile {
	return mx[x][y]
}

// ID returns the tile id at (x, y) and whether the position is resolved
func (mx Matrix) ID(x, y int) (TileID, bool) {
	t := mx[x][y]
	if t == nil {
		return 0, false
	}
	return t.id, true
}

// Equal reports whether both matrices hold the same tiles at the same positions.
func (mx Matrix) Equal(other Matrix) bool {
	if mx.Width() != other.Width() || mx.Height() != other.Height() {
		return false
	}
	for x := range mx {
		for y := range mx[x] {
			if mx[x][y] != other[x][y] {
				return false
			}
		}
	}
	return true
}
