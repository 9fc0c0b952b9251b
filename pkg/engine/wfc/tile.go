package wfc

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

// EdgeCodeCount is the number of corner/edge codes describing a tile border,
// clockwise from the top edge: top, top-right, right, bottom-right, bottom,
// bottom-left, left, top-left.
const EdgeCodeCount = 8

// DefaultWeight is used when a tile record carries no weight.
const DefaultWeight = 1.0

// TileID identifies a tile in its source tileset.
type TileID int

// Signature summarizes the border pattern on one side of a tile. Two tiles
// fit together when the facing signatures are equal.
type Signature uint64

// Tile is an immutable tile definition. Tiles are compared by identity, so
// two tiles with equal fields are still distinct candidates.
type Tile struct {
	id     TileID
	weight float64
	edges  [4]Signature
}

// NewTile derives the four edge signatures from edgeCodes. The weight must be
// a finite positive number.
func NewTile(id TileID, edgeCodes []int, weight float64) (*Tile, error) {
	if len(edgeCodes) != EdgeCodeCount {
		return nil, fmt.Errorf("%w: tile %d has %d edge codes, want %d",
			ErrMalformedTileData, id, len(edgeCodes), EdgeCodeCount)
	}
	if weight <= 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return nil, fmt.Errorf("%w: tile %d has weight %v, want > 0", ErrMalformedTileData, id, weight)
	}

	t := &Tile{id: id, weight: weight}
	for _, dir := range AllDirections() {
		t.edges[dir] = edgeSignature(edgeCodes, edgeIndexes[dir])
	}
	return t, nil
}

func edgeSignature(codes []int, indexes [3]int) Signature {
	var buf [3 * 8]byte
	for i, idx := range indexes {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(int64(codes[idx])))
	}
	return Signature(xxhash.Sum64(buf[:]))
}

// ID returns the tile's identifier
func (t *Tile) ID() TileID {
	return t.id
}

// Weight returns the selection weight
func (t *Tile) Weight() float64 {
	return t.weight
}

// Signature returns the edge signature on the given side
func (t *Tile) Signature(dir Direction) Signature {
	return t.edges[dir]
}

// Fits reports whether other may sit next to t in direction dir.
func (t *Tile) Fits(dir Direction, other *Tile) bool {
	return t.Signature(dir) == other.Signature(dir.Opposite())
}

func (t *Tile) String() string {
	return fmt.Sprintf("tile#%d", t.id)
}
