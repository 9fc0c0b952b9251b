package generator

import (
	"wavecollapse/pkg/engine/wfc"
)

// Edge code positions around a tile, clockwise from the top middle
const (
	top = iota
	topRight
	right
	bottomRight
	bottom
	bottomLeft
	left
	topLeft
)

// PipesSource generates every combination of pipe openings on the four sides
type PipesSource struct{}

// Name returns "pipes"
func (p *PipesSource) Name() string {
	return "pipes"
}

// Catalog returns 16 tiles. Tile id bits mark open sides: 1 up, 2 right,
// 4 down, 8 left. Empty and straight tiles are weighted up.
func (p *PipesSource) Catalog() (wfc.Catalog, error) {
	records := make([]wfc.TileRecord, 0, 16)
	for id := range 16 {
		codes := make([]int, wfc.EdgeCodeCount)
		codes[top] = id & 1
		codes[right] = id >> 1 & 1
		codes[bottom] = id >> 2 & 1
		codes[left] = id >> 3 & 1

		weight := 1.0
		switch id {
		case 0:
			weight = 6
		case 0b0101, 0b1010:
			weight = 3
		}
		records = append(records, wfc.TileRecord{ID: wfc.TileID(id), EdgeCodes: codes, Weight: &weight})
	}
	return wfc.BuildCatalog(records)
}

// CornersSource generates every combination of two terrains on the four corners
type CornersSource struct{}

// Name returns "corners"
func (c *CornersSource) Name() string {
	return "corners"
}

// Catalog returns 16 tiles. Tile id bits mark raised corners: 1 top left,
// 2 top right, 4 bottom right, 8 bottom left. Flat tiles are weighted up.
func (c *CornersSource) Catalog() (wfc.Catalog, error) {
	records := make([]wfc.TileRecord, 0, 16)
	for id := range 16 {
		codes := make([]int, wfc.EdgeCodeCount)
		codes[topLeft] = id & 1
		codes[topRight] = id >> 1 & 1
		codes[bottomRight] = id >> 2 & 1
		codes[bottomLeft] = id >> 3 & 1

		var weight *float64
		if id == 0 || id == 15 {
			w := 4.0
			weight = &w
		}
		records = append(records, wfc.TileRecord{ID: wfc.TileID(id), EdgeCodes: codes, Weight: weight})
	}
	return wfc.BuildCatalog(records)
}
