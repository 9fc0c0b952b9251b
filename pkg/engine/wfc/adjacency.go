package wfc

// AdjacencyIndex maps, per direction, an edge signature to the tiles whose
// opposite edge carries that signature. It is built once and only read after.
type AdjacencyIndex struct {
	tables [4]map[Signature][]*Tile
}

// NewAdjacencyIndex indexes every tile of the catalog in all four directions.
func NewAdjacencyIndex(catalog Catalog) *AdjacencyIndex {
	idx := &AdjacencyIndex{}
	for _, dir := range AllDirections() {
		table := make(map[Signature][]*Tile)
		opposite := dir.Opposite()
		for _, t := range catalog {
			key := t.Signature(opposite)
			table[key] = append(table[key], t)
		}
		idx.tables[dir] = table
	}
	return idx
}

// CompatibleTiles returns the tiles that may be placed in direction dir of a
// tile whose dir-side signature is sig. The returned slice must not be modified.
func (a *AdjacencyIndex) CompatibleTiles(dir Direction, sig Signature) []*Tile {
	if !dir.IsValid() {
		return nil
	}
	return a.tables[dir][sig]
}
