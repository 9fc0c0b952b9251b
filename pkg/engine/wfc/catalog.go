package wfc

import "fmt"

// TileRecord is the input handed over by a tileset loader. A nil Weight means
// DefaultWeight.
type TileRecord struct {
	ID        TileID
	EdgeCodes []int
	Weight    *float64
}

// Catalog is the read-only set of tiles shared by every cell of a model.
type Catalog []*Tile

// BuildCatalog creates one tile per record. Records with the wrong number of
// edge codes or a non-positive weight are rejected with ErrMalformedTileData.
func BuildCatalog(records []TileRecord) (Catalog, error) {
	catalog := make(Catalog, 0, len(records))
	for i, rec := range records {
		weight := DefaultWeight
		if rec.Weight != nil {
			weight = *rec.Weight
		}
		t, err := NewTile(rec.ID, rec.EdgeCodes, weight)
		if err != nil {
			return nil, fmt.Errorf("tile record %d: %w", i, err)
		}
		catalog = append(catalog, t)
	}
	return catalog, nil
}

// ByID returns the first tile with the given id.
func (c Catalog) ByID(id TileID) (*Tile, bool) {
	for _, t := range c {
		if t.id == id {
			return t, true
		}
	}
	return nil, false
}

// validate rejects nil entries and tiles listed more than once, since a
// domain must never hold the same tile twice.
func (c Catalog) validate() error {
	if len(c) == 0 {
		return ErrEmptyCatalog
	}
	seen := make(map[*Tile]int, len(c))
	for i, t := range c {
		if t == nil {
			return fmt.Errorf("%w: catalog entry %d is nil", ErrMalformedTileData, i)
		}
		if j, dup := seen[t]; dup {
			return fmt.Errorf("%w: catalog entries %d and %d are the same tile", ErrMalformedTileData, j, i)
		}
		seen[t] = i
	}
	return nil
}
