// Package tiled reads Tiled tileset files (.tsj) and turns their wang sets
// into tile records for the generator.
package tiled

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"wavecollapse/pkg/engine/wfc"
)

var (
	ErrNoWangsets      = errors.New("tileset has no wang sets")
	ErrWangsetNotFound = errors.New("wang set not found")
)

// Tileset is the subset of a Tiled JSON tileset the generator needs.
type Tileset struct {
	Name       string    `json:"name"`
	Image      string    `json:"image"`
	Columns    int       `json:"columns"`
	TileCount  int       `json:"tilecount"`
	TileWidth  int       `json:"tilewidth"`
	TileHeight int       `json:"tileheight"`
	Margin     int       `json:"margin"`
	Spacing    int       `json:"spacing"`
	Tiles      []Tile    `json:"tiles"`
	Wangsets   []Wangset `json:"wangsets"`

	// Dir is the directory the tileset was loaded from; Image is relative to it.
	Dir string `json:"-"`
}

// Tile carries per-tile properties. Probability is the selection weight.
type Tile struct {
	ID          int      `json:"id"`
	Probability *float64 `json:"probability"`
}

// Wangset groups tiles by their corner/edge colors.
type Wangset struct {
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	Wangtiles []Wangtile `json:"wangtiles"`
}

// Wangtile assigns eight corner/edge colors to a tile, clockwise from the top.
type Wangtile struct {
	TileID int   `json:"tileid"`
	WangID []int `json:"wangid"`
}

// Load reads a tileset from a .tsj file
func Load(path string) (*Tileset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tileset: %w", err)
	}
	defer f.Close()

	ts, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	ts.Dir = filepath.Dir(path)
	return ts, nil
}

// Parse decodes a tileset from JSON
func Parse(r io.Reader) (*Tileset, error) {
	var ts Tileset
	if err := json.NewDecoder(r).Decode(&ts); err != nil {
		return nil, fmt.Errorf("failed to parse tileset: %w", err)
	}
	return &ts, nil
}

// ImagePath returns the path of the tileset image, or "" if there is none.
func (ts *Tileset) ImagePath() string {
	if ts.Image == "" {
		return ""
	}
	if filepath.IsAbs(ts.Image) {
		return ts.Image
	}
	return filepath.Join(ts.Dir, ts.Image)
}

// SourceRect returns the pixel rectangle of a tile inside the tileset image
func (ts *Tileset) SourceRect(id int) image.Rectangle {
	if ts.Columns <= 0 || id < 0 {
		return image.Rectangle{}
	}
	col, row := id%ts.Columns, id/ts.Columns
	x := ts.Margin + col*(ts.TileWidth+ts.Spacing)
	y := ts.Margin + row*(ts.TileHeight+ts.Spacing)
	return image.Rect(x, y, x+ts.TileWidth, y+ts.TileHeight)
}

// Wangset returns the wang set with the given name. An empty name selects the
// last wang set in the file.
func (ts *Tileset) Wangset(name string) (*Wangset, error) {
	if len(ts.Wangsets) == 0 {
		return nil, ErrNoWangsets
	}
	if name == "" {
		return &ts.Wangsets[len(ts.Wangsets)-1], nil
	}
	for i := range ts.Wangsets {
		if ts.Wangsets[i].Name == name {
			return &ts.Wangsets[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrWangsetNotFound, name)
}

// Records converts a wang set into tile records. Weights come from the
// probability of the matching entry in Tiles; tiles without one get the
// default weight.
func (ts *Tileset) Records(wangset string) ([]wfc.TileRecord, error) {
	ws, err := ts.Wangset(wangset)
	if err != nil {
		return nil, err
	}

	probabilities := make(map[int]*float64, len(ts.Tiles))
	for _, t := range ts.Tiles {
		if t.Probability != nil {
			probabilities[t.ID] = t.Probability
		}
	}

	records := make([]wfc.TileRecord, 0, len(ws.Wangtiles))
	for _, wt := range ws.Wangtiles {
		records = append(records, wfc.TileRecord{
			ID:        wfc.TileID(wt.TileID),
			EdgeCodes: wt.WangID,
			Weight:    probabilities[wt.TileID],
		})
	}
	return records, nil
}

// Catalog loads the named wang set straight into a tile catalog.
func (ts *Tileset) Catalog(wangset string) (wfc.Catalog, error) {
	records, err := ts.Records(wangset)
	if err != nil {
		return nil, err
	}
	return wfc.BuildCatalog(records)
}
