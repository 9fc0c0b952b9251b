// Package generator supplies the tile catalogs a run generates from: the
// built-in demo sets and Tiled tilesets.
package generator

import (
	"fmt"
	"sort"

	"wavecollapse/pkg/engine/wfc"
	"wavecollapse/pkg/game/tiled"
)

// CatalogSource is an interface for tile catalog providers
type CatalogSource interface {
	Catalog() (wfc.Catalog, error)
	Name() string
}

// Available built-in sources
var (
	Pipes   = &PipesSource{}
	Corners = &CornersSource{}
)

// DefaultSource is the catalog used when nothing else is configured
var DefaultSource CatalogSource = Pipes

var builtins = map[string]CatalogSource{
	Pipes.Name():   Pipes,
	Corners.Name(): Corners,
}

// Builtin returns the built-in source with the given name
func Builtin(name string) (CatalogSource, error) {
	if name == "" {
		return DefaultSource, nil
	}
	src, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown built-in tile set %q (have %v)", name, BuiltinNames())
	}
	return src, nil
}

// BuiltinNames lists the built-in source names in order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TilesetSource reads a catalog from a wang set of a Tiled tileset file
type TilesetSource struct {
	Path    string
	Wangset string

	tileset *tiled.Tileset
}

// Name returns the tileset path
func (s *TilesetSource) Name() string {
	return s.Path
}

// Tileset loads the tileset once and returns it
func (s *TilesetSource) Tileset() (*tiled.Tileset, error) {
	if s.tileset != nil {
		return s.tileset, nil
	}
	ts, err := tiled.Load(s.Path)
	if err != nil {
		return nil, err
	}
	s.tileset = ts
	return ts, nil
}

// Catalog builds the catalog from the configured wang set
func (s *TilesetSource) Catalog() (wfc.Catalog, error) {
	ts, err := s.Tileset()
	if err != nil {
		return nil, err
	}
	return ts.Catalog(s.Wangset)
}

// Source picks a Tiled tileset when path is set, otherwise a built-in set
func Source(path, wangset, builtin string) (CatalogSource, error) {
	if path != "" {
		return &TilesetSource{Path: path, Wangset: wangset}, nil
	}
	return Builtin(builtin)
}
