package generator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"wavecollapse/pkg/engine/wfc"
)

// checkAdjacency verifies every collapsed pair of neighbors fits
func checkAdjacency(t *testing.T, m *wfc.Model) {
	t.Helper()
	mx := m.RenderMatrix()
	for x := 0; x < m.Width(); x++ {
		for y := 0; y < m.Height(); y++ {
			tile := mx.At(x, y)
			if tile == nil {
				t.Fatalf("cell %d,%d not collapsed", x, y)
			}
			if x+1 < m.Width() && !tile.Fits(wfc.Right, mx.At(x+1, y)) {
				t.Fatalf("%v at %d,%d does not fit %v to its right", tile, x, y, mx.At(x+1, y))
			}
			if y+1 < m.Height() && !tile.Fits(wfc.Up, mx.At(x, y+1)) {
				t.Fatalf("%v at %d,%d does not fit %v above", tile, x, y, mx.At(x, y+1))
			}
		}
	}
}

func TestBuiltinsGenerateWithoutContradictions(t *testing.T) {
	for _, name := range BuiltinNames() {
		src, err := Builtin(name)
		if err != nil {
			t.Fatalf("Builtin(%q): %v", name, err)
		}
		catalog, err := src.Catalog()
		if err != nil {
			t.Fatalf("%s: Catalog: %v", name, err)
		}
		if len(catalog) != 16 {
			t.Fatalf("%s: %d tiles, want 16", name, len(catalog))
		}

		for seed := int64(1); seed <= 4; seed++ {
			m, err := wfc.New(catalog, 12, 9, wfc.WithSeed(seed))
			if err != nil {
				t.Fatalf("%s: New: %v", name, err)
			}
			if err := m.Run(t.Context()); err != nil {
				t.Fatalf("%s: Run: %v", name, err)
			}
			if m.Contradictions() != 0 {
				t.Fatalf("%s seed %d: %d contradictions", name, seed, m.Contradictions())
			}
			checkAdjacency(t, m)
		}
	}
}

func TestPipesWeights(t *testing.T) {
	catalog, err := Pipes.Catalog()
	if err != nil {
		t.Fatal(err)
	}
	tile := func(id wfc.TileID) *wfc.Tile {
		t.Helper()
		tl, ok := catalog.ByID(id)
		if !ok {
			t.Fatalf("tile %d missing", id)
		}
		return tl
	}
	if w := tile(0).Weight(); w != 6 {
		t.Errorf("empty tile weight = %v, want 6", w)
	}
	if w := tile(0b0101).Weight(); w != 3 {
		t.Errorf("vertical pipe weight = %v, want 3", w)
	}
	if w := tile(0b0011).Weight(); w != wfc.DefaultWeight {
		t.Errorf("bend weight = %v, want default", w)
	}
	// a pipe opening up must meet one opening down
	if !tile(0b0001).Fits(wfc.Up, tile(0b0100)) {
		t.Error("open top should fit open bottom")
	}
	if tile(0b0001).Fits(wfc.Up, tile(0)) {
		t.Error("open top should not fit a closed bottom")
	}
}

func TestBuiltinUnknown(t *testing.T) {
	if _, err := Builtin("lava"); err == nil {
		t.Fatal("unknown built-in accepted")
	}
	src, err := Builtin("")
	if err != nil || src != DefaultSource {
		t.Fatalf("Builtin(\"\") = %v, %v", src, err)
	}
}

func TestSourcePrefersTileset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "set.tsj")
	body := `{"name": "set", "columns": 2, "tilewidth": 8, "tileheight": 8,
	  "wangsets": [{"name": "w", "wangtiles": [
	    {"tileid": 0, "wangid": [1,0,1,0,1,0,1,0]},
	    {"tileid": 1, "wangid": [2,0,2,0,2,0,2,0]}]}]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := Source(path, "w", "corners")
	if err != nil {
		t.Fatal(err)
	}
	if src.Name() != path {
		t.Fatalf("Name = %q", src.Name())
	}
	catalog, err := src.Catalog()
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if len(catalog) != 2 {
		t.Fatalf("%d tiles, want 2", len(catalog))
	}

	missing := &TilesetSource{Path: filepath.Join(t.TempDir(), "none.tsj")}
	if _, err := missing.Catalog(); err == nil {
		t.Fatal("missing tileset accepted")
	}

	if _, err := Source("", "", "nope"); err == nil {
		t.Fatal("unknown built-in accepted")
	}
	var perr *os.PathError
	_, err = (&TilesetSource{Path: "/definitely/missing.tsj"}).Catalog()
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want a path error", err)
	}
}
