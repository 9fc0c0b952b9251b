// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"wavecollapse/pkg/engine/wfc"
	"wavecollapse/pkg/game/state"
)

const mapDumpFilename = "map.txt"

// cellSymbol returns the glyph written for an uncollapsed cell
func cellSymbol(entropy int) string {
	if entropy <= 0 {
		return "!"
	}
	return "?"
}

// writeTileGrid writes tile ids, top row first. Pending cells show as ?.
func writeTileGrid(w io.Writer, f state.Frame, width int) {
	for y := f.Height - 1; y >= 0; y-- {
		for x := 0; x < f.Width; x++ {
			if id, ok := f.Matrix.ID(x, y); ok {
				fmt.Fprintf(w, "%*d", width, id)
				continue
			}
			fmt.Fprintf(w, "%*s", width, cellSymbol(entropyAt(f, x, y)))
		}
		fmt.Fprintln(w)
	}
}

// writeEntropyGrid writes the domain size of every cell, top row first
func writeEntropyGrid(w io.Writer, f state.Frame, width int) {
	for y := f.Height - 1; y >= 0; y-- {
		for x := 0; x < f.Width; x++ {
			fmt.Fprintf(w, "%*d", width, entropyAt(f, x, y))
		}
		fmt.Fprintln(w)
	}
}

func entropyAt(f state.Frame, x, y int) int {
	if x < len(f.Entropy) && y < len(f.Entropy[x]) {
		return f.Entropy[x][y]
	}
	return 0
}

// DumpMatrix writes a debug dump of a frame to w: metadata, legend, the tile
// id grid, the entropy grid and a histogram of placed tiles.
// Format is human-readable (sections, key: value, consistent structure).
func DumpMatrix(w io.Writer, f state.Frame) error {
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("no grid")
	}

	counts := make(map[wfc.TileID]int)
	collapsed := 0
	maxID := wfc.TileID(0)
	for x := 0; x < f.Width; x++ {
		for y := 0; y < f.Height; y++ {
			if id, ok := f.Matrix.ID(x, y); ok {
				counts[id]++
				collapsed++
				maxID = max(maxID, id)
			}
		}
	}
	width := len(fmt.Sprint(max(int(maxID), f.MaxEntropy))) + 1

	fmt.Fprintln(w, "=== WFC DUMP (tile layout, entropy) ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "run_id: %s\n", f.RunID)
	fmt.Fprintf(w, "seed: %d\n", f.Seed)
	fmt.Fprintf(w, "grid_width: %d\n", f.Width)
	fmt.Fprintf(w, "grid_height: %d\n", f.Height)
	fmt.Fprintf(w, "coordinate_system: x,y (0-based, y=0 is the bottom row, printed last)\n")
	fmt.Fprintf(w, "max_entropy: %d\n", f.MaxEntropy)
	fmt.Fprintf(w, "collapsed: %d/%d\n", collapsed, f.Width*f.Height)
	fmt.Fprintf(w, "complete: %t\n", f.Complete)
	fmt.Fprintf(w, "elapsed: %s\n", f.Elapsed)
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Legend ---")
	fmt.Fprintln(w, "N = collapsed tile id")
	fmt.Fprintln(w, "? = pending cell")
	fmt.Fprintln(w, "! = pending cell with an empty domain")
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Tiles ---")
	writeTileGrid(w, f, width)
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Entropy ---")
	writeEntropyGrid(w, f, width)
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "--- Histogram ---")
	ids := make([]wfc.TileID, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fmt.Fprintf(w, "tile %d: %d\n", id, counts[id])
	}
	if len(ids) == 0 {
		fmt.Fprintln(w, "(none)")
	}

	return nil
}

// DumpMatrixToFile writes DumpMatrix output to path (map.txt when empty) and
// returns the absolute path written.
func DumpMatrixToFile(f state.Frame, path string) (string, error) {
	if path == "" {
		path = mapDumpFilename
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	out, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if err := DumpMatrix(out, f); err != nil {
		return "", err
	}
	return absPath, out.Close()
}
