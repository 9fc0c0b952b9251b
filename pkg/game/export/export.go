// Package export rasterizes generated grids to images.
package export

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"

	"wavecollapse/pkg/game/renderer"
	"wavecollapse/pkg/game/state"
)

// DefaultCellSize is the edge length in pixels of one grid cell
const DefaultCellSize = 16

// Draw paints the frame into a new context, top row first. Collapsed cells
// are filled with their tile color; pending cells with the unresolved color.
// The caller owns the returned context and must Close it.
func Draw(f state.Frame, cellSize int) (*gg.Context, error) {
	if f.Width <= 0 || f.Height <= 0 {
		return nil, fmt.Errorf("no grid")
	}
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}

	dc := gg.NewContext(f.Width*cellSize, f.Height*cellSize)
	dc.ClearWithColor(gg.FromColor(renderer.Unresolved))

	size := float64(cellSize)
	for x := 0; x < f.Width; x++ {
		for y := 0; y < f.Height; y++ {
			tile := f.Matrix.At(x, y)
			if tile == nil {
				continue
			}
			row := f.Height - 1 - y
			dc.SetColor(renderer.TileColor(tile.ID()))
			dc.DrawRectangle(float64(x)*size, float64(row)*size, size, size)
			if err := dc.Fill(); err != nil {
				dc.Close()
				return nil, fmt.Errorf("fill cell %d,%d: %w", x, y, err)
			}
		}
	}
	return dc, nil
}

// RenderPNG writes the frame as PNG to w
func RenderPNG(w io.Writer, f state.Frame, cellSize int) error {
	dc, err := Draw(f, cellSize)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

// SavePNG writes the frame as PNG to path
func SavePNG(path string, f state.Frame, cellSize int) error {
	dc, err := Draw(f, cellSize)
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.SavePNG(path)
}
