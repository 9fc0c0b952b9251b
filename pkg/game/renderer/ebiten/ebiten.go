//go:build ebiten

package ebiten

import (
	"fmt"
	_ "image/png" // tileset images
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"

	engineinput "wavecollapse/pkg/engine/input"
	"wavecollapse/pkg/game/gameplay"
	"wavecollapse/pkg/game/renderer"
	"wavecollapse/pkg/game/state"
)

// EbitenRenderer drives a session from the Ebiten game loop and draws it
type EbitenRenderer struct {
	opts Options

	session      *state.Session
	sessionMutex sync.Mutex

	snapshot      state.Frame
	snapshotMutex sync.RWMutex

	tiles *ebiten.Image
	keys  []ebiten.Key
}

// New constructs a renderer for the provided session
func New(s *state.Session, opts Options) *EbitenRenderer {
	e := &EbitenRenderer{
		opts:    opts.withDefaults(),
		session: s,
	}
	e.snapshot = s.Frame()
	return e
}

// Init sets up the window and loads the tileset image
func (e *EbitenRenderer) Init() {
	w, h := e.screenSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(e.opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(e.opts.TPS)

	if e.opts.Tileset == nil || e.opts.Tileset.ImagePath() == "" {
		return
	}
	img, _, err := ebitenutil.NewImageFromFile(e.opts.Tileset.ImagePath())
	if err != nil {
		logrus.WithError(err).Warn("tileset image not loaded, drawing colored cells")
		return
	}
	e.tiles = img
}

// Clear is a no-op; Draw repaints the whole screen
func (e *EbitenRenderer) Clear() {}

// RenderFrame stores a snapshot for the next Draw call
func (e *EbitenRenderer) RenderFrame(f state.Frame) {
	e.snapshotMutex.Lock()
	e.snapshot = f
	e.snapshotMutex.Unlock()
}

// GetViewportSize returns how many cells fit the window
func (e *EbitenRenderer) GetViewportSize() (rows, cols int) {
	w, h := ebiten.WindowSize()
	return max((h-statusHeight)/e.opts.CellSize, 1), max(w/e.opts.CellSize, 1)
}

// Run opens the window and blocks until it closes
func (e *EbitenRenderer) Run() error {
	e.Init()
	return ebiten.RunGame(e)
}

// Update handles keys and advances the session by one iteration
func (e *EbitenRenderer) Update() error {
	e.sessionMutex.Lock()
	defer e.sessionMutex.Unlock()

	e.keys = inpututil.AppendJustPressedKeys(e.keys[:0])
	for _, k := range e.keys {
		if gameplay.ProcessKey(e.session, engineinput.Lookup(k.String())) {
			return ebiten.Termination
		}
	}

	e.session.Step()
	e.RenderFrame(e.session.Frame())
	return nil
}

// Draw renders the latest snapshot
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	e.snapshotMutex.RLock()
	f := e.snapshot
	e.snapshotMutex.RUnlock()

	screen.Fill(renderer.Unresolved)
	size := float32(e.opts.CellSize)

	for x := 0; x < f.Width; x++ {
		for y := 0; y < f.Height; y++ {
			px := float32(x) * size
			py := float32(f.Height-1-y) * size

			if tile := f.Matrix.At(x, y); tile != nil {
				if !e.drawTile(screen, int(tile.ID()), px, py) {
					vector.DrawFilledRect(screen, px, py, size, size, renderer.TileColor(tile.ID()), false)
				}
				continue
			}

			if e.opts.ShowEntropy && x < len(f.Entropy) && y < len(f.Entropy[x]) {
				glyph := string(renderer.EntropyGlyph(f.Entropy[x][y]))
				ebitenutil.DebugPrintAt(screen, glyph, int(px)+2, int(py))
			}
		}
	}

	e.drawStatus(screen, f)
}

// drawTile draws a tile from the tileset image and reports whether it could
func (e *EbitenRenderer) drawTile(screen *ebiten.Image, id int, px, py float32) bool {
	if e.tiles == nil {
		return false
	}
	ts := e.opts.Tileset
	src := ts.SourceRect(id)
	if src.Empty() || !src.In(e.tiles.Bounds()) {
		return false
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(e.opts.CellSize)/float64(ts.TileWidth), float64(e.opts.CellSize)/float64(ts.TileHeight))
	op.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(e.tiles.SubImage(src).(*ebiten.Image), op)
	return true
}

func (e *EbitenRenderer) drawStatus(screen *ebiten.Image, f state.Frame) {
	status := gotext.Get("STATUS_GENERATING")
	if f.Complete {
		status = gotext.Get("STATUS_GENERATED")
	}
	line := fmt.Sprintf("%s %5.1f%%  seed %d  %s", status, f.Percent, f.Seed, f.Elapsed.Round(time.Millisecond))
	if f.Paused {
		line += "  " + gotext.Get("PAUSED")
	}
	top := f.Height * e.opts.CellSize
	ebitenutil.DebugPrintAt(screen, line, 4, top+2)

	if n := len(f.Messages); n > 0 {
		ebitenutil.DebugPrintAt(screen, f.Messages[n-1], 4, top+16)
	}
}

// Layout returns the logical screen size
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return e.screenSize()
}

func (e *EbitenRenderer) screenSize() (int, int) {
	e.snapshotMutex.RLock()
	defer e.snapshotMutex.RUnlock()
	return e.opts.screenSize(e.snapshot.Width, e.snapshot.Height)
}
