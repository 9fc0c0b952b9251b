package wfc

import (
	"context"
	"errors"
	"testing"
)

func TestNewRejectsInvalidInput(t *testing.T) {
	catalog := wildcardCatalog(t, 3)
	tests := []struct {
		name    string
		catalog Catalog
		w, h    int
		want    error
	}{
		{"zero width", catalog, 0, 4, ErrInvalidDimensions},
		{"zero height", catalog, 4, 0, ErrInvalidDimensions},
		{"negative", catalog, -1, 4, ErrInvalidDimensions},
		{"empty catalog", nil, 4, 4, ErrEmptyCatalog},
		{"nil tile", Catalog{catalog[0], nil}, 4, 4, ErrMalformedTileData},
		{"duplicate tile", Catalog{catalog[0], catalog[1], catalog[0]}, 4, 4, ErrMalformedTileData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.catalog, tt.w, tt.h); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewModelState(t *testing.T) {
	m := newModel(t, wildcardCatalog(t, 3), 320, 240, 1)
	if m.Width() != 320 || m.Height() != 240 {
		t.Fatalf("size = %dx%d", m.Width(), m.Height())
	}
	if len(m.cells) != 320*240 {
		t.Fatalf("cells = %d", len(m.cells))
	}
	if m.MaxEntropy() != 3 {
		t.Fatalf("max entropy = %d", m.MaxEntropy())
	}
	if m.PercentComplete() != 0 || m.IsComplete() {
		t.Fatalf("fresh model percent %v complete %v", m.PercentComplete(), m.IsComplete())
	}
	if c := m.CellAt(7, 9); c.X() != 7 || c.Y() != 9 {
		t.Fatalf("CellAt(7,9) is at (%d,%d)", c.X(), c.Y())
	}
	if mx := m.Solve(); mx == nil {
		t.Fatal("Solve returned nil")
	}
	if _, ok := m.Iterate(); !ok {
		t.Fatal("Iterate reported no work on a fresh grid")
	}
	checkInvariants(t, m)
}

func TestCellAtOutOfBoundsPanics(t *testing.T) {
	m := newModel(t, wildcardCatalog(t, 2), 3, 3, 1)
	for _, p := range [][2]int{{-1, 0}, {3, 0}, {0, 3}, {0, -1}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("CellAt(%d,%d) did not panic", p[0], p[1])
				}
			}()
			m.CellAt(p[0], p[1])
		}()
	}
}

func TestSingleTileCatalogStartsComplete(t *testing.T) {
	m := newModel(t, wildcardCatalog(t, 1), 4, 3, 1)
	if !m.IsComplete() || m.PercentComplete() != 100 {
		t.Fatalf("complete %v percent %v", m.IsComplete(), m.PercentComplete())
	}
	if _, ok := m.Iterate(); ok {
		t.Fatal("Iterate did work on a complete grid")
	}
}

// Wildcard tiles never eliminate each other, so each call collapses exactly
// one cell and every pending cell keeps the full catalog.
func TestWildcardGridCollapsesOneCellPerStep(t *testing.T) {
	m := newModel(t, wildcardCatalog(t, 3), 2, 2, 3)

	steps := []func(){
		func() { m.Solve() },
		func() { m.Iterate() },
		func() { m.Iterate() },
		func() { m.Iterate() },
	}
	for i, step := range steps {
		step()
		if got := m.CollapsedCount(); got != i+1 {
			t.Fatalf("after step %d collapsed = %d", i+1, got)
		}
		m.ForEachCell(func(x, y int, c *Cell) {
			if !c.Collapsed() && c.Entropy() != 3 {
				t.Errorf("step %d: pending cell (%d,%d) narrowed to %d", i+1, x, y, c.Entropy())
			}
		})
		checkInvariants(t, m)
	}
	if !m.IsComplete() {
		t.Fatal("grid not complete after 4 steps")
	}
	if m.Contradictions() != 0 {
		t.Fatalf("contradictions = %d", m.Contradictions())
	}
}

func TestPrependEmptyRowScrolls(t *testing.T) {
	m := newModel(t, wildcardCatalog(t, 3), 2, 2, 11)
	m.Solve()
	m.Iterate()
	m.Iterate()
	m.Iterate()
	if !m.IsComplete() {
		t.Fatal("grid not complete")
	}

	oldTop := [2]*Cell{m.CellAt(0, 1), m.CellAt(1, 1)}
	oldBottom := [2]*Cell{m.CellAt(0, 0), m.CellAt(1, 0)}

	if err := m.PrependEmptyRow(); err != nil {
		t.Fatalf("PrependEmptyRow: %v", err)
	}

	if m.Width() != 2 || m.Height() != 2 || len(m.cells) != 4 {
		t.Fatalf("size = %dx%d with %d cells", m.Width(), m.Height(), len(m.cells))
	}
	for x := 0; x < 2; x++ {
		if m.CellAt(x, 0) != oldTop[x] {
			t.Errorf("row 0 col %d is not the previous top row", x)
		}
		if !m.CellAt(x, 0).Collapsed() {
			t.Errorf("kept cell %d is not collapsed", x)
		}
		fresh := m.CellAt(x, 1)
		if fresh == oldBottom[x] || fresh == oldTop[x] {
			t.Errorf("row 1 col %d was not replaced", x)
		}
		if fresh.Collapsed() || fresh.Entropy() != 3 {
			t.Errorf("new cell %d entropy %d collapsed %v", x, fresh.Entropy(), fresh.Collapsed())
		}
	}
	m.ForEachCell(func(x, y int, c *Cell) {
		if c == oldBottom[0] || c == oldBottom[1] {
			t.Errorf("dropped cell still reachable at (%d,%d)", x, y)
		}
	})
	if m.MaxEntropy() != 3 || m.PercentComplete() != 50 {
		t.Fatalf("max entropy %d percent %v", m.MaxEntropy(), m.PercentComplete())
	}
	checkInvariants(t, m)

	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !m.IsComplete() {
		t.Fatal("scrolled grid did not complete")
	}
}

func TestPrependEmptyRowNarrowsNewRow(t *testing.T) {
	a := sideTile(t, 1, 1, 0, 0, 0)
	b := sideTile(t, 2, 2, 0, 1, 0)
	c := sideTile(t, 3, 3, 0, 2, 0)
	m := newModel(t, Catalog{a, b, c}, 1, 2, 1)
	if err := m.Force(0, 1, a.ID()); err != nil {
		t.Fatalf("Force: %v", err)
	}
	m.Run(context.Background())
	if !m.IsComplete() {
		t.Fatal("grid not complete")
	}

	if err := m.PrependEmptyRow(); err != nil {
		t.Fatalf("PrependEmptyRow: %v", err)
	}
	// a's up edge is 1, only b has a bottom edge of 1
	if got := m.CellAt(0, 1); !got.Collapsed() || got.Tile() != b {
		t.Fatalf("new cell = %v (entropy %d), want %v", got.Tile(), got.Entropy(), b)
	}
	if !m.IsComplete() {
		t.Fatal("new row collapsed by propagation is still pending")
	}
	checkInvariants(t, m)
}

func TestPrependEmptyRowRejectsIncompleteGrid(t *testing.T) {
	m := newModel(t, wildcardCatalog(t, 3), 3, 3, 1)
	m.Solve()
	before := m.RenderMatrix()
	if err := m.PrependEmptyRow(); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("err = %v, want ErrIncomplete", err)
	}
	if !m.RenderMatrix().Equal(before) {
		t.Fatal("rejected scroll changed the grid")
	}
}

func TestPropagationNarrowsCompatibleNeighbor(t *testing.T) {
	a := sideTile(t, 1, 1, 0, 2, 0)
	b := sideTile(t, 2, 2, 0, 4, 0)
	m := newModel(t, Catalog{a, b}, 1, 2, 1)

	if err := m.Force(0, 1, a.ID()); err != nil {
		t.Fatalf("Force: %v", err)
	}
	bottom := m.CellAt(0, 0)
	if !bottom.Collapsed() || bottom.Tile() != b {
		t.Fatalf("bottom = %v (entropy %d), want %v", bottom.Tile(), bottom.Entropy(), b)
	}
	if !m.IsComplete() {
		t.Fatal("collapsed neighbor still pending")
	}
	checkAdjacency(t, m)
}

// When no tile fits, the neighbor keeps its domain and generation carries on.
func TestPropagationKeepsDomainOnContradiction(t *testing.T) {
	a := sideTile(t, 1, 1, 0, 2, 0)
	b := sideTile(t, 2, 3, 0, 4, 0)
	m := newModel(t, Catalog{a, b}, 1, 2, 1)

	if err := m.Force(0, 1, a.ID()); err != nil {
		t.Fatalf("Force: %v", err)
	}
	bottom := m.CellAt(0, 0)
	if bottom.Entropy() != 2 || bottom.Collapsed() {
		t.Fatalf("bottom entropy %d, want the untouched domain of 2", bottom.Entropy())
	}
	if m.Contradictions() != 1 {
		t.Fatalf("contradictions = %d, want 1", m.Contradictions())
	}
	checkInvariants(t, m)

	if _, ok := m.Iterate(); !ok {
		t.Fatal("Iterate did nothing")
	}
	if !m.IsComplete() {
		t.Fatal("grid not complete")
	}
	// neither tile fits below a, so the final collapse is a mismatch too
	if m.Contradictions() != 2 {
		t.Fatalf("contradictions after completion = %d, want 2", m.Contradictions())
	}
}

// A cell that collapses next to a collapsed neighbor it does not fit is
// counted, even though no domain was left empty.
func TestContradictionsCountMismatchedCollapsedNeighbors(t *testing.T) {
	a := sideTile(t, 1, 1, 0, 2, 0)
	b := sideTile(t, 2, 3, 0, 4, 0)
	m := newModel(t, Catalog{a, b}, 1, 3, 1)

	if err := m.Force(0, 2, a.ID()); err != nil {
		t.Fatalf("Force top: %v", err)
	}
	before := m.Contradictions()
	if err := m.Force(0, 1, b.ID()); err != nil {
		t.Fatalf("Force middle: %v", err)
	}
	if got := m.Contradictions(); got <= before {
		t.Fatalf("contradictions = %d after forcing a mismatch, was %d", got, before)
	}
	checkInvariants(t, m)
}

// Consistent output leaves the counter at zero and every pair fitting.
func TestContradictionsZeroMeansConsistent(t *testing.T) {
	catalog := twoColorCatalog(t)
	for seed := int64(1); seed <= 6; seed++ {
		m := newModel(t, catalog, 6, 5, seed)
		m.Solve()
		for !m.IsComplete() {
			m.Iterate()
		}
		if m.Contradictions() != 0 {
			t.Fatalf("seed %d: contradictions = %d", seed, m.Contradictions())
		}
		checkAdjacency(t, m)
	}
}

// Narrowing ripples through cells that do not collapse themselves.
func TestPropagationRipplesThroughPendingCells(t *testing.T) {
	catalog := Catalog{
		sideTile(t, 1, 0, 0, 1, 0),
		sideTile(t, 2, 1, 0, 2, 0),
		sideTile(t, 3, 1, 0, 3, 0),
		sideTile(t, 4, 2, 0, 0, 0),
		sideTile(t, 5, 3, 0, 0, 0),
		sideTile(t, 6, 5, 0, 5, 0),
	}
	m := newModel(t, catalog, 1, 3, 1)

	if err := m.Force(0, 2, 1); err != nil {
		t.Fatalf("Force: %v", err)
	}
	if got := m.CellAt(0, 1).Entropy(); got != 2 {
		t.Fatalf("middle entropy = %d, want 2", got)
	}
	bottom := m.CellAt(0, 0)
	if bottom.Entropy() != 2 || !bottom.Has(catalog[3]) || !bottom.Has(catalog[4]) {
		t.Fatalf("bottom domain = %v, want tiles 4 and 5", bottom.Domain())
	}
	checkInvariants(t, m)
}

func TestForceErrors(t *testing.T) {
	a := sideTile(t, 1, 1, 0, 2, 0)
	b := sideTile(t, 2, 2, 0, 1, 0)
	m := newModel(t, Catalog{a, b}, 1, 3, 1)

	if err := m.Force(0, 0, 99); !errors.Is(err, ErrTileNotInDomain) || !errors.Is(err, ErrUnknownTile) {
		t.Fatalf("unknown tile: err = %v", err)
	}
	if err := m.Force(0, 2, a.ID()); err != nil {
		t.Fatalf("Force: %v", err)
	}
	if err := m.Force(0, 2, b.ID()); !errors.Is(err, ErrCollapsed) {
		t.Fatalf("collapsed cell: err = %v", err)
	}
	// the middle cell can only hold b now
	if err := m.Force(0, 1, a.ID()); !errors.Is(err, ErrCollapsed) && !errors.Is(err, ErrTileNotInDomain) {
		t.Fatalf("narrowed cell: err = %v", err)
	}
}

func TestGenerationProperties(t *testing.T) {
	catalog := twoColorCatalog(t)
	for seed := int64(1); seed <= 8; seed++ {
		m := newModel(t, catalog, 12, 9, seed)
		first := m.Solve()
		if first.Width() != 12 || first.Height() != 9 {
			t.Fatalf("matrix is %dx%d", first.Width(), first.Height())
		}

		last := m.PercentComplete()
		for {
			mx, ok := m.Iterate()
			if !ok {
				break
			}
			if mx.Width() != 12 || mx.Height() != 9 {
				t.Fatalf("matrix is %dx%d", mx.Width(), mx.Height())
			}
			p := m.PercentComplete()
			if p < last || p < 0 || p > 100 {
				t.Fatalf("seed %d: percent went from %v to %v", seed, last, p)
			}
			if (p == 100) != m.IsComplete() {
				t.Fatalf("seed %d: percent %v but complete=%v", seed, p, m.IsComplete())
			}
			last = p
		}

		if !m.IsComplete() || m.PercentComplete() != 100 {
			t.Fatalf("seed %d: not complete", seed)
		}
		if m.Contradictions() != 0 {
			t.Fatalf("seed %d: %d contradictions", seed, m.Contradictions())
		}
		checkInvariants(t, m)
		checkAdjacency(t, m)

		mx := m.RenderMatrix()
		for x := 0; x < mx.Width(); x++ {
			for y := 0; y < mx.Height(); y++ {
				if _, ok := mx.ID(x, y); !ok {
					t.Fatalf("seed %d: (%d,%d) unresolved", seed, x, y)
				}
			}
		}
	}
}

func TestGenerationIsDeterministic(t *testing.T) {
	catalog := twoColorCatalog(t)
	run := func() Matrix {
		m := newModel(t, catalog, 10, 10, 99)
		m.Solve()
		if err := m.Run(context.Background()); err != nil {
			t.Fatalf("Run: %v", err)
		}
		m.PrependEmptyRow()
		m.Run(context.Background())
		return m.RenderMatrix()
	}
	if !run().Equal(run()) {
		t.Fatal("same seed produced different grids")
	}
}

func TestRenderMatrixIsIdempotent(t *testing.T) {
	m := newModel(t, twoColorCatalog(t), 5, 4, 2)
	m.Solve()
	m.Iterate()
	a, b := m.RenderMatrix(), m.RenderMatrix()
	if !a.Equal(b) {
		t.Fatal("consecutive renders differ")
	}
	if &a[0][0] == &b[0][0] {
		t.Fatal("renders share storage")
	}

	e := m.EntropyMatrix()
	if len(e) != 5 || len(e[0]) != 4 {
		t.Fatalf("entropy matrix is %dx%d", len(e), len(e[0]))
	}
	if e[2][3] != m.CellAt(2, 3).Entropy() {
		t.Fatalf("entropy[2][3] = %d, want %d", e[2][3], m.CellAt(2, 3).Entropy())
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	m := newModel(t, twoColorCatalog(t), 6, 6, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if m.CollapsedCount() != 0 {
		t.Fatalf("collapsed %d cells after cancel", m.CollapsedCount())
	}
}

func TestFindLowestEntropyPrefersSmallestDomain(t *testing.T) {
	m := newModel(t, wildcardCatalog(t, 4), 3, 1, 1)
	m.CellAt(1, 0).setDomain(m.CellAt(1, 0).domain[:2])
	for i := 0; i < 20; i++ {
		if got := m.findLowestEntropy(); got != m.CellAt(1, 0) {
			t.Fatalf("picked (%d,%d)", got.X(), got.Y())
		}
	}

	m = newModel(t, wildcardCatalog(t, 4), 3, 1, 1)
	seen := map[*Cell]bool{}
	for i := 0; i < 200; i++ {
		seen[m.findLowestEntropy()] = true
	}
	if len(seen) != 3 {
		t.Fatalf("ties broken over %d cells, want 3", len(seen))
	}
}
