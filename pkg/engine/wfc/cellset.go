package wfc

// cellSet tracks the uncollapsed cells. Iteration order is stable for a given
// sequence of operations so seeded runs stay reproducible.
type cellSet struct {
	cells []*Cell
	pos   map[*Cell]int
}

func newCellSet(capacity int) *cellSet {
	return &cellSet{
		cells: make([]*Cell, 0, capacity),
		pos:   make(map[*Cell]int, capacity),
	}
}

func (s *cellSet) Len() int {
	return len(s.cells)
}

func (s *cellSet) Has(c *Cell) bool {
	_, ok := s.pos[c]
	return ok
}

func (s *cellSet) Put(c *Cell) {
	if s.Has(c) {
		return
	}
	s.pos[c] = len(s.cells)
	s.cells = append(s.cells, c)
}

// Remove swaps the last cell into the freed slot.
func (s *cellSet) Remove(c *Cell) {
	i, ok := s.pos[c]
	if !ok {
		return
	}
	last := len(s.cells) - 1
	if i != last {
		moved := s.cells[last]
		s.cells[i] = moved
		s.pos[moved] = i
	}
	s.cells[last] = nil
	s.cells = s.cells[:last]
	delete(s.pos, c)
}
