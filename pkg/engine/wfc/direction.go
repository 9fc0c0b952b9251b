package wfc

import "strconv"

// Direction names a side of a tile and, for a cell, the neighbor across that
// side. The y axis grows upward, so the cell Up of (x, y) is (x, y+1) and a
// scrolled-in row arrives at the top.
type Direction int

// Sides in clockwise order starting at the top; propagation visits them in
// this order.
const (
	Up Direction = iota
	Right
	Down
	Left
)

var (
	directionNames  = [4]string{"Up", "Right", "Down", "Left"}
	directionDeltas = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
)

// AllDirections returns the sides in the order a collapsed cell narrows its
// neighbors.
func AllDirections() [4]Direction {
	return [4]Direction{Up, Right, Down, Left}
}

// String names the side, or Direction(n) for a value outside the four sides.
func (d Direction) String() string {
	if !d.IsValid() {
		return "Direction(" + strconv.Itoa(int(d)) + ")"
	}
	return directionNames[d]
}

// IsValid reports whether d indexes one of a tile's four edge signatures.
func (d Direction) IsValid() bool {
	return d >= Up && d <= Left
}

// Opposite returns the side a neighbor in direction d shows back to the cell.
// Two tiles fit when d's signature on one equals Opposite's on the other.
func (d Direction) Opposite() Direction {
	if !d.IsValid() {
		return d
	}
	return (d + 2) % 4
}

// Delta returns the grid step to the neighbor across side d; zero for an
// invalid side.
func (d Direction) Delta() (dx, dy int) {
	if !d.IsValid() {
		return 0, 0
	}
	return directionDeltas[d][0], directionDeltas[d][1]
}

// edgeIndexes maps each direction to the three corner/edge codes that make up
// that side of a tile, ordered left-to-right or top-to-bottom so that facing
// edges of two tiles line up.
var edgeIndexes = [4][3]int{
	Up:    {7, 0, 1},
	Right: {1, 2, 3},
	Down:  {5, 4, 3},
	Left:  {7, 6, 5},
}
