package wfc

import (
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// propagate narrows the neighbors of source in every direction.
func (m *Model) propagate(source *Cell) {
	for _, dir := range AllDirections() {
		m.evaluateNeighbor(source, dir)
	}
}

// evaluateNeighbor keeps only the tiles of the neighbor in direction dir that
// fit at least one tile of source. When nothing fits, the neighbor's domain
// is left as it was. Any neighbor that shrank is propagated in turn; since
// domains only shrink and never below one tile, the recursion terminates.
//
// A collapsed neighbor is never narrowed. If source is collapsed too and the
// two tiles do not fit, the pair is counted as a contradiction.
func (m *Model) evaluateNeighbor(source *Cell, dir Direction) {
	neighbor := source.neighborsIn(m)[dir]
	if neighbor == nil {
		return
	}
	if neighbor.collapsed {
		if source.collapsed && !source.Tile().Fits(dir, neighbor.Tile()) {
			m.contradictions++
			log.WithFields(logrus.Fields{
				"x":    source.x,
				"y":    source.y,
				"dir":  dir,
				"tile": source.Tile(),
				"next": neighbor.Tile(),
			}).Debug("collapsed neighbors do not fit")
		}
		return
	}
	original := neighbor.entropy

	allowed := mapset.New[*Tile]()
	for _, s := range source.domain {
		for _, t := range m.index.CompatibleTiles(dir, s.Signature(dir)) {
			allowed.Put(t)
		}
	}

	narrowed := make([]*Tile, 0, len(neighbor.domain))
	for _, t := range neighbor.domain {
		if allowed.Has(t) {
			narrowed = append(narrowed, t)
		}
	}

	switch {
	case len(narrowed) == 0:
		m.contradictions++
		log.WithFields(logrus.Fields{
			"x":   neighbor.x,
			"y":   neighbor.y,
			"dir": dir,
		}).Debug("no compatible tile; domain kept")
	case len(narrowed) != original:
		neighbor.setDomain(narrowed)
		if neighbor.collapsed {
			m.uncollapsed.Remove(neighbor)
		}
	}

	if neighbor.entropy != original {
		m.propagate(neighbor)
	}
}
