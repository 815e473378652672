package routing

import (
	"github.com/google/uuid"
)

// FloorPath is the slice of a route that renders on one floor: the floor id
// and the ordered [lng, lat] coordinates visited there.
type FloorPath struct {
	FloorID uuid.UUID    `json:"floorId"`
	Path    [][2]float64 `json:"path"`
}

// DecomposeByFloor groups an ordered vertex path into per-floor coordinate
// runs. Grouping is by first-seen floor id: if the path leaves a floor and
// later returns to it, the revisit's coordinates are appended to the
// existing group rather than opening a second leg. Groups appear in the
// order their floor first occurs on the path.
func DecomposeByFloor(g *Graph, path []uuid.UUID) []FloorPath {
	groups := make([]FloorPath, 0, 2)
	position := make(map[uuid.UUID]int)

	for _, id := range path {
		v, ok := g.Vertex(id)
		if !ok {
			continue
		}
		idx, seen := position[v.FloorID]
		if !seen {
			idx = len(groups)
			position[v.FloorID] = idx
			groups = append(groups, FloorPath{FloorID: v.FloorID})
		}
		groups[idx].Path = append(groups[idx].Path, v.Location.LngLat())
	}

	return groups
}
