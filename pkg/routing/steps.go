package routing

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateSteps turns an ordered vertex path into short human-readable
// navigation steps. The transformation is stateless and looks at most one
// vertex back, so identical paths always produce identical step lists.
//
// Rules, in path order:
//  1. an empty path yields the single step "You have arrived"
//  2. the first step says whether the route spans floors
//  3. every floor change emits a "Change to floor" step
//  4. every fifth intermediate vertex emits a distance marker using the
//     weight of the edge just traversed
//  5. the final step is always "You have arrived at your destination"
func GenerateSteps(g *Graph, path []uuid.UUID) []string {
	if len(path) == 0 {
		return []string{"You have arrived"}
	}

	steps := make([]string, 0, 4)

	first, _ := g.Vertex(path[0])
	last, _ := g.Vertex(path[len(path)-1])
	if first.FloorID != last.FloorID {
		steps = append(steps, fmt.Sprintf("Start on floor %s", first.FloorID))
	} else {
		steps = append(steps, "Head towards destination")
	}

	currentFloor := first.FloorID
	for i, id := range path {
		v, ok := g.Vertex(id)
		if !ok {
			continue
		}
		if v.FloorID != currentFloor {
			steps = append(steps, fmt.Sprintf("Change to floor %s", v.FloorID))
			currentFloor = v.FloorID
		}

		if i > 0 && i%5 == 0 && i < len(path)-1 {
			if e, ok := g.EdgeBetween(path[i-1], id); ok {
				steps = append(steps, fmt.Sprintf("Continue straight for %.1fm", e.Weight))
			}
		}
	}

	steps = append(steps, "You have arrived at your destination")
	return steps
}
