package routing

import (
	"container/heap"

	"github.com/google/uuid"
)

// pqItem is a priority-queue entry for Dijkstra.
type pqItem struct {
	id   uuid.UUID
	dist float64
}

// distanceQueue is a min-heap ordered by distance, ids as tie-break so equal
// frontiers are always expanded in the same order.
type distanceQueue []pqItem

func (q distanceQueue) Len() int { return len(q) }

func (q distanceQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].id.String() < q[j].id.String()
}

func (q distanceQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *distanceQueue) Push(x any) { *q = append(*q, x.(pqItem)) }

func (q *distanceQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// ShortestPath runs Dijkstra from source to target and returns the vertex
// sequence (inclusive of both endpoints) together with the total accumulated
// weight. All edge weights are strictly positive by data invariant.
//
// When source equals target the path is the single-vertex sequence with
// distance 0. When the endpoints lie in different connected components the
// error is ErrNoRoute, an expected condition rather than a failure.
func ShortestPath(g *Graph, source, target uuid.UUID) ([]uuid.UUID, float64, error) {
	if !g.HasVertex(source) || !g.HasVertex(target) {
		return nil, 0, ErrNoRoute
	}
	if source == target {
		return []uuid.UUID{source}, 0, nil
	}

	dist := map[uuid.UUID]float64{source: 0}
	parent := map[uuid.UUID]uuid.UUID{source: source}
	done := make(map[uuid.UUID]bool)

	pq := &distanceQueue{{id: source, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		current := heap.Pop(pq).(pqItem)
		if done[current.id] {
			continue
		}
		done[current.id] = true

		if current.id == target {
			return reconstruct(parent, source, target), current.dist, nil
		}

		for _, e := range g.Neighbors(current.id) {
			if done[e.To] {
				continue
			}
			next := current.dist + e.Weight
			old, seen := dist[e.To]
			switch {
			case !seen || next < old:
				dist[e.To] = next
				parent[e.To] = current.id
				heap.Push(pq, pqItem{id: e.To, dist: next})
			case next == old && current.id.String() < parent[e.To].String():
				// Equal-length alternative: prefer the lexicographically
				// lowest parent so the returned path is deterministic.
				parent[e.To] = current.id
			}
		}
	}

	return nil, 0, ErrNoRoute
}

func reconstruct(parent map[uuid.UUID]uuid.UUID, source, target uuid.UUID) []uuid.UUID {
	path := []uuid.UUID{target}
	for node := target; node != source; {
		node = parent[node]
		path = append(path, node)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
