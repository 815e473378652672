// Package spatial provides per-floor nearest-neighbor lookup over routing
// node coordinates. Each floor gets its own k-d tree, rebuilt whenever that
// floor's node set changes; queries are read-only and safe for concurrent
// use.
package spatial

import (
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/openvenue/wayfinder/pkg/geo"
	"github.com/openvenue/wayfinder/pkg/model"
)

// floorIndex is the immutable index for one floor. It is replaced wholesale
// on rebuild, never mutated in place.
type floorIndex struct {
	tree   *kdTree
	cosLat float64
}

// Index maintains one nearest-neighbor structure per floor.
type Index struct {
	mu     sync.RWMutex
	floors map[uuid.UUID]*floorIndex
}

// NewIndex creates an empty spatial index.
func NewIndex() *Index {
	return &Index{
		floors: make(map[uuid.UUID]*floorIndex),
	}
}

// Rebuild replaces the index for floorID with one built from nodes. Nodes on
// other floors are ignored. An empty node list removes the floor's index.
func (ix *Index) Rebuild(floorID uuid.UUID, nodes []model.RoutingNode) {
	points := make([]nodePoint, 0, len(nodes))
	var latSum float64
	for _, n := range nodes {
		if n.FloorID != floorID {
			continue
		}
		latSum += n.Location.Lat
		points = append(points, nodePoint{id: n.ID, pt: n.Location})
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	if len(points) == 0 {
		delete(ix.floors, floorID)
		return
	}

	cosLat := math.Cos(latSum / float64(len(points)) * math.Pi / 180)
	for i := range points {
		points[i].x = points[i].pt.Lng * metersPerDegree * cosLat
		points[i].y = points[i].pt.Lat * metersPerDegree
	}

	ix.floors[floorID] = &floorIndex{
		tree:   buildKDTree(points),
		cosLat: cosLat,
	}
}

// Nearest returns the id of the routing node on floorID closest to p. The
// second return is false when the floor has no indexed nodes.
func (ix *Index) Nearest(floorID uuid.UUID, p geo.Point) (uuid.UUID, bool) {
	ix.mu.RLock()
	fi, ok := ix.floors[floorID]
	ix.mu.RUnlock()
	if !ok {
		return uuid.Nil, false
	}

	x := p.Lng * metersPerDegree * fi.cosLat
	y := p.Lat * metersPerDegree
	return fi.tree.nearest(x, y)
}

// Size returns the number of indexed nodes on floorID.
func (ix *Index) Size(floorID uuid.UUID) int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if fi, ok := ix.floors[floorID]; ok {
		return fi.tree.size
	}
	return 0
}

// Stats returns the number of indexed floors and the total node count across
// all of them.
func (ix *Index) Stats() (floors, nodes int) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	for _, fi := range ix.floors {
		nodes += fi.tree.size
	}
	return len(ix.floors), nodes
}

// NearestLinear scans nodes and returns the one closest to p by great-circle
// distance, ties broken by lowest node id. It is the baseline the k-d tree
// must agree with, and the fallback when no index has been built for a
// floor. Returns false when nodes is empty.
func NearestLinear(nodes []model.RoutingNode, p geo.Point) (model.RoutingNode, bool) {
	var best model.RoutingNode
	bestDist := math.Inf(1)
	found := false
	for _, n := range nodes {
		d := geo.DistanceMeters(p, n.Location)
		if d < bestDist || (d == bestDist && n.ID.String() < best.ID.String()) {
			best = n
			bestDist = d
			found = true
		}
	}
	return best, found
}
