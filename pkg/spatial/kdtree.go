package spatial

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/openvenue/wayfinder/pkg/geo"
)

// metersPerDegree is the length of one degree of latitude.
const metersPerDegree = geo.EarthRadiusMeters * math.Pi / 180

// nodePoint is a routing node projected to planar meters. The projection is
// equirectangular at the floor's mean latitude; at building scale the planar
// nearest ordering matches the great-circle ordering.
type nodePoint struct {
	id uuid.UUID
	pt geo.Point
	x  float64
	y  float64
}

type kdNode struct {
	point nodePoint
	axis  int
	left  *kdNode
	right *kdNode
}

// kdTree is a 2-d tree over projected node coordinates.
type kdTree struct {
	root *kdNode
	size int
}

func (p nodePoint) coord(axis int) float64 {
	if axis == 0 {
		return p.x
	}
	return p.y
}

func buildKDTree(points []nodePoint) *kdTree {
	return &kdTree{
		root: buildKDSubtree(points, 0),
		size: len(points),
	}
}

func buildKDSubtree(points []nodePoint, depth int) *kdNode {
	if len(points) == 0 {
		return nil
	}

	axis := depth % 2
	// Sort by the split axis, ids as tie-break so the tree shape is
	// deterministic for a fixed node set.
	sort.Slice(points, func(i, j int) bool {
		ci, cj := points[i].coord(axis), points[j].coord(axis)
		if ci != cj {
			return ci < cj
		}
		return points[i].id.String() < points[j].id.String()
	})

	median := len(points) / 2
	node := &kdNode{
		point: points[median],
		axis:  axis,
	}
	node.left = buildKDSubtree(points[:median], depth+1)
	node.right = buildKDSubtree(points[median+1:], depth+1)
	return node
}

// nearest returns the id of the node closest to (x, y). Ties are broken by
// lowest node id so repeated queries are stable.
func (t *kdTree) nearest(x, y float64) (uuid.UUID, bool) {
	if t == nil || t.root == nil {
		return uuid.Nil, false
	}

	best := t.root.point
	bestDist := sqDist(x, y, best.x, best.y)
	t.root.search(x, y, &best, &bestDist)
	return best.id, true
}

func (n *kdNode) search(x, y float64, best *nodePoint, bestDist *float64) {
	if n == nil {
		return
	}

	d := sqDist(x, y, n.point.x, n.point.y)
	if d < *bestDist || (d == *bestDist && n.point.id.String() < best.id.String()) {
		*best = n.point
		*bestDist = d
	}

	var query, split float64
	if n.axis == 0 {
		query, split = x, n.point.x
	} else {
		query, split = y, n.point.y
	}

	near, far := n.left, n.right
	if query > split {
		near, far = n.right, n.left
	}

	near.search(x, y, best, bestDist)

	// The far subtree can only win if the splitting plane is closer than the
	// current best, or exactly as close (a lower id may hide there).
	planeDist := (query - split) * (query - split)
	if planeDist <= *bestDist {
		far.search(x, y, best, bestDist)
	}
}

func sqDist(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}
