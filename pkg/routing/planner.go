package routing

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/openvenue/wayfinder/pkg/geo"
	"github.com/openvenue/wayfinder/pkg/logging"
	"github.com/openvenue/wayfinder/pkg/spatial"
)

// RouteQuery is a single routing request: where the user stands and which
// POI they want to reach.
type RouteQuery struct {
	FromFloorID uuid.UUID
	From        geo.Point
	ToPOIID     uuid.UUID
	// Accessible restricts the route to wheelchair-accessible edge types.
	Accessible bool
}

// Route is a computed route: per-floor coordinate runs, total walking
// distance in meters (two-decimal rounding) and turn-by-turn steps.
type Route struct {
	Floors   []FloorPath `json:"floors"`
	Distance float64     `json:"distance"`
	Steps    []string    `json:"steps"`
}

// Planner is the route orchestrator: it resolves nearest waypoints, scopes
// and assembles the query graph, solves, and narrates. It is stateless
// across queries and safe for concurrent use.
type Planner struct {
	store Store
	index *spatial.Index
	log   logging.Logger
}

// NewPlanner creates a planner. index may be nil, in which case every
// nearest-waypoint lookup falls back to a linear scan over the floor's
// nodes.
func NewPlanner(store Store, index *spatial.Index, log logging.Logger) *Planner {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Planner{
		store: store,
		index: index,
		log:   log.With(logging.Component("routing")),
	}
}

// PlanRoute computes a walkable route from the origin coordinate to the
// destination POI.
//
// The graph is scoped to exactly {origin floor, destination floor}. A route
// that genuinely requires an intermediate third floor is reported as
// ErrNoRoute; widening the floor set via a floor-adjacency graph is a known,
// deliberate follow-up rather than behavior of this implementation.
func (p *Planner) PlanRoute(ctx context.Context, q RouteQuery) (*Route, error) {
	timer := logging.StartTimer(p.log, "route computed",
		logging.FloorID(q.FromFloorID),
		logging.POIID(q.ToPOIID),
		logging.Bool("accessible", q.Accessible))

	poi, err := p.store.GetPOI(ctx, q.ToPOIID)
	if err != nil {
		err = fmt.Errorf("destination POI: %w", err)
		timer.EndError(err)
		return nil, err
	}

	startID, err := p.nearestNode(ctx, q.FromFloorID, q.From)
	if err != nil {
		timer.EndError(err)
		return nil, err
	}
	endID, err := p.nearestNode(ctx, poi.FloorID, poi.Location)
	if err != nil {
		timer.EndError(err)
		return nil, err
	}

	floorIDs := []uuid.UUID{q.FromFloorID}
	if poi.FloorID != q.FromFloorID {
		floorIDs = append(floorIDs, poi.FloorID)
	}

	g, err := BuildGraph(ctx, p.store, floorIDs, q.Accessible)
	if err != nil {
		timer.EndError(err)
		return nil, err
	}
	if g.VertexCount() == 0 {
		timer.EndError(ErrNoRoute)
		return nil, ErrNoRoute
	}

	path, distance, err := ShortestPath(g, startID, endID)
	if err != nil {
		timer.EndError(err)
		return nil, err
	}

	route := &Route{
		Floors:   DecomposeByFloor(g, path),
		Distance: math.Round(distance*100) / 100,
		Steps:    GenerateSteps(g, path),
	}

	timer.End()
	return route, nil
}

// nearestNode resolves the routing node closest to point on the given
// floor. It consults the spatial index first and falls back to a linear
// scan over the floor's nodes when the floor has not been indexed. A floor
// with zero routing nodes yields ErrNoRoute.
func (p *Planner) nearestNode(ctx context.Context, floorID uuid.UUID, point geo.Point) (uuid.UUID, error) {
	if p.index != nil {
		if id, ok := p.index.Nearest(floorID, point); ok {
			return id, nil
		}
	}

	nodes, err := p.store.NodesByFloors(ctx, []uuid.UUID{floorID})
	if err != nil {
		return uuid.Nil, fmt.Errorf("load floor nodes: %w", err)
	}
	node, ok := spatial.NearestLinear(nodes, point)
	if !ok {
		p.log.Debug("floor has no routing nodes", logging.FloorID(floorID))
		return uuid.Nil, fmt.Errorf("floor %s has no routing nodes: %w", floorID, ErrNoRoute)
	}
	return node.ID, nil
}
