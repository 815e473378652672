package routing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/openvenue/wayfinder/pkg/model"
)

// Store is the read-only slice of the storage layer the routing engine
// consumes. Implementations must support concurrent reads; the engine never
// writes through this interface.
type Store interface {
	// GetPOI fetches a POI by id. A missing POI is reported with an error
	// the storage layer marks as not-found.
	GetPOI(ctx context.Context, id uuid.UUID) (model.POI, error)
	// NodesByFloors returns every routing node whose floor is in floorIDs.
	NodesByFloors(ctx context.Context, floorIDs []uuid.UUID) ([]model.RoutingNode, error)
	// EdgesAmong returns every routing edge whose both endpoints are in
	// nodeIDs, each annotated with its edge type's code and accessibility
	// flag.
	EdgesAmong(ctx context.Context, nodeIDs []uuid.UUID) ([]model.GraphEdge, error)
}

// BuildGraph materializes a weighted undirected graph over the given floor
// set. When accessibleOnly is set, edges whose type is marked inaccessible
// are excluded entirely, not merely penalized. A floor set that yields zero
// nodes produces an empty graph; callers must check VertexCount before
// solving.
func BuildGraph(ctx context.Context, store Store, floorIDs []uuid.UUID, accessibleOnly bool) (*Graph, error) {
	g := NewGraph()

	nodes, err := store.NodesByFloors(ctx, floorIDs)
	if err != nil {
		return nil, fmt.Errorf("load routing nodes: %w", err)
	}
	if len(nodes) == 0 {
		return g, nil
	}

	nodeIDs := make([]uuid.UUID, 0, len(nodes))
	for _, n := range nodes {
		g.AddVertex(Vertex{ID: n.ID, FloorID: n.FloorID, Location: n.Location})
		nodeIDs = append(nodeIDs, n.ID)
	}

	edges, err := store.EdgesAmong(ctx, nodeIDs)
	if err != nil {
		return nil, fmt.Errorf("load routing edges: %w", err)
	}

	for _, e := range edges {
		if accessibleOnly && !e.IsAccessible {
			continue
		}
		if e.Distance <= 0 {
			// The schema forbids this; a non-positive weight here is data
			// corruption, not a recoverable routing outcome.
			return nil, fmt.Errorf("routing edge %s has non-positive distance %g", e.ID, e.Distance)
		}
		g.AddEdge(e.FromNodeID, e.ToNodeID, e.Distance, e.EdgeTypeCode)
	}

	return g, nil
}
