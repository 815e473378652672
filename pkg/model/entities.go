package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/openvenue/wayfinder/pkg/geo"
)

// Building is a physical building with one or more floors. Deleting a
// building cascades to its floors.
type Building struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	FloorsCount int       `json:"floorsCount"`
	// Footprint is the building outline as a WKT POLYGON in WGS-84.
	Footprint string    `json:"footprint,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Floor is a single level within a building. (building, level) is unique and
// HeightMeters must be positive.
type Floor struct {
	ID           uuid.UUID `json:"id"`
	BuildingID   uuid.UUID `json:"buildingId"`
	LevelNumber  int       `json:"levelNumber"` // -1 basement, 0 ground, 1, 2...
	Name         string    `json:"name"`
	HeightMeters float64   `json:"heightMeters"`
	// GeoJSON holds the entire indoor map document for the floor.
	GeoJSON   map[string]any `json:"geojson,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// POI is a named destination on a floor (shop, restroom, gate...).
type POI struct {
	ID        uuid.UUID      `json:"id"`
	FloorID   uuid.UUID      `json:"floorId"`
	Name      string         `json:"name"`
	Type      string         `json:"type"`
	Location  geo.Point      `json:"location"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// NodeType classifies a routing node's role.
type NodeType struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"` // hallway, door, stairs, elevator, entrance, exit
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// EdgeType classifies how a routing edge is traversed. IsAccessible governs
// the accessibility filter: inaccessible edge types are excluded entirely
// from accessible-only graphs.
type EdgeType struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"` // hallway, stairs, elevator, escalator, ramp
	IsAccessible bool      `json:"isAccessible"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RoutingNode is a waypoint in the navigation graph, tied to one floor.
type RoutingNode struct {
	ID         uuid.UUID `json:"id"`
	FloorID    uuid.UUID `json:"floorId"`
	NodeTypeID uuid.UUID `json:"nodeTypeId"`
	Location   geo.Point `json:"location"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// RoutingEdge connects two routing nodes with a positive walking distance in
// meters. The (from, to) pair is unique; traversal treats edges as
// undirected. Edges whose endpoints sit on different floors are the only
// legal cross-floor transitions (stairs, elevators, ramps).
type RoutingEdge struct {
	ID         uuid.UUID `json:"id"`
	FromNodeID uuid.UUID `json:"fromNodeId"`
	ToNodeID   uuid.UUID `json:"toNodeId"`
	EdgeTypeID uuid.UUID `json:"edgeTypeId"`
	Distance   float64   `json:"distance"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// GraphEdge is a routing edge annotated with its edge type's code and
// accessibility flag, the shape consumed by the graph assembler.
type GraphEdge struct {
	RoutingEdge
	EdgeTypeCode string `json:"edgeTypeCode"`
	IsAccessible bool   `json:"isAccessible"`
}
