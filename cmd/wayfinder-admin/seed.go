package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/openvenue/wayfinder/pkg/geo"
	"github.com/openvenue/wayfinder/pkg/model"
	"github.com/openvenue/wayfinder/pkg/store"
)

func init() {
	rootCmd.AddCommand(seedCatalogsCmd)
	rootCmd.AddCommand(seedDemoCmd)
}

// Standard traversal vocabulary. Stairs and escalators are the inaccessible
// kinds; everything else is wheelchair friendly.
var (
	nodeTypeCodes = []struct {
		code, description string
	}{
		{"hallway", "Ordinary walkable waypoint"},
		{"door", "Doorway between rooms or zones"},
		{"stairs", "Staircase landing"},
		{"elevator", "Elevator door"},
		{"entrance", "Building entrance"},
		{"exit", "Emergency or secondary exit"},
	}

	edgeTypeCodes = []struct {
		code        string
		accessible  bool
		description string
	}{
		{"hallway", true, "Walk along a corridor"},
		{"stairs", false, "Climb or descend stairs"},
		{"elevator", true, "Ride an elevator between floors"},
		{"escalator", false, "Ride an escalator"},
		{"ramp", true, "Walk a wheelchair ramp"},
	}
)

var seedCatalogsCmd = &cobra.Command{
	Use:   "seed-catalogs",
	Short: "Insert the standard node and edge type catalogs",
	Long: `Insert the standard routing vocabulary: node types (hallway, door,
stairs, elevator, entrance, exit) and edge types (hallway, stairs, elevator,
escalator, ramp). Existing entries are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		s, err := connect(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		created, err := seedCatalogs(ctx, s)
		if err != nil {
			return err
		}
		fmt.Printf("catalogs seeded, %d new entries\n", created)
		return nil
	},
}

func seedCatalogs(ctx context.Context, s *store.PGStore) (int, error) {
	created := 0
	for _, nt := range nodeTypeCodes {
		err := s.CreateNodeType(ctx, &model.NodeType{
			Code:        nt.code,
			Description: nt.description,
		})
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seed node type %s: %w", nt.code, err)
		}
		created++
	}
	for _, et := range edgeTypeCodes {
		err := s.CreateEdgeType(ctx, &model.EdgeType{
			Code:         et.code,
			IsAccessible: et.accessible,
			Description:  et.description,
		})
		if errors.Is(err, store.ErrConflict) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seed edge type %s: %w", et.code, err)
		}
		created++
	}
	return created, nil
}

var seedDemoCmd = &cobra.Command{
	Use:   "seed-demo",
	Short: "Create a small two-floor demo venue",
	Long: `Create a demo building with two floors, a connected routing graph
(hallways, stairs and an elevator) and a couple of POIs. Intended for local
development against a fresh database; requires the catalogs to be seeded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		s, err := connect(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		if _, err := seedCatalogs(ctx, s); err != nil {
			return err
		}
		if err := seedDemoVenue(ctx, s); err != nil {
			return err
		}
		fmt.Println("demo venue created")
		return nil
	},
}

func seedDemoVenue(ctx context.Context, s *store.PGStore) error {
	hallwayNode, err := s.GetNodeTypeByCode(ctx, "hallway")
	if err != nil {
		return fmt.Errorf("load node type catalog: %w", err)
	}
	hallway, err := s.GetEdgeTypeByCode(ctx, "hallway")
	if err != nil {
		return fmt.Errorf("load edge type catalog: %w", err)
	}
	stairs, err := s.GetEdgeTypeByCode(ctx, "stairs")
	if err != nil {
		return err
	}
	elevator, err := s.GetEdgeTypeByCode(ctx, "elevator")
	if err != nil {
		return err
	}

	building := model.Building{
		Name:        "Demo Galleria",
		Description: "Two-floor demo venue for local development",
		FloorsCount: 2,
	}
	if err := s.CreateBuilding(ctx, &building); err != nil {
		return fmt.Errorf("create demo building: %w", err)
	}

	ground := model.Floor{BuildingID: building.ID, LevelNumber: 0, Name: "Ground", HeightMeters: 4.5}
	upper := model.Floor{BuildingID: building.ID, LevelNumber: 1, Name: "First", HeightMeters: 4.0}
	for _, f := range []*model.Floor{&ground, &upper} {
		if err := s.CreateFloor(ctx, f); err != nil {
			return fmt.Errorf("create demo floor %s: %w", f.Name, err)
		}
	}

	// A short corridor on each floor, joined by stairs at one end and an
	// elevator at the other. Coordinates are near Rotterdam Centraal.
	node := func(f *model.Floor, lat, lng float64) (*model.RoutingNode, error) {
		n := &model.RoutingNode{
			FloorID:    f.ID,
			NodeTypeID: hallwayNode.ID,
			Location:   geo.Point{Lat: lat, Lng: lng},
		}
		return n, s.CreateRoutingNode(ctx, n)
	}

	g1, err := node(&ground, 51.92500, 4.46880)
	if err != nil {
		return err
	}
	g2, err := node(&ground, 51.92500, 4.46920)
	if err != nil {
		return err
	}
	g3, err := node(&ground, 51.92500, 4.46960)
	if err != nil {
		return err
	}
	u1, err := node(&upper, 51.92500, 4.46880)
	if err != nil {
		return err
	}
	u2, err := node(&upper, 51.92500, 4.46960)
	if err != nil {
		return err
	}

	edge := func(from, to *model.RoutingNode, typeID uuid.UUID, distance float64) error {
		return s.CreateRoutingEdge(ctx, &model.RoutingEdge{
			FromNodeID: from.ID,
			ToNodeID:   to.ID,
			EdgeTypeID: typeID,
			Distance:   distance,
		})
	}
	if err := edge(g1, g2, hallway.ID, 27.5); err != nil {
		return err
	}
	if err := edge(g2, g3, hallway.ID, 27.5); err != nil {
		return err
	}
	if err := edge(g3, u2, stairs.ID, 6.0); err != nil {
		return err
	}
	if err := edge(g1, u1, elevator.ID, 4.5); err != nil {
		return err
	}
	if err := edge(u1, u2, hallway.ID, 55.0); err != nil {
		return err
	}

	pois := []model.POI{
		{FloorID: ground.ID, Name: "Information Desk", Type: "service", Location: geo.Point{Lat: 51.92500, Lng: 4.46900}},
		{FloorID: upper.ID, Name: "Food Court", Type: "restaurant", Location: geo.Point{Lat: 51.92500, Lng: 4.46955}},
	}
	for i := range pois {
		if err := s.CreatePOI(ctx, &pois[i]); err != nil {
			return fmt.Errorf("create demo POI %s: %w", pois[i].Name, err)
		}
	}
	return nil
}
