package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// MaxMetadataKeys caps POI metadata; length limits live in the struct
	// tags.
	MaxMetadataKeys = 100

	// codePattern constrains catalog codes (hallway, stairs, elevator...)
	codePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

func init() {
	validate = validator.New()
}

// RouteRequest is the payload for a navigation route computation. Lat and Lng
// are pointers so a missing coordinate is distinguishable from 0 (a valid
// coordinate on the equator or prime meridian).
type RouteRequest struct {
	FloorID    string   `json:"floorId" validate:"required,uuid"`
	Lat        *float64 `json:"lat" validate:"required,latitude"`
	Lng        *float64 `json:"lng" validate:"required,longitude"`
	POIID      string   `json:"poiId" validate:"required,uuid"`
	Accessible bool     `json:"accessible"`
}

// BuildingRequest is the payload for creating a building
type BuildingRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	FloorsCount int    `json:"floorsCount" validate:"required,min=1"`
	Footprint   string `json:"footprint" validate:"omitempty"`
}

// FloorRequest is the payload for creating a floor. LevelNumber may be
// negative (basements) or zero (ground), so it carries no range constraint.
type FloorRequest struct {
	BuildingID   string         `json:"buildingId" validate:"required,uuid"`
	LevelNumber  int            `json:"levelNumber"`
	Name         string         `json:"name" validate:"required,max=200"`
	HeightMeters float64        `json:"heightMeters" validate:"required,gt=0"`
	GeoJSON      map[string]any `json:"geojson" validate:"omitempty"`
}

// POIRequest is the payload for creating a point of interest
type POIRequest struct {
	FloorID  string         `json:"floorId" validate:"required,uuid"`
	Name     string         `json:"name" validate:"required,max=200"`
	Type     string         `json:"type" validate:"required,max=50"`
	Lat      *float64       `json:"lat" validate:"required,latitude"`
	Lng      *float64       `json:"lng" validate:"required,longitude"`
	Metadata map[string]any `json:"metadata" validate:"omitempty,max=100"`
}

// NodeRequest is the payload for creating a routing node
type NodeRequest struct {
	FloorID    string   `json:"floorId" validate:"required,uuid"`
	NodeTypeID string   `json:"nodeTypeId" validate:"required,uuid"`
	Lat        *float64 `json:"lat" validate:"required,latitude"`
	Lng        *float64 `json:"lng" validate:"required,longitude"`
}

// EdgeRequest is the payload for creating a routing edge
type EdgeRequest struct {
	FromNodeID string  `json:"fromNodeId" validate:"required,uuid"`
	ToNodeID   string  `json:"toNodeId" validate:"required,uuid"`
	EdgeTypeID string  `json:"edgeTypeId" validate:"required,uuid"`
	Distance   float64 `json:"distance" validate:"required,gt=0"`
}

// TypeRequest is the payload for creating a node or edge type catalog entry
type TypeRequest struct {
	Code         string `json:"code" validate:"required,min=1,max=50"`
	IsAccessible *bool  `json:"isAccessible" validate:"omitempty"`
	Description  string `json:"description" validate:"omitempty,max=2000"`
}

// ValidateRouteRequest validates a navigation route request
func ValidateRouteRequest(req *RouteRequest) error {
	if req == nil {
		return errors.New("route request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateBuildingRequest validates a building creation request
func ValidateBuildingRequest(req *BuildingRequest) error {
	if req == nil {
		return errors.New("building request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateFloorRequest validates a floor creation request
func ValidateFloorRequest(req *FloorRequest) error {
	if req == nil {
		return errors.New("floor request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidatePOIRequest validates a POI creation request
func ValidatePOIRequest(req *POIRequest) error {
	if req == nil {
		return errors.New("poi request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	if len(req.Metadata) > MaxMetadataKeys {
		return fmt.Errorf("Metadata: maximum %d keys allowed, got %d", MaxMetadataKeys, len(req.Metadata))
	}
	return nil
}

// ValidateNodeRequest validates a routing node creation request
func ValidateNodeRequest(req *NodeRequest) error {
	if req == nil {
		return errors.New("node request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateEdgeRequest validates a routing edge creation request
func ValidateEdgeRequest(req *EdgeRequest) error {
	if req == nil {
		return errors.New("edge request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	if req.FromNodeID == req.ToNodeID {
		return errors.New("FromNodeID: edge endpoints must differ")
	}
	return nil
}

// ValidateTypeRequest validates a catalog type creation request
func ValidateTypeRequest(req *TypeRequest) error {
	if req == nil {
		return errors.New("type request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	if !codePattern.MatchString(req.Code) {
		return fmt.Errorf("Code: '%s' is invalid (lowercase letters, digits and underscore, starting with a letter)", req.Code)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "gt":
			return fmt.Errorf("%s: must be greater than %s", field, param)
		case "uuid":
			return fmt.Errorf("%s: must be a valid UUID", field)
		case "latitude":
			return fmt.Errorf("%s: must be a valid latitude", field)
		case "longitude":
			return fmt.Errorf("%s: must be a valid longitude", field)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
