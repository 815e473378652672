package logging

import (
	"time"

	"github.com/google/uuid"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Component field helpers for common component names
func Component(name string) Field {
	return String("component", name)
}

func Operation(op string) Field {
	return String("operation", op)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

// Domain field helpers

func BuildingID(id uuid.UUID) Field {
	return String("building_id", id.String())
}

func FloorID(id uuid.UUID) Field {
	return String("floor_id", id.String())
}

func POIID(id uuid.UUID) Field {
	return String("poi_id", id.String())
}

func NodeID(id uuid.UUID) Field {
	return String("node_id", id.String())
}

func RequestID(id string) Field {
	return String("request_id", id)
}

func Distance(meters float64) Field {
	return Float64("distance_m", meters)
}
