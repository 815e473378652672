package api

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openvenue/wayfinder/pkg/api/middleware"
	"github.com/openvenue/wayfinder/pkg/health"
	"github.com/openvenue/wayfinder/pkg/logging"
	"github.com/openvenue/wayfinder/pkg/metrics"
	"github.com/openvenue/wayfinder/pkg/model"
	"github.com/openvenue/wayfinder/pkg/routing"
	"github.com/openvenue/wayfinder/pkg/spatial"
)

// maxBodyBytes caps request payloads; floor GeoJSON documents are the
// largest legitimate bodies.
const maxBodyBytes int64 = 10 << 20

// Store is the full persistence surface the API serves. It extends the
// read-only routing.Store with venue and graph management.
type Store interface {
	routing.Store

	Ping(ctx context.Context) error

	CreateBuilding(ctx context.Context, b *model.Building) error
	GetBuilding(ctx context.Context, id uuid.UUID) (model.Building, error)
	ListBuildings(ctx context.Context) ([]model.Building, error)
	DeleteBuilding(ctx context.Context, id uuid.UUID) error

	CreateFloor(ctx context.Context, f *model.Floor) error
	GetFloor(ctx context.Context, id uuid.UUID) (model.Floor, error)
	ListFloorsByBuilding(ctx context.Context, buildingID uuid.UUID) ([]model.Floor, error)
	DeleteFloor(ctx context.Context, id uuid.UUID) error

	CreatePOI(ctx context.Context, p *model.POI) error
	ListPOIsByFloor(ctx context.Context, floorID uuid.UUID) ([]model.POI, error)
	DeletePOI(ctx context.Context, id uuid.UUID) error

	CreateNodeType(ctx context.Context, nt *model.NodeType) error
	ListNodeTypes(ctx context.Context) ([]model.NodeType, error)
	CreateEdgeType(ctx context.Context, et *model.EdgeType) error
	ListEdgeTypes(ctx context.Context) ([]model.EdgeType, error)

	CreateRoutingNode(ctx context.Context, n *model.RoutingNode) error
	GetRoutingNode(ctx context.Context, id uuid.UUID) (model.RoutingNode, error)
	CreateRoutingEdge(ctx context.Context, e *model.RoutingEdge) error
	ListFloorIDs(ctx context.Context) ([]uuid.UUID, error)
}

// Options configures optional server collaborators. Zero values get sane
// defaults in NewServer.
type Options struct {
	Logger      logging.Logger
	Metrics     *metrics.Registry
	CORSOrigins []string
}

// Server wires storage, routing and the spatial index behind the HTTP API.
type Server struct {
	store   Store
	index   *spatial.Index
	planner *routing.Planner
	health  *health.Checker
	metrics *metrics.Registry
	log     logging.Logger
	cors    *middleware.CORSConfig
}

// NewServer builds the API server and registers its health checks.
func NewServer(store Store, index *spatial.Index, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}
	reg := opts.Metrics
	if reg == nil {
		reg = metrics.DefaultRegistry()
	}
	cors := middleware.DefaultCORSConfig()
	if len(opts.CORSOrigins) > 0 {
		cors = middleware.CORSFromOrigins(opts.CORSOrigins)
	}

	s := &Server{
		store:   store,
		index:   index,
		planner: routing.NewPlanner(store, index, log),
		health:  health.NewChecker(),
		metrics: reg,
		log:     log.With(logging.Component("api")),
		cors:    cors,
	}

	dbCheck := health.DatabaseCheck(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return store.Ping(ctx)
	})
	s.health.Register("database", dbCheck)
	s.health.Register("spatial_index", health.SpatialIndexCheck(index.Stats))
	s.health.Register("memory", health.MemoryCheck(func() (uint64, uint64) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		return m.Alloc, m.Sys
	}))
	s.health.RegisterReadiness("database", dbCheck)
	s.health.RegisterLiveness("server", health.SimpleCheck())

	return s
}

// Router assembles the route table and middleware chain. The returned handler
// is what the process serves.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/navigation/route", s.handleRoute).Methods(http.MethodPost)

	api.HandleFunc("/buildings", s.handleCreateBuilding).Methods(http.MethodPost)
	api.HandleFunc("/buildings", s.handleListBuildings).Methods(http.MethodGet)
	api.HandleFunc("/buildings/{id}", s.handleGetBuilding).Methods(http.MethodGet)
	api.HandleFunc("/buildings/{id}", s.handleDeleteBuilding).Methods(http.MethodDelete)
	api.HandleFunc("/buildings/{id}/floors", s.handleListFloors).Methods(http.MethodGet)

	api.HandleFunc("/floors", s.handleCreateFloor).Methods(http.MethodPost)
	api.HandleFunc("/floors/{id}", s.handleGetFloor).Methods(http.MethodGet)
	api.HandleFunc("/floors/{id}", s.handleDeleteFloor).Methods(http.MethodDelete)
	api.HandleFunc("/floors/{id}/geojson", s.handleFloorGeoJSON).Methods(http.MethodGet)
	api.HandleFunc("/floors/{id}/pois", s.handleListFloorPOIs).Methods(http.MethodGet)

	api.HandleFunc("/pois", s.handleCreatePOI).Methods(http.MethodPost)
	api.HandleFunc("/pois/{id}", s.handleGetPOI).Methods(http.MethodGet)
	api.HandleFunc("/pois/{id}", s.handleDeletePOI).Methods(http.MethodDelete)

	api.HandleFunc("/routing/nodes", s.handleCreateNode).Methods(http.MethodPost)
	api.HandleFunc("/routing/nodes/{id}", s.handleGetNode).Methods(http.MethodGet)
	api.HandleFunc("/routing/edges", s.handleCreateEdge).Methods(http.MethodPost)

	api.HandleFunc("/catalog/node-types", s.handleCreateNodeType).Methods(http.MethodPost)
	api.HandleFunc("/catalog/node-types", s.handleListNodeTypes).Methods(http.MethodGet)
	api.HandleFunc("/catalog/edge-types", s.handleCreateEdgeType).Methods(http.MethodPost)
	api.HandleFunc("/catalog/edge-types", s.handleListEdgeTypes).Methods(http.MethodGet)

	r.HandleFunc("/health", s.health.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/health/ready", s.health.ReadinessHandler()).Methods(http.MethodGet)
	r.HandleFunc("/health/live", s.health.LivenessHandler()).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(
		s.metrics.GetPrometheusRegistry(),
		promhttp.HandlerOpts{},
	)).Methods(http.MethodGet)

	var handler http.Handler = r
	handler = middleware.CORS(s.cors)(handler)
	handler = middleware.SecurityHeaders()(handler)
	handler = middleware.BodySizeLimit(maxBodyBytes)(handler)
	handler = middleware.Metrics(s.metrics)(handler)
	handler = middleware.Logging(s.log)(handler)
	handler = middleware.RequestID()(handler)
	handler = middleware.PanicRecovery(s.log)(handler)

	return handler
}

// WarmIndex builds the spatial index for every floor that has routing nodes.
// Called once at startup; per-floor failures are logged and skipped so a
// single bad floor does not block serving.
func (s *Server) WarmIndex(ctx context.Context) error {
	floorIDs, err := s.store.ListFloorIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range floorIDs {
		s.refreshFloorIndex(ctx, id, "startup")
	}
	s.log.Info("spatial index warmed", logging.Count(len(floorIDs)))
	return nil
}

// refreshFloorIndex reloads one floor's nodes and replaces its index.
func (s *Server) refreshFloorIndex(ctx context.Context, floorID uuid.UUID, trigger string) {
	nodes, err := s.store.NodesByFloors(ctx, []uuid.UUID{floorID})
	if err != nil {
		s.log.Error("spatial index refresh failed",
			logging.FloorID(floorID),
			logging.Error(err))
		return
	}
	s.index.Rebuild(floorID, nodes)
	s.metrics.RecordIndexRebuild(trigger, floorID.String(), s.index.Size(floorID))
}
