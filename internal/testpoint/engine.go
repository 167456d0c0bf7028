package testpoint

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/opengeospatial/ets-ogcapi-features10/internal/models"
)

// Paths of interest of an OGC API Features instance
const (
	LandingPagePath        = "/"
	ConformancePath        = "/conformance"
	APIDefinitionPath      = "/api"
	CollectionsPath        = "/collections"
	CollectionPath         = "/collections/{collectionId}"
	CollectionItemsPath    = "/collections/{collectionId}/items"
	CollectionFeaturePath  = "/collections/{collectionId}/items/{featureId}"
	collectionResourceRoot = "/collections/"
)

// DefaultCeiling bounds ResolveCollectionsList when the caller gives no
// count of its own
const DefaultCeiling = 50

// Engine resolves test points. Its configuration is fixed at construction;
// it keeps nothing between calls.
type Engine struct {
	ceiling int
	methods map[string]bool
	logger  *slog.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithCeiling sets the number of test points ResolveCollectionsList returns
// when called with a negative count. Negative values are ignored.
func WithCeiling(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.ceiling = n
		}
	}
}

// WithMethods restricts resolution to the given HTTP methods. By default
// every declared operation is considered.
func WithMethods(methods ...string) Option {
	return func(e *Engine) {
		if len(methods) == 0 {
			e.methods = nil
			return
		}
		e.methods = make(map[string]bool, len(methods))
		for _, m := range methods {
			e.methods[strings.ToLower(m)] = true
		}
	}
}

// WithLogger sets the logger that receives a debug record for every
// operation left without test points
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Engine
func New(opts ...Option) *Engine {
	e := &Engine{
		ceiling: DefaultCeiling,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ceiling returns the safety ceiling of ResolveCollectionsList
func (e *Engine) Ceiling() int {
	return e.ceiling
}

func (e *Engine) acceptsMethod(method string) bool {
	return len(e.methods) == 0 || e.methods[strings.ToLower(method)]
}

// ResolveForPattern returns the test points of every path item whose
// template matches pathPattern, in path item, operation and server order.
// Structurally equal test points are returned once.
func (e *Engine) ResolveForPattern(api *models.APIDescription, instanceRoot, pathPattern string, allowEmpty bool) []models.TestPoint {
	if api == nil {
		return nil
	}

	var points []models.TestPoint
	seen := make(map[string]bool)
	for i := range api.Paths {
		path := &api.Paths[i]
		if !Matches(path.Template, pathPattern) {
			continue
		}
		for j := range path.Operations {
			op := &path.Operations[j]
			if !e.acceptsMethod(op.Method) {
				continue
			}
			if _, ok := op.SuccessResponse(); !ok {
				e.logger.Debug("operation excluded: no 200 or default response",
					"path", path.Template, "method", op.Method)
				continue
			}
			for _, server := range ResolveServers(api, path, op) {
				built := Build(path, op, server, instanceRoot, allowEmpty)
				if len(built) == 0 {
					e.logger.Debug("operation excluded: template variables cannot be bound",
						"path", path.Template, "method", op.Method, "server", server.URL)
				}
				for _, tp := range built {
					points = appendUnique(points, seen, tp)
				}
			}
		}
	}
	return points
}

// ResolveExact returns the test points that can produce concretePath. Test
// points whose variables cannot be bound are kept with an empty binding.
func (e *Engine) ResolveExact(api *models.APIDescription, instanceRoot, concretePath string) []models.TestPoint {
	return FilterExact(e.ResolveForPattern(api, instanceRoot, concretePath, true), concretePath)
}

// ResolveCollectionsList returns the test points of the feature item
// listings, truncated to maxCount, or to the engine ceiling when maxCount is
// negative
func (e *Engine) ResolveCollectionsList(api *models.APIDescription, instanceRoot string, maxCount int) []models.TestPoint {
	points := e.ResolveForPattern(api, instanceRoot, CollectionItemsPath, false)

	limit := maxCount
	if limit < 0 {
		limit = e.ceiling
	}
	if len(points) > limit {
		points = points[:limit]
	}
	return points
}

// ResolveSingleResource returns the test points of one concrete resource,
// such as "/collections/lakes". Variables the test points leave unbound are
// bound to the segments of resourcePath they match.
func (e *Engine) ResolveSingleResource(api *models.APIDescription, instanceRoot, resourcePath string) []models.TestPoint {
	var points []models.TestPoint
	seen := make(map[string]bool)
	for _, tp := range e.ResolveForPattern(api, instanceRoot, resourcePath, true) {
		pinned, ok := pin(tp, resourcePath)
		if !ok {
			continue
		}
		points = appendUnique(points, seen, pinned)
	}
	return points
}

// ResolveLandingPage returns the test points of the landing page
func (e *Engine) ResolveLandingPage(api *models.APIDescription, instanceRoot string) []models.TestPoint {
	return e.ResolveForPattern(api, instanceRoot, LandingPagePath, false)
}

// ResolveConformance returns the test points of the conformance declaration
func (e *Engine) ResolveConformance(api *models.APIDescription, instanceRoot string) []models.TestPoint {
	return e.ResolveForPattern(api, instanceRoot, ConformancePath, false)
}

// ResolveCollectionsMetadata returns the test points of the collections
// resource
func (e *Engine) ResolveCollectionsMetadata(api *models.APIDescription, instanceRoot string) []models.TestPoint {
	return e.ResolveForPattern(api, instanceRoot, CollectionsPath, false)
}

// ResolveCollectionMetadata returns the test points describing one collection
func (e *Engine) ResolveCollectionMetadata(api *models.APIDescription, instanceRoot, collectionID string) []models.TestPoint {
	return e.ResolveSingleResource(api, instanceRoot, collectionResourceRoot+url.PathEscape(collectionID))
}

// ResolveCollectionItems returns the item listing test points of one
// collection
func (e *Engine) ResolveCollectionItems(api *models.APIDescription, instanceRoot, collectionID string) []models.TestPoint {
	return e.ResolveSingleResource(api, instanceRoot, collectionResourceRoot+url.PathEscape(collectionID)+"/items")
}

// ResolveFeature returns the test points of one feature of one collection
func (e *Engine) ResolveFeature(api *models.APIDescription, instanceRoot, collectionID, featureID string) []models.TestPoint {
	return e.ResolveSingleResource(api, instanceRoot,
		collectionResourceRoot+url.PathEscape(collectionID)+"/items/"+url.PathEscape(featureID))
}

// FindParameter returns the parameter called name of the method operation
// serving concretePath. Path items are searched in declaration order.
func FindParameter(api *models.APIDescription, concretePath, method, name string) (models.Parameter, bool) {
	if api == nil {
		return models.Parameter{}, false
	}
	for _, path := range api.Paths {
		if !Matches(path.Template, concretePath) {
			continue
		}
		op, ok := path.Operation(strings.ToLower(method))
		if !ok {
			continue
		}
		if p, ok := op.Parameter(name); ok {
			return p, true
		}
	}
	return models.Parameter{}, false
}

func appendUnique(points []models.TestPoint, seen map[string]bool, tp models.TestPoint) []models.TestPoint {
	key := tp.Key()
	if seen[key] {
		return points
	}
	seen[key] = true
	return append(points, tp)
}
