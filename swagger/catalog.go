package swagger

// Route describes one registered endpoint as read from the host router:
// HTTP method, path template, the operation (handler) name annotations are
// keyed by, and the owning group. The core never mutates routes.
type Route struct {
	Method    string
	Path      string
	Operation string
	Group     string
}

// Catalog is the boundary to the host router. Routes enumerates every
// registered non-static endpoint; StaticPaths enumerates static-asset paths
// that must never appear in the document. Enumeration order is the
// document's ordering anchor, so implementations should keep it stable.
type Catalog interface {
	Routes() []Route
	StaticPaths() []string
}

// RouteList is an in-memory Catalog that applications populate while
// registering handlers in whatever router they use:
//
//	routes := swagger.NewRouteList()
//	mux.HandleFunc("GET /garage", getGarage)
//	routes.Add(swagger.Route{Method: "GET", Path: "/garage", Operation: "getGarage", Group: "garage"})
//
// Routes are unique on (method, path): re-adding replaces the earlier entry
// in place, keeping its position.
type RouteList struct {
	routes []Route
	index  map[[2]string]int
	static []string
}

// NewRouteList creates an empty route list.
func NewRouteList() *RouteList {
	return &RouteList{index: make(map[[2]string]int)}
}

// Add registers a route, replacing any earlier route with the same method
// and path.
func (l *RouteList) Add(route Route) *RouteList {
	key := [2]string{route.Method, route.Path}
	if i, ok := l.index[key]; ok {
		l.routes[i] = route
		return l
	}
	l.index[key] = len(l.routes)
	l.routes = append(l.routes, route)
	return l
}

// AddStatic registers static-asset paths excluded from the document.
func (l *RouteList) AddStatic(paths ...string) *RouteList {
	l.static = append(l.static, paths...)
	return l
}

// Routes returns the registered routes in registration order.
func (l *RouteList) Routes() []Route {
	out := make([]Route, len(l.routes))
	copy(out, l.routes)
	return out
}

// StaticPaths returns the registered static-asset paths.
func (l *RouteList) StaticPaths() []string {
	out := make([]string, len(l.static))
	copy(out, l.static)
	return out
}
