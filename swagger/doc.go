// Package swagger generates a Swagger v2.0 document and an interactive
// documentation UI from annotations attached to route handlers and plain
// Go struct models.
//
// The package owns no routes and no server: the host application registers
// handlers in whatever router it uses and mirrors them into a route catalog.
// Annotations accumulate independently of handler execution, keyed by
// operation name, and are joined with the catalog into one document when it
// is first requested.
//
// See: https://swagger.io/specification/v2/
//
// # Declaring Routes
//
// Populate a RouteList alongside your router registrations:
//
//	mux := http.NewServeMux()
//	routes := swagger.NewRouteList()
//
//	mux.HandleFunc("GET /garage", getGarage)
//	routes.Add(swagger.Route{
//	    Method:    http.MethodGet,
//	    Path:      "/garage",
//	    Operation: "getGarage",
//	    Group:     "garage",
//	})
//
// Path templates support {name} and {name:macro} variables; both derive
// required path parameters, and macros (int, uuid, date, ...) set the
// parameter type.
//
// # Attaching Annotations
//
// Models are plain structs. Field names come from json tags, omitempty (or
// a pointer type) makes a field optional, and the swag tag overlays
// documentation:
//
//	type Car struct {
//	    Make  string `json:"make"`
//	    Model string `json:"model"`
//	    Year  int    `json:"year,omitempty" swag:"description=Model year,example=1967"`
//	}
//
// Attach metadata to the operation by name; attachment order does not
// matter and entries are created on first use:
//
//	spec := swagger.New(swagger.Config{Title: "Garage API", Version: "1.0.0"})
//
//	spec.Op("getGarage").
//	    Summary("Fetch the garage").
//	    Produces(Garage{})
//
//	spec.Op("addCar").
//	    Summary("Park a car").
//	    Consumes(Car{}, swagger.InBody).
//	    Response(http.StatusCreated, "Car parked", Car{})
//
// A shared struct model appears exactly once under definitions no matter
// how many operations reference it; self-referential models resolve to a
// $ref and terminate.
//
// # Groups
//
// Groups pre-populate builders with shared defaults, like a router
// blueprint. The catalog's Group field also derives a fallback tag for
// operations without explicit tags:
//
//	garage := spec.Group().
//	    Tags("garage").
//	    Response(http.StatusNotFound, "No such garage", nil)
//
//	garage.Op("getGarage").Produces(Garage{})
//
// # Serving
//
// Mount registers the document and UI endpoints on anything with a
// ServeMux-shaped HandleFunc:
//
//	spec.Mount(mux, "/swagger", routes, nil)
//	// /swagger/          -> interactive docs UI
//	// /swagger/spec.json -> document as JSON
//	// /swagger/spec.yaml -> document as YAML
//
// The document is built once on first request and cached. A build failure
// (for example, a model field of an unsupported type) fails the request
// with the offending model, field, and route named, and is not cached: the
// next request retries.
package swagger
