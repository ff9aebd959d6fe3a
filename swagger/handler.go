package swagger

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DocsUI selects which interactive documentation UI Mount serves.
type DocsUI int

const (
	DocsSwaggerUI DocsUI = iota
	DocsRapiDoc
	DocsRedoc
)

// MountConfig configures the endpoints registered by Mount.
type MountConfig struct {
	// UI selects the interactive docs UI (default: DocsSwaggerUI).
	UI DocsUI

	// Title overrides the HTML page title (default: config title).
	Title string

	// JSONFilename is the path for the JSON document endpoint
	// (default: "spec.json"). Set to "-" to disable.
	//
	// Relative paths are joined with the base path; absolute paths
	// (starting with "/") are used as-is.
	JSONFilename string

	// YAMLFilename is the path for the YAML document endpoint
	// (default: "spec.yaml"). Set to "-" to disable.
	// Follows the same absolute/relative rules as JSONFilename.
	YAMLFilename string

	// DisableDocs disables the interactive HTML docs UI endpoint.
	DisableDocs bool

	// SwaggerUIConfig provides additional SwaggerUIBundle configuration
	// options, rendered as JavaScript object properties alongside the url
	// and dom_id defaults. Only used when UI is DocsSwaggerUI.
	//
	// See: https://swagger.io/docs/open-source-tools/swagger-ui/usage/configuration/
	SwaggerUIConfig map[string]any
}

func (cfg MountConfig) jsonFilename() string {
	if cfg.JSONFilename == "" {
		return "spec.json"
	}
	return cfg.JSONFilename
}

func (cfg MountConfig) yamlFilename() string {
	if cfg.YAMLFilename == "" {
		return "spec.yaml"
	}
	return cfg.YAMLFilename
}

// resolvePath returns the full route path for a filename. Absolute
// filenames (starting with "/") are returned as-is; relative filenames are
// joined under basePath.
func resolvePath(basePath, filename string) string {
	if strings.HasPrefix(filename, "/") {
		return filename
	}
	if basePath == "" {
		return "/" + filename
	}
	return basePath + "/" + filename
}

// HandleMux is the route registration surface Mount needs from the host
// router. *http.ServeMux satisfies it.
type HandleMux interface {
	HandleFunc(pattern string, handler func(http.ResponseWriter, *http.Request))
}

// Mount registers documentation endpoints under the given base path:
//
//	<basePath>/            - interactive HTML docs (unless DisableDocs)
//	<JSONFilename path>    - document as JSON      (unless JSONFilename is "-")
//	<YAMLFilename path>    - document as YAML      (unless YAMLFilename is "-")
//
// The cfg parameter is optional; pass nil for defaults:
//
//	spec.Mount(mux, "/swagger", routes, nil)
//
// Every registered path is added to the excluded static paths set, so the
// documentation endpoints never document themselves. The document is built
// lazily on first request; a failed build is reported as a server error and
// retried on the next request.
func (s *Spec) Mount(r HandleMux, basePath string, catalog Catalog, cfg *MountConfig) {
	if cfg == nil {
		cfg = &MountConfig{}
	}
	basePath = strings.TrimRight(basePath, "/")

	jsonFile := cfg.jsonFilename()
	yamlFile := cfg.yamlFilename()

	var jsonPath, yamlPath string

	if jsonFile != "-" {
		jsonPath = resolvePath(basePath, jsonFile)
		s.ExcludeStatic(jsonPath)
		r.HandleFunc(jsonPath, s.Handler(catalog))
	}

	if yamlFile != "-" {
		yamlPath = resolvePath(basePath, yamlFile)
		s.ExcludeStatic(yamlPath)
		r.HandleFunc(yamlPath, s.HandlerYAML(catalog))
	}

	if !cfg.DisableDocs {
		specURL := jsonPath
		if specURL == "" {
			specURL = yamlPath
		}
		// Skip docs registration when no document endpoint is available.
		if specURL != "" {
			title := cfg.Title
			if title == "" {
				title = s.config.Title
			}
			docs := s.uiHandler(cfg.UI, title, specURL, cfg.SwaggerUIConfig)
			if basePath == "" {
				r.HandleFunc("/", docs)
				s.ExcludeStatic("/")
			} else {
				r.HandleFunc(basePath, docs)
				r.HandleFunc(basePath+"/", docs)
				s.ExcludeStatic(basePath, basePath+"/")
			}
		}
	}
}

// Handler returns a handler serving the assembled document as JSON. The
// document is built on first request and cached; build failures are not
// cached, so a corrected model succeeds on the next request.
func (s *Spec) Handler(catalog Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		data, err := s.documentJSON(catalog)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

// HandlerYAML returns a handler serving the assembled document as YAML,
// with the same build and caching behavior as Handler.
func (s *Spec) HandlerYAML(catalog Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		data, err := s.documentYAML(catalog)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/x-yaml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

func (s *Spec) documentJSON(catalog Catalog) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docJSON != nil {
		return s.docJSON, nil
	}
	doc, err := s.document(catalog)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	s.docJSON = data
	return data, nil
}

func (s *Spec) documentYAML(catalog Catalog) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.docYAML != nil {
		return s.docYAML, nil
	}
	doc, err := s.document(catalog)
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, err
	}
	s.docYAML = data
	return data, nil
}

// UIHandler returns a handler serving the interactive documentation page
// pointed at a document endpoint, for hosts that wire routes themselves
// instead of calling Mount.
func (s *Spec) UIHandler(ui DocsUI, specURL string) http.HandlerFunc {
	return s.uiHandler(ui, s.config.Title, specURL, nil)
}

// uiHandler serves the interactive HTML documentation page. The page is
// static given its inputs, so it is rendered once up front.
func (s *Spec) uiHandler(ui DocsUI, title, specURL string, uiConfig map[string]any) http.HandlerFunc {
	var page string
	switch ui {
	case DocsRapiDoc:
		page = rapidocTemplate(title, specURL)
	case DocsRedoc:
		page = redocTemplate(title, specURL)
	default:
		page = swaggerUITemplate(title, specURL, uiConfig)
	}
	data := []byte(page)

	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

func swaggerUITemplate(title, specPath string, config map[string]any) string {
	var extra string
	if len(config) > 0 {
		keys := make([]string, 0, len(config))
		for k := range config {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var buf strings.Builder
		for _, k := range keys {
			v, err := json.Marshal(config[k])
			if err != nil {
				continue
			}
			fmt.Fprintf(&buf, ", %s: %s", k, v)
		}
		extra = buf.String()
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist/swagger-ui-bundle.js"></script>
<script>
SwaggerUIBundle({url: %q, dom_id: "#swagger-ui"%s});
</script>
</body>
</html>`, html.EscapeString(title), specPath, extra)
}

func rapidocTemplate(title, specPath string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<script type="module" src="https://unpkg.com/rapidoc/dist/rapidoc-min.js"></script>
</head>
<body>
<rapi-doc spec-url=%q></rapi-doc>
</body>
</html>`, html.EscapeString(title), specPath)
}

func redocTemplate(title, specPath string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
</head>
<body>
<redoc spec-url=%q></redoc>
<script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
</body>
</html>`, html.EscapeString(title), specPath)
}
