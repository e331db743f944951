package resource

import (
	"sort"
	"strings"

	strutil "github.com/apimeta-io/apimeta/internal/util/strings"
)

// Route is the inert HTTP route metadata derived from a descriptor's
// operation maps. It is what the consuming framework would register;
// no handlers are built here.
type Route struct {
	Method    string `json:"method"`
	Path      string `json:"path"`
	Resource  string `json:"resource"`
	Operation string `json:"operation"`
	Scope     string `json:"scope"` // collection, item, or subresource
}

// Route scopes
const (
	ScopeCollection  = "collection"
	ScopeItem        = "item"
	ScopeSubresource = "subresource"
)

// defaultMethods maps well-known operation names to HTTP methods
var defaultMethods = map[string]string{
	"get":    "GET",
	"post":   "POST",
	"put":    "PUT",
	"patch":  "PATCH",
	"delete": "DELETE",
}

// ExpandRoutes derives route metadata from a descriptor. The base path
// is the pluralized snake-case short name (falling back to the class
// name), prefixed with the routePrefix attribute when set. Operation
// configuration maps may override "method" and "path" per operation.
func ExpandRoutes(class string, d *Descriptor) []Route {
	name := d.ShortName
	if name == "" {
		name = class
	}

	base := "/" + strutil.Pluralize(strutil.ToSnakeCase(name))
	if prefix, ok := d.String("routePrefix"); ok {
		base = strings.TrimSuffix(prefix, "/") + base
	}

	var routes []Route
	routes = append(routes, expandScope(class, base, ScopeCollection, d.CollectionOperations)...)
	routes = append(routes, expandScope(class, base+"/{id}", ScopeItem, d.ItemOperations)...)

	for _, sub := range sortedOperationNames(d.SubresourceOperations) {
		routes = append(routes, Route{
			Method:    "GET",
			Path:      base + "/{id}/" + strutil.ToSnakeCase(sub),
			Resource:  class,
			Operation: sub,
			Scope:     ScopeSubresource,
		})
	}

	return routes
}

// expandScope builds routes for one operation map
func expandScope(class, path, scope string, operations map[string]interface{}) []Route {
	var routes []Route

	for _, op := range sortedOperationNames(operations) {
		method, ok := defaultMethods[strings.ToLower(op)]
		if !ok {
			// Custom operations default to GET under their own segment
			method = "GET"
		}

		route := Route{
			Method:    method,
			Path:      path,
			Resource:  class,
			Operation: op,
			Scope:     scope,
		}

		// Per-operation overrides from the operation's config map
		if config, ok := operations[op].(map[string]interface{}); ok {
			if m, ok := config["method"].(string); ok {
				route.Method = strings.ToUpper(m)
			}
			if p, ok := config["path"].(string); ok {
				route.Path = p
			}
		}

		routes = append(routes, route)
	}

	return routes
}

// sortedOperationNames returns operation names in deterministic order
func sortedOperationNames(operations map[string]interface{}) []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
