// Package resource implements declarative API resource descriptors.
// A descriptor is attached to a domain class and tells the surrounding
// framework how to expose that class as an API resource: HTTP operations,
// serialization contexts, pagination, security expressions, and so on.
// The package validates, defaults, and normalizes the raw configuration;
// it performs no routing, serialization, or query building itself.
package resource

import "sort"

// Kind represents the declared semantic type of a configuration attribute
type Kind int

const (
	// KindAny accepts any value without coercion
	KindAny Kind = iota
	KindString
	KindBool
	KindInt
	KindMap
	KindStrings
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindMap:
		return "map"
	case KindStrings:
		return "string list"
	default:
		return "unknown"
	}
}

// Always-public field names. These are exposed as top-level descriptor
// fields regardless of construction mode.
const (
	AttrDescription           = "description"
	AttrCollectionOperations  = "collectionOperations"
	AttrGraphql               = "graphql"
	AttrIRI                   = "iri"
	AttrItemOperations        = "itemOperations"
	AttrShortName             = "shortName"
	AttrSubresourceOperations = "subresourceOperations"
)

// publicFields lists the always-public fields in their legacy positional
// order. The description slot comes first: a map in that slot switches
// construction to map mode.
var publicFields = []string{
	AttrDescription,
	AttrCollectionOperations,
	AttrGraphql,
	AttrIRI,
	AttrItemOperations,
	AttrShortName,
	AttrSubresourceOperations,
}

// extensionKinds is the allow-list of extension attributes and their
// declared kinds. Names absent from this table (and from publicFields)
// are rejected at construction time.
//
// Both maximumItemsPerPage and paginationMaximumItemsPerPage are listed:
// the former is the deprecated historical spelling and the two are kept
// as independent attributes. The consuming framework decides which one
// wins when both are set.
var extensionKinds = map[string]Kind{
	"attributes":                     KindMap,
	"cacheHeaders":                   KindMap,
	"collectionOperations":           KindMap,
	"denormalizationContext":         KindMap,
	"deprecationReason":              KindString,
	"description":                    KindString,
	"elasticsearch":                  KindBool,
	"fetchPartial":                   KindBool,
	"filters":                        KindStrings,
	"forceEager":                     KindBool,
	"formats":                        KindAny,
	"graphql":                        KindMap,
	"hydraContext":                   KindMap,
	"input":                          KindAny,
	"iri":                            KindString,
	"itemOperations":                 KindMap,
	"maximumItemsPerPage":            KindInt,
	"mercure":                        KindAny,
	"messenger":                      KindAny,
	"normalizationContext":           KindMap,
	"openapiContext":                 KindMap,
	"order":                          KindAny,
	"output":                         KindAny,
	"paginationClientEnabled":        KindBool,
	"paginationClientItemsPerPage":   KindBool,
	"paginationClientPartial":        KindBool,
	"paginationEnabled":              KindBool,
	"paginationFetchJoinCollection":  KindBool,
	"paginationItemsPerPage":         KindInt,
	"paginationMaximumItemsPerPage":  KindInt,
	"paginationPartial":              KindBool,
	"paginationViaCursor":            KindAny,
	"routePrefix":                    KindString,
	"security":                       KindString,
	"securityMessage":                KindString,
	"securityPostDenormalize":        KindString,
	"securityPostDenormalizeMessage": KindString,
	"stateless":                      KindBool,
	"sunset":                         KindString,
	"swaggerContext":                 KindMap,
	"urlGenerationStrategy":          KindInt,
	"validationGroups":               KindStrings,
}

// publicKinds declares the kinds of the always-public fields for the
// two names that are not also allow-listed extension attributes.
var publicKinds = map[string]Kind{
	AttrShortName:             KindString,
	AttrSubresourceOperations: KindMap,
}

// extensionOrder lists the extension-only attributes (allow-listed names
// that are not always-public fields) in their legacy positional order.
var extensionOrder = []string{
	"attributes",
	"cacheHeaders",
	"denormalizationContext",
	"deprecationReason",
	"elasticsearch",
	"fetchPartial",
	"filters",
	"forceEager",
	"formats",
	"hydraContext",
	"input",
	"maximumItemsPerPage",
	"mercure",
	"messenger",
	"normalizationContext",
	"openapiContext",
	"order",
	"output",
	"paginationClientEnabled",
	"paginationClientItemsPerPage",
	"paginationClientPartial",
	"paginationEnabled",
	"paginationFetchJoinCollection",
	"paginationItemsPerPage",
	"paginationMaximumItemsPerPage",
	"paginationPartial",
	"paginationViaCursor",
	"routePrefix",
	"security",
	"securityMessage",
	"securityPostDenormalize",
	"securityPostDenormalizeMessage",
	"stateless",
	"sunset",
	"swaggerContext",
	"urlGenerationStrategy",
	"validationGroups",
}

// positionalOrder is the full legacy parameter order: the always-public
// fields followed by the extension-only attributes.
var positionalOrder = append(append([]string{}, publicFields...), extensionOrder...)

// attributeKind resolves the declared kind of a legal attribute name.
// The second return value is false for names outside the union of the
// always-public fields and the extension allow-list.
func attributeKind(name string) (Kind, bool) {
	if kind, ok := extensionKinds[name]; ok {
		return kind, true
	}
	kind, ok := publicKinds[name]
	return kind, ok
}

// IsPublic reports whether name is an always-public descriptor field
func IsPublic(name string) bool {
	for _, n := range publicFields {
		if n == name {
			return true
		}
	}
	return false
}

// Names returns all legal attribute names (public and extension) sorted
// lexically. The slice is freshly allocated on each call.
func Names() []string {
	seen := make(map[string]struct{}, len(extensionKinds)+len(publicFields))
	names := make([]string, 0, len(extensionKinds)+len(publicFields))
	for name := range extensionKinds {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	for _, name := range publicFields {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
