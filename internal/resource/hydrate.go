package resource

import (
	"fmt"
	"sort"

	strutil "github.com/apimeta-io/apimeta/internal/util/strings"
)

// New builds a descriptor from raw construction input, detecting the
// construction mode the way the legacy annotation contract does: when
// the value in the first (description) slot is itself a configuration
// map the whole input is treated as map mode, otherwise the arguments
// are read positionally.
func New(args ...interface{}) (*Descriptor, error) {
	if len(args) > 0 {
		if config, ok := asConfigMap(args[0]); ok {
			return FromMap(config)
		}
	}
	return FromPositional(args...)
}

// FromPositional builds a descriptor from the legacy ordered parameter
// list: the seven always-public fields followed by the extension
// attributes in their historical order. Omitted trailing parameters and
// explicit nils are treated as unset.
func FromPositional(args ...interface{}) (*Descriptor, error) {
	if len(args) > len(positionalOrder) {
		return nil, fmt.Errorf("too many positional arguments: got %d, the parameter list has %d slots",
			len(args), len(positionalOrder))
	}

	config := make(map[string]interface{}, len(args))
	for i, value := range args {
		if value == nil {
			continue
		}
		config[positionalOrder[i]] = value
	}

	return FromMap(config)
}

// FromMap builds a descriptor from a single associative configuration
// map. Every key must be an always-public field name or an allow-listed
// extension attribute; values are coerced against the attribute's
// declared kind. A nil value is identical to omission.
func FromMap(config map[string]interface{}) (*Descriptor, error) {
	d := &Descriptor{attrs: make(map[string]interface{})}

	// Sorted iteration keeps failure reporting deterministic.
	names := make([]string, 0, len(config))
	for name := range config {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := config[name]
		if value == nil {
			continue
		}

		kind, ok := attributeKind(name)
		if !ok {
			return nil, &UnknownAttributeError{
				Attribute:   name,
				Suggestions: strutil.FindSimilar(name, Names(), nil),
			}
		}

		coerced, err := coerce(name, kind, value)
		if err != nil {
			return nil, err
		}

		if IsPublic(name) {
			d.setPublic(name, coerced)
		} else {
			d.attrs[name] = coerced
		}
	}

	return d, nil
}

// coerce validates a raw value against the attribute's declared kind and
// normalizes it to the canonical Go representation
func coerce(name string, kind Kind, value interface{}) (interface{}, error) {
	switch kind {
	case KindAny:
		return value, nil

	case KindString:
		if s, ok := value.(string); ok {
			return s, nil
		}

	case KindBool:
		if b, ok := value.(bool); ok {
			return b, nil
		}

	case KindInt:
		if n, ok := asInt(value); ok {
			return n, nil
		}

	case KindMap:
		if m, ok := asStringMap(value); ok {
			return m, nil
		}

	case KindStrings:
		if list, ok := asStringList(value); ok {
			return list, nil
		}
	}

	return nil, &TypeMismatchError{Attribute: name, Expected: kind, Got: value}
}

// asConfigMap reports whether a raw argument is a configuration map
func asConfigMap(value interface{}) (map[string]interface{}, bool) {
	return asStringMap(value)
}

// asInt normalizes the integer representations produced by Go literals
// and by YAML/JSON decoding. Floats are accepted only when integral.
func asInt(value interface{}) (int, bool) {
	switch n := value.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

// asStringMap normalizes map values. YAML decoding can produce
// map[interface{}]interface{}; it is accepted when every key is a string.
func asStringMap(value interface{}) (map[string]interface{}, bool) {
	switch m := value.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		result := make(map[string]interface{}, len(m))
		for key, v := range m {
			s, ok := key.(string)
			if !ok {
				return nil, false
			}
			result[s] = v
		}
		return result, true
	}
	return nil, false
}

// asStringList normalizes string-list values, accepting []interface{}
// when every element is a string
func asStringList(value interface{}) ([]string, bool) {
	switch list := value.(type) {
	case []string:
		return list, true
	case []interface{}:
		result := make([]string, 0, len(list))
		for _, v := range list {
			s, ok := v.(string)
			if !ok {
				return nil, false
			}
			result = append(result, s)
		}
		return result, true
	}
	return nil, false
}
