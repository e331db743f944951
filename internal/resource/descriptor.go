package resource

// Descriptor is the normalized resource metadata produced by construction.
// The always-public fields are plain struct fields; extension attributes
// live in an internal map where absence is the "unset" sentinel, so the
// consuming framework can distinguish "not configured" from "configured
// as false/0/empty".
//
// A descriptor is fixed after construction: no mutation API is exposed.
type Descriptor struct {
	ShortName   string
	Description string
	IRI         string

	CollectionOperations  map[string]interface{}
	ItemOperations        map[string]interface{}
	SubresourceOperations map[string]interface{}
	Graphql               map[string]interface{}

	// Extension attributes keyed by allow-listed name. Only set names
	// are present.
	attrs map[string]interface{}
}

// Attribute returns the configured value for an attribute name.
// For always-public fields it reads the corresponding struct field;
// ok is false when the attribute was never configured.
func (d *Descriptor) Attribute(name string) (interface{}, bool) {
	switch name {
	case AttrShortName:
		return d.ShortName, d.ShortName != ""
	case AttrDescription:
		return d.Description, d.Description != ""
	case AttrIRI:
		return d.IRI, d.IRI != ""
	case AttrCollectionOperations:
		return d.CollectionOperations, d.CollectionOperations != nil
	case AttrItemOperations:
		return d.ItemOperations, d.ItemOperations != nil
	case AttrSubresourceOperations:
		return d.SubresourceOperations, d.SubresourceOperations != nil
	case AttrGraphql:
		return d.Graphql, d.Graphql != nil
	}

	value, ok := d.attrs[name]
	return value, ok
}

// Bool returns a bool attribute. ok is false when the attribute is
// unset or not a bool.
func (d *Descriptor) Bool(name string) (bool, bool) {
	value, ok := d.Attribute(name)
	if !ok {
		return false, false
	}
	b, ok := value.(bool)
	return b, ok
}

// Int returns an int attribute. ok is false when the attribute is unset
// or not an int.
func (d *Descriptor) Int(name string) (int, bool) {
	value, ok := d.Attribute(name)
	if !ok {
		return 0, false
	}
	n, ok := value.(int)
	return n, ok
}

// String returns a string attribute. ok is false when the attribute is
// unset or not a string.
func (d *Descriptor) String(name string) (string, bool) {
	value, ok := d.Attribute(name)
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// Map returns a map attribute. ok is false when the attribute is unset
// or not a map.
func (d *Descriptor) Map(name string) (map[string]interface{}, bool) {
	value, ok := d.Attribute(name)
	if !ok {
		return nil, false
	}
	m, ok := value.(map[string]interface{})
	return m, ok
}

// Strings returns a string-list attribute. ok is false when the
// attribute is unset or not a string list.
func (d *Descriptor) Strings(name string) ([]string, bool) {
	value, ok := d.Attribute(name)
	if !ok {
		return nil, false
	}
	list, ok := value.([]string)
	return list, ok
}

// Attributes returns a copy of the set extension attributes keyed by name
func (d *Descriptor) Attributes() map[string]interface{} {
	result := make(map[string]interface{}, len(d.attrs))
	for name, value := range d.attrs {
		result[name] = value
	}
	return result
}

// ConfigMap re-emits the descriptor's normalized configuration as a map
// suitable for FromMap. Building a descriptor from its own ConfigMap
// yields an identical descriptor.
func (d *Descriptor) ConfigMap() map[string]interface{} {
	config := make(map[string]interface{}, len(d.attrs)+len(publicFields))

	for _, name := range publicFields {
		if value, ok := d.Attribute(name); ok {
			config[name] = value
		}
	}
	for name, value := range d.attrs {
		config[name] = value
	}

	return config
}

// setPublic assigns a coerced value to an always-public field
func (d *Descriptor) setPublic(name string, value interface{}) {
	switch name {
	case AttrShortName:
		d.ShortName = value.(string)
	case AttrDescription:
		d.Description = value.(string)
	case AttrIRI:
		d.IRI = value.(string)
	case AttrCollectionOperations:
		d.CollectionOperations = value.(map[string]interface{})
	case AttrItemOperations:
		d.ItemOperations = value.(map[string]interface{})
	case AttrSubresourceOperations:
		d.SubresourceOperations = value.(map[string]interface{})
	case AttrGraphql:
		d.Graphql = value.(map[string]interface{})
	}
}
