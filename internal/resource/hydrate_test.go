package resource

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMap(t *testing.T) {
	t.Run("round-trip identity for legal keys", func(t *testing.T) {
		config := map[string]interface{}{
			"shortName":              "Book",
			"description":            "A book resource",
			"iri":                    "https://schema.org/Book",
			"itemOperations":         map[string]interface{}{"get": map[string]interface{}{}},
			"paginationEnabled":      true,
			"routePrefix":            "/library",
			"paginationItemsPerPage": 25,
			"filters":                []string{"book.search", "book.date"},
			"normalizationContext": map[string]interface{}{
				"groups": []interface{}{"book:read"},
			},
		}

		d, err := FromMap(config)
		require.NoError(t, err)

		assert.Equal(t, "Book", d.ShortName)
		assert.Equal(t, "A book resource", d.Description)
		assert.Equal(t, "https://schema.org/Book", d.IRI)
		assert.Equal(t, map[string]interface{}{"get": map[string]interface{}{}}, d.ItemOperations)

		enabled, ok := d.Bool("paginationEnabled")
		assert.True(t, ok)
		assert.True(t, enabled)

		perPage, ok := d.Int("paginationItemsPerPage")
		assert.True(t, ok)
		assert.Equal(t, 25, perPage)

		prefix, ok := d.String("routePrefix")
		assert.True(t, ok)
		assert.Equal(t, "/library", prefix)

		filters, ok := d.Strings("filters")
		assert.True(t, ok)
		assert.Equal(t, []string{"book.search", "book.date"}, filters)

		ctx, ok := d.Map("normalizationContext")
		assert.True(t, ok)
		assert.Contains(t, ctx, "groups")
	})

	t.Run("omitted attributes read back as unset", func(t *testing.T) {
		d, err := FromMap(map[string]interface{}{"shortName": "Book"})
		require.NoError(t, err)

		for _, name := range []string{"paginationEnabled", "security", "stateless", "maximumItemsPerPage"} {
			_, ok := d.Attribute(name)
			assert.False(t, ok, "attribute %s should be unset", name)
		}
	})

	t.Run("unrecognized key fails with UnknownAttributeError", func(t *testing.T) {
		_, err := FromMap(map[string]interface{}{"totallyBogusField": true})
		require.Error(t, err)

		var unknownErr *UnknownAttributeError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "totallyBogusField", unknownErr.Attribute)
	})

	t.Run("unknown key carries did-you-mean suggestions", func(t *testing.T) {
		_, err := FromMap(map[string]interface{}{"paginationEnabld": true})
		require.Error(t, err)

		var unknownErr *UnknownAttributeError
		require.ErrorAs(t, err, &unknownErr)
		assert.Contains(t, unknownErr.Suggestions, "paginationEnabled")
	})

	t.Run("validation is case-sensitive", func(t *testing.T) {
		_, err := FromMap(map[string]interface{}{"paginationenabled": true})
		var unknownErr *UnknownAttributeError
		require.ErrorAs(t, err, &unknownErr)
	})

	t.Run("type mismatch fails with attribute and expected kind", func(t *testing.T) {
		_, err := FromMap(map[string]interface{}{"paginationItemsPerPage": "not-a-number"})
		require.Error(t, err)

		var mismatchErr *TypeMismatchError
		require.ErrorAs(t, err, &mismatchErr)
		assert.Equal(t, "paginationItemsPerPage", mismatchErr.Attribute)
		assert.Equal(t, KindInt, mismatchErr.Expected)
		assert.Equal(t, "not-a-number", mismatchErr.Got)
	})

	t.Run("first error is reported deterministically", func(t *testing.T) {
		_, err := FromMap(map[string]interface{}{
			"zzzBogus":          true,
			"aaaAlsoBogus":      true,
			"paginationEnabled": false,
		})
		var unknownErr *UnknownAttributeError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "aaaAlsoBogus", unknownErr.Attribute)
	})

	t.Run("explicit nil is identical to omission", func(t *testing.T) {
		d, err := FromMap(map[string]interface{}{
			"shortName":         "Book",
			"paginationEnabled": nil,
		})
		require.NoError(t, err)

		_, ok := d.Attribute("paginationEnabled")
		assert.False(t, ok)
	})

	t.Run("both maximum items names are independent", func(t *testing.T) {
		d, err := FromMap(map[string]interface{}{
			"maximumItemsPerPage":           10,
			"paginationMaximumItemsPerPage": 20,
		})
		require.NoError(t, err)

		legacy, ok := d.Int("maximumItemsPerPage")
		assert.True(t, ok)
		assert.Equal(t, 10, legacy)

		current, ok := d.Int("paginationMaximumItemsPerPage")
		assert.True(t, ok)
		assert.Equal(t, 20, current)
	})

	t.Run("configured false is distinct from unset", func(t *testing.T) {
		d, err := FromMap(map[string]interface{}{
			"shortName":         "Book",
			"itemOperations":    map[string]interface{}{"get": map[string]interface{}{}},
			"paginationEnabled": false,
		})
		require.NoError(t, err)

		assert.Equal(t, "Book", d.ShortName)
		assert.Equal(t, map[string]interface{}{"get": map[string]interface{}{}}, d.ItemOperations)

		enabled, ok := d.Bool("paginationEnabled")
		assert.True(t, ok)
		assert.False(t, enabled)

		// Everything else stays unset
		assert.Len(t, d.Attributes(), 1)
	})

	t.Run("build is idempotent over its own output", func(t *testing.T) {
		original, err := FromMap(map[string]interface{}{
			"shortName":              "Order",
			"description":            "Customer orders",
			"collectionOperations":   map[string]interface{}{"get": map[string]interface{}{}, "post": map[string]interface{}{}},
			"paginationEnabled":      true,
			"paginationItemsPerPage": 50,
			"security":               `is_granted("ROLE_USER")`,
			"validationGroups":       []string{"order:write"},
		})
		require.NoError(t, err)

		rebuilt, err := FromMap(original.ConfigMap())
		require.NoError(t, err)

		if diff := cmp.Diff(original.ConfigMap(), rebuilt.ConfigMap()); diff != "" {
			t.Errorf("rebuilt descriptor differs (-want +got):\n%s", diff)
		}
	})

	t.Run("yaml-shaped input is normalized", func(t *testing.T) {
		d, err := FromMap(map[string]interface{}{
			"paginationItemsPerPage": float64(30), // JSON decoding shape
			"filters":                []interface{}{"a", "b"},
			"cacheHeaders": map[interface{}]interface{}{
				"max_age": 60,
			},
		})
		require.NoError(t, err)

		n, _ := d.Int("paginationItemsPerPage")
		assert.Equal(t, 30, n)

		filters, _ := d.Strings("filters")
		assert.Equal(t, []string{"a", "b"}, filters)

		headers, ok := d.Map("cacheHeaders")
		assert.True(t, ok)
		assert.Equal(t, 60, headers["max_age"])
	})

	t.Run("non-integral float is a type mismatch", func(t *testing.T) {
		_, err := FromMap(map[string]interface{}{"paginationItemsPerPage": 12.5})
		var mismatchErr *TypeMismatchError
		require.ErrorAs(t, err, &mismatchErr)
	})
}

func TestFromPositional(t *testing.T) {
	t.Run("positional and map construction are equivalent", func(t *testing.T) {
		fromArgs, err := FromPositional(
			"A book resource", // description
			map[string]interface{}{"get": map[string]interface{}{}}, // collectionOperations
			nil,                       // graphql
			"https://schema.org/Book", // iri
			map[string]interface{}{"get": map[string]interface{}{}}, // itemOperations
			"Book", // shortName
		)
		require.NoError(t, err)

		fromMap, err := FromMap(map[string]interface{}{
			"description":          "A book resource",
			"collectionOperations": map[string]interface{}{"get": map[string]interface{}{}},
			"iri":                  "https://schema.org/Book",
			"itemOperations":       map[string]interface{}{"get": map[string]interface{}{}},
			"shortName":            "Book",
		})
		require.NoError(t, err)

		if diff := cmp.Diff(fromMap.ConfigMap(), fromArgs.ConfigMap()); diff != "" {
			t.Errorf("construction modes disagree (-map +positional):\n%s", diff)
		}
	})

	t.Run("extension slots follow the public slots", func(t *testing.T) {
		args := make([]interface{}, len(publicFields)+1)
		args[len(publicFields)] = map[string]interface{}{"custom": "value"} // attributes slot

		d, err := FromPositional(args...)
		require.NoError(t, err)

		attrs, ok := d.Map("attributes")
		assert.True(t, ok)
		assert.Equal(t, "value", attrs["custom"])
	})

	t.Run("too many arguments fail", func(t *testing.T) {
		args := make([]interface{}, len(positionalOrder)+1)
		_, err := FromPositional(args...)
		assert.Error(t, err)
	})

	t.Run("positional type mismatch surfaces the slot name", func(t *testing.T) {
		_, err := FromPositional(42) // description slot expects a string
		var mismatchErr *TypeMismatchError
		require.ErrorAs(t, err, &mismatchErr)
		assert.Equal(t, "description", mismatchErr.Attribute)
	})
}

func TestNew(t *testing.T) {
	t.Run("map in the description slot switches to map mode", func(t *testing.T) {
		d, err := New(map[string]interface{}{
			"shortName":         "Book",
			"paginationEnabled": false,
		})
		require.NoError(t, err)
		assert.Equal(t, "Book", d.ShortName)

		enabled, ok := d.Bool("paginationEnabled")
		assert.True(t, ok)
		assert.False(t, enabled)
	})

	t.Run("scalar in the description slot stays positional", func(t *testing.T) {
		d, err := New("A plain description")
		require.NoError(t, err)
		assert.Equal(t, "A plain description", d.Description)
	})

	t.Run("no arguments yields an empty descriptor", func(t *testing.T) {
		d, err := New()
		require.NoError(t, err)
		assert.Empty(t, d.ShortName)
		assert.Empty(t, d.Attributes())
	})
}
