package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apimeta-io/apimeta/internal/resource"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "book.yml", `
resources:
  Book:
    shortName: Book
    description: A book resource
    itemOperations:
      get: {}
    paginationEnabled: false
    paginationItemsPerPage: 25
`)

		descriptors, err := LoadFile(path)
		require.NoError(t, err)
		require.Contains(t, descriptors, "Book")

		d := descriptors["Book"]
		assert.Equal(t, "Book", d.ShortName)
		assert.Equal(t, "A book resource", d.Description)

		enabled, ok := d.Bool("paginationEnabled")
		assert.True(t, ok)
		assert.False(t, enabled)

		perPage, ok := d.Int("paginationItemsPerPage")
		assert.True(t, ok)
		assert.Equal(t, 25, perPage)
	})

	t.Run("unknown attribute carries file and class context", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "bad.yml", `
resources:
  Book:
    totallyBogusField: true
`)

		_, err := LoadFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad.yml")
		assert.Contains(t, err.Error(), "Book")

		var unknownErr *resource.UnknownAttributeError
		assert.ErrorAs(t, err, &unknownErr)
	})

	t.Run("invalid yaml fails", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "broken.yml", "resources: [not a map")

		_, err := LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
	})
}

func TestLoadDir(t *testing.T) {
	t.Run("loads every yaml file recursively", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "book.yml", `
resources:
  Book:
    shortName: Book
`)
		sub := filepath.Join(dir, "shop")
		require.NoError(t, os.Mkdir(sub, 0o755))
		writeFile(t, sub, "order.yaml", `
resources:
  Order:
    shortName: Order
`)
		writeFile(t, dir, "README.md", "not a descriptor")

		registry, err := LoadDir(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"Book", "Order"}, registry.List())
	})

	t.Run("duplicate class across files fails", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.yml", "resources:\n  Book:\n    shortName: Book\n")
		writeFile(t, dir, "b.yml", "resources:\n  Book:\n    shortName: Book\n")

		_, err := LoadDir(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")
	})
}
