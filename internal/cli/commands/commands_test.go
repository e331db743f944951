package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDescriptors(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	content := `resources:
  App\Entity\Book:
    shortName: Book
    description: A book in the catalog
    collectionOperations:
      get: {}
      post: {}
    itemOperations:
      get: {}
    paginationEnabled: true
    paginationItemsPerPage: 30
  Order:
    itemOperations:
      get: {}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.yml"), []byte(content), 0644))
	return dir
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	root := NewRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

func TestValidateCommand(t *testing.T) {
	t.Run("valid descriptors", func(t *testing.T) {
		dir := writeDescriptors(t)

		output, err := runCommand(t, "validate", "--dir", dir)
		require.NoError(t, err)
		assert.Contains(t, output, "descriptor files are valid")
	})

	t.Run("unknown attribute", func(t *testing.T) {
		dir := t.TempDir()
		content := `resources:
  Book:
    paginationEnabld: true
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "book.yml"), []byte(content), 0644))

		output, err := runCommand(t, "validate", "--dir", dir)
		require.Error(t, err)
		assert.Contains(t, output, "paginationEnabld")
		assert.Contains(t, output, "Did you mean: paginationEnabled")
	})

	t.Run("empty directory", func(t *testing.T) {
		output, err := runCommand(t, "validate", "--dir", t.TempDir())
		require.NoError(t, err)
		assert.Contains(t, output, "No descriptor files found")
	})
}

func TestListCommand(t *testing.T) {
	dir := writeDescriptors(t)

	output, err := runCommand(t, "list", "--dir", dir)
	require.NoError(t, err)

	assert.Contains(t, output, "App\\Entity\\Book")
	assert.Contains(t, output, "Book")
	assert.Contains(t, output, "Order")
	assert.Contains(t, output, "2 resources")
}

func TestDescribeCommand(t *testing.T) {
	dir := writeDescriptors(t)

	t.Run("found", func(t *testing.T) {
		output, err := runCommand(t, "describe", "App\\Entity\\Book", "--dir", dir)
		require.NoError(t, err)

		assert.Contains(t, output, "Short Name:")
		assert.Contains(t, output, "A book in the catalog")
		assert.Contains(t, output, "Collection Operations")
		assert.Contains(t, output, "/books")
		assert.Contains(t, output, "/books/{id}")
	})

	t.Run("not found with suggestions", func(t *testing.T) {
		output, err := runCommand(t, "describe", "Ordr", "--dir", dir)
		require.Error(t, err)

		assert.Contains(t, output, "RESOURCE NOT FOUND")
		assert.Contains(t, output, "Did you mean: Order")
	})
}

func TestVersionCommand(t *testing.T) {
	_, err := runCommand(t, "version")
	require.NoError(t, err)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := NewRootCommand()

	expected := []string{"version", "init", "validate", "list", "describe", "serve"}
	for _, name := range expected {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		assert.True(t, found, "missing subcommand %s", name)
	}
}
