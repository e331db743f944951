package commands

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/apimeta-io/apimeta/internal/cli/ui"
	"github.com/apimeta-io/apimeta/internal/loader"
	strutil "github.com/apimeta-io/apimeta/internal/util/strings"
)

var describeDir string

// NewDescribeCommand creates the describe command
func NewDescribeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe <resource>",
		Short: "Show the full configuration of a resource",
		Long:  "Print the descriptor attributes, operations, and expanded routes for a single resource.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribe(cmd, args[0])
		},
	}

	cmd.Flags().StringVarP(&describeDir, "dir", "d", "", "descriptor directory (default from apimeta.yml)")

	return cmd
}

func runDescribe(cmd *cobra.Command, name string) error {
	dir, err := resourcesDir(describeDir)
	if err != nil {
		return err
	}

	registry, err := loader.LoadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to load descriptors: %w", err)
	}

	out := cmd.OutOrStdout()

	d, ok := registry.Get(name)
	if !ok {
		suggestions := strutil.FindSimilar(name, registry.List(), nil)
		fmt.Fprint(out, ui.ResourceNotFoundError(name, suggestions, color.NoColor))
		return fmt.Errorf("resource %s not found", name)
	}

	ui.Header(out, name, color.NoColor)
	fmt.Fprintln(out)

	kv := ui.NewKeyValueTable(out, color.NoColor)
	if d.ShortName != "" {
		kv.AddRow("Short Name", d.ShortName)
	}
	if d.Description != "" {
		kv.AddRow("Description", d.Description)
	}
	if d.IRI != "" {
		kv.AddRow("IRI", d.IRI)
	}
	if reason, ok := d.String("deprecationReason"); ok {
		kv.AddRow("Deprecated", reason)
	}
	if enabled, ok := d.Bool("paginationEnabled"); ok {
		kv.AddRow("Pagination", strconv.FormatBool(enabled))
	}
	if perPage, ok := d.Int("paginationItemsPerPage"); ok {
		kv.AddRow("Items Per Page", strconv.Itoa(perPage))
	}
	if security, ok := d.String("security"); ok {
		kv.AddRow("Security", security)
	}
	kv.Render()
	fmt.Fprintln(out)

	writeOperationSection(out, "Collection Operations", d.CollectionOperations)
	writeOperationSection(out, "Item Operations", d.ItemOperations)
	writeOperationSection(out, "Subresource Operations", d.SubresourceOperations)
	writeOperationSection(out, "GraphQL Operations", d.Graphql)

	routes, _ := registry.Routes(name)
	if len(routes) > 0 {
		table := ui.NewTable(out, []string{"Method", "Path", "Operation", "Scope"}, &ui.TableOptions{NoColor: color.NoColor})
		for _, route := range routes {
			table.AddRow(route.Method, route.Path, route.Operation, route.Scope)
		}
		table.Render()
	}

	return nil
}

func writeOperationSection(out io.Writer, title string, ops map[string]interface{}) {
	if len(ops) == 0 {
		return
	}

	names := make([]string, 0, len(ops))
	for op := range ops {
		names = append(names, op)
	}
	sort.Strings(names)

	section := ui.NewSection(out, title, color.NoColor)
	for _, op := range names {
		section.AddLine(op)
	}
	section.Render()
}
