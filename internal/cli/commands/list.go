package commands

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/apimeta-io/apimeta/internal/cli/ui"
	"github.com/apimeta-io/apimeta/internal/loader"
)

var listDir string

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all registered resources",
		Long:  "Load every descriptor file and print a summary table of the registered resources.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd)
		},
	}

	cmd.Flags().StringVarP(&listDir, "dir", "d", "", "descriptor directory (default from apimeta.yml)")

	return cmd
}

func runList(cmd *cobra.Command) error {
	dir, err := resourcesDir(listDir)
	if err != nil {
		return err
	}

	registry, err := loader.LoadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to load descriptors: %w", err)
	}

	out := cmd.OutOrStdout()

	if registry.Count() == 0 {
		fmt.Fprint(out, ui.Info(fmt.Sprintf("No resources found in %s", dir), color.NoColor))
		return nil
	}

	table := ui.NewTable(out, []string{"Name", "Short Name", "Routes", "Operations"}, &ui.TableOptions{NoColor: color.NoColor})

	for _, name := range registry.List() {
		d, _ := registry.Get(name)
		routes, _ := registry.Routes(name)

		ops := len(d.CollectionOperations) + len(d.ItemOperations) + len(d.SubresourceOperations)
		table.AddRow(name, d.ShortName, strconv.Itoa(len(routes)), strconv.Itoa(ops))
	}

	table.Render()

	fmt.Fprintf(out, "\n%d resources\n", registry.Count())
	return nil
}
