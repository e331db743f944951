package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/apimeta-io/apimeta/internal/cli/ui"
	"github.com/apimeta-io/apimeta/internal/resource"
	strutil "github.com/apimeta-io/apimeta/internal/util/strings"
)

var (
	initDir   string
	initForce bool
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <resource>",
		Short: "Create a new resource descriptor interactively",
		Long: `Create a descriptor file for a new resource.

Prompts for the common attributes and writes a validated YAML
descriptor into the resources directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, args[0])
		},
	}

	cmd.Flags().StringVarP(&initDir, "dir", "d", "", "descriptor directory (default from apimeta.yml)")
	cmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing descriptor file")

	return cmd
}

func runInit(cmd *cobra.Command, class string) error {
	dir, err := resourcesDir(initDir)
	if err != nil {
		return err
	}

	config, err := promptDescriptorConfig(class)
	if err != nil {
		return err
	}

	// Hydrate before writing so a broken answer set never reaches disk
	if _, err := resource.FromMap(config); err != nil {
		return fmt.Errorf("descriptor for %s is invalid: %w", class, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	path := filepath.Join(dir, strutil.ToSnakeCase(class)+".yml")
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	doc := map[string]interface{}{
		"resources": map[string]interface{}{
			class: config,
		},
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize descriptor: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	ui.WriteSuccess(cmd.OutOrStdout(), fmt.Sprintf("Created %s", path), color.NoColor)
	return nil
}

// promptDescriptorConfig collects descriptor attributes interactively
func promptDescriptorConfig(class string) (map[string]interface{}, error) {
	config := make(map[string]interface{})

	var shortName string
	if err := survey.AskOne(&survey.Input{
		Message: "Short name:",
		Default: class,
	}, &shortName); err != nil {
		return nil, err
	}
	if shortName != "" {
		config["shortName"] = shortName
	}

	var description string
	if err := survey.AskOne(&survey.Input{
		Message: "Description:",
	}, &description); err != nil {
		return nil, err
	}
	if description != "" {
		config["description"] = description
	}

	var collectionOps []string
	if err := survey.AskOne(&survey.MultiSelect{
		Message: "Collection operations:",
		Options: []string{"get", "post"},
		Default: []string{"get", "post"},
	}, &collectionOps); err != nil {
		return nil, err
	}
	if len(collectionOps) > 0 {
		config["collectionOperations"] = operationMap(collectionOps)
	}

	var itemOps []string
	if err := survey.AskOne(&survey.MultiSelect{
		Message: "Item operations:",
		Options: []string{"get", "put", "patch", "delete"},
		Default: []string{"get", "put", "delete"},
	}, &itemOps); err != nil {
		return nil, err
	}
	if len(itemOps) > 0 {
		config["itemOperations"] = operationMap(itemOps)
	}

	var pagination bool
	if err := survey.AskOne(&survey.Confirm{
		Message: "Enable pagination?",
		Default: true,
	}, &pagination); err != nil {
		return nil, err
	}
	config["paginationEnabled"] = pagination

	if pagination {
		var perPage string
		if err := survey.AskOne(&survey.Input{
			Message: "Items per page:",
			Default: "30",
		}, &perPage); err != nil {
			return nil, err
		}
		if perPage != "" {
			n, err := strconv.Atoi(strings.TrimSpace(perPage))
			if err != nil {
				return nil, fmt.Errorf("invalid items per page: %w", err)
			}
			config["paginationItemsPerPage"] = n
		}
	}

	return config, nil
}

// operationMap builds the descriptor operation map for selected names
func operationMap(names []string) map[string]interface{} {
	ops := make(map[string]interface{}, len(names))
	for _, name := range names {
		ops[name] = map[string]interface{}{}
	}
	return ops
}
