package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/apimeta-io/apimeta/internal/cli/config"
	"github.com/apimeta-io/apimeta/internal/cli/ui"
	"github.com/apimeta-io/apimeta/internal/loader"
	"github.com/apimeta-io/apimeta/internal/resource"
)

var validateDir string

// NewValidateCommand creates the validate command
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate resource descriptor files",
		Long: `Validate all descriptor files in the resources directory.

Every attribute name is checked against the supported attribute set and
every value against its declared type. Unknown attributes produce
did-you-mean suggestions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd)
		},
	}

	cmd.Flags().StringVarP(&validateDir, "dir", "d", "", "descriptor directory (default from apimeta.yml)")

	return cmd
}

func runValidate(cmd *cobra.Command) error {
	dir, err := resourcesDir(validateDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	failures := 0
	files := 0

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isDescriptorFile(path) {
			return nil
		}

		files++
		if _, err := loader.LoadFile(path); err != nil {
			failures++
			fmt.Fprint(out, formatLoadError(path, err))
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("failed to scan %s: %w", dir, walkErr)
	}

	if files == 0 {
		fmt.Fprint(out, ui.Warning(fmt.Sprintf("No descriptor files found in %s", dir), nil, color.NoColor))
		return nil
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d descriptor files failed validation", failures, files)
	}

	ui.WriteSuccess(out, fmt.Sprintf("All %d descriptor files are valid", files), color.NoColor)
	return nil
}

// formatLoadError renders a loader error, surfacing attribute
// suggestions when the cause is an unknown attribute
func formatLoadError(path string, err error) string {
	var unknown *resource.UnknownAttributeError
	if errors.As(err, &unknown) {
		return ui.ValidationError(
			fmt.Sprintf("%s: unknown attribute %q", path, unknown.Attribute),
			unknown.Suggestions,
			color.NoColor,
		)
	}

	var mismatch *resource.TypeMismatchError
	if errors.As(err, &mismatch) {
		return ui.ValidationError(fmt.Sprintf("%s: %s", path, mismatch.Error()), nil, color.NoColor)
	}

	return ui.ValidationError(fmt.Sprintf("%s: %s", path, err.Error()), nil, color.NoColor)
}

func isDescriptorFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return true
	}
	return false
}

// resourcesDir resolves the descriptor directory from the flag or the
// project configuration
func resourcesDir(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	return cfg.Resources.Dir, nil
}
