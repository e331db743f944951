package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestFormatError(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		opts     ErrorOptions
		contains []string
	}{
		{
			name: "basic error",
			opts: ErrorOptions{
				Level:   ErrorLevelError,
				Context: "RESOURCE NOT FOUND",
				Problem: "Cannot find resource 'Book'.",
			},
			contains: []string{
				"❌",
				"RESOURCE NOT FOUND",
				"Cannot find resource 'Book'.",
			},
		},
		{
			name: "error with suggestions",
			opts: ErrorOptions{
				Level:       ErrorLevelError,
				Context:     "RESOURCE NOT FOUND",
				Problem:     "Cannot find resource 'Bok'.",
				Suggestions: []string{"Book", "Order"},
			},
			contains: []string{
				"Did you mean: Book, Order?",
			},
		},
		{
			name: "error with help commands",
			opts: ErrorOptions{
				Level:   ErrorLevelError,
				Context: "VALIDATION FAILED",
				Problem: "Unknown attribute in descriptor",
				HelpCommands: []string{
					"Validate descriptors: apimeta validate",
					"Get help: apimeta validate --help",
				},
			},
			contains: []string{
				"→ Validate descriptors: apimeta validate",
				"→ Get help: apimeta validate --help",
			},
		},
		{
			name: "warning message",
			opts: ErrorOptions{
				Level:   ErrorLevelWarning,
				Problem: "Deprecated attribute used",
			},
			contains: []string{
				"⚠️",
				"Deprecated attribute used",
			},
		},
		{
			name: "info message",
			opts: ErrorOptions{
				Level:   ErrorLevelInfo,
				Problem: "Loaded 12 resources",
			},
			contains: []string{
				"ℹ️",
				"Loaded 12 resources",
			},
		},
		{
			name: "error with consequence",
			opts: ErrorOptions{
				Level:       ErrorLevelError,
				Context:     "VALIDATION FAILED",
				Problem:     "Descriptor could not be parsed",
				Consequence: "Resource will not be registered",
			},
			contains: []string{
				"Descriptor could not be parsed",
				"Resource will not be registered",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatError(tt.opts)

			for _, expected := range tt.contains {
				if !strings.Contains(result, expected) {
					t.Errorf("FormatError() output missing expected string:\nExpected to contain: %q\nGot: %q", expected, result)
				}
			}
		})
	}
}

func TestResourceNotFoundError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := ResourceNotFoundError("Bok", []string{"Book", "Order"}, true)

	expected := []string{
		"RESOURCE NOT FOUND",
		"Cannot find resource 'Bok'.",
		"Did you mean: Book, Order?",
		"See all resources: apimeta list",
	}

	for _, exp := range expected {
		if !strings.Contains(result, exp) {
			t.Errorf("ResourceNotFoundError() missing expected string: %q", exp)
		}
	}
}

func TestValidationError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := ValidationError("unknown attribute \"paginationEnabld\"", []string{"paginationEnabled"}, true)

	expected := []string{
		"VALIDATION FAILED",
		"unknown attribute \"paginationEnabld\"",
		"Did you mean: paginationEnabled?",
		"apimeta validate --help",
	}

	for _, exp := range expected {
		if !strings.Contains(result, exp) {
			t.Errorf("ValidationError() missing expected string: %q", exp)
		}
	}
}

func TestWriteError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	opts := ErrorOptions{
		Level:   ErrorLevelError,
		Context: "TEST ERROR",
		Problem: "This is a test",
	}

	WriteError(&buf, opts)

	output := buf.String()
	if !strings.Contains(output, "TEST ERROR") {
		t.Errorf("WriteError() did not write to buffer correctly")
	}
}

func TestFormatSuccess(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := FormatSuccess("All descriptors valid", true)

	if !strings.Contains(result, "✓") {
		t.Errorf("FormatSuccess() missing checkmark")
	}
	if !strings.Contains(result, "All descriptors valid") {
		t.Errorf("FormatSuccess() missing message")
	}
}

func TestWriteSuccess(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	WriteSuccess(&buf, "Test success", true)

	output := buf.String()
	if !strings.Contains(output, "✓") {
		t.Errorf("WriteSuccess() missing checkmark")
	}
	if !strings.Contains(output, "Test success") {
		t.Errorf("WriteSuccess() missing message")
	}
}

func TestWarning(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := Warning("Deprecated attribute", []string{"Use deprecationReason"}, true)

	expected := []string{
		"⚠️",
		"Deprecated attribute",
		"Did you mean: Use deprecationReason?",
	}

	for _, exp := range expected {
		if !strings.Contains(result, exp) {
			t.Errorf("Warning() missing expected string: %q", exp)
		}
	}
}

func TestInfo(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := Info("Watching for changes", true)

	expected := []string{
		"ℹ️",
		"Watching for changes",
	}

	for _, exp := range expected {
		if !strings.Contains(result, exp) {
			t.Errorf("Info() missing expected string: %q", exp)
		}
	}
}

func TestConfigError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := ConfigError("Invalid YAML syntax", []string{"Check indentation"}, true)

	expected := []string{
		"CONFIGURATION ERROR",
		"Invalid YAML syntax",
		"Did you mean: Check indentation?",
		"View config: cat apimeta.yml",
	}

	for _, exp := range expected {
		if !strings.Contains(result, exp) {
			t.Errorf("ConfigError() missing expected string: %q", exp)
		}
	}
}
