// Package loader reads resource descriptor documents from YAML files
// and hydrates them into descriptors. A document maps domain class
// names to raw configuration maps; all validation and defaulting is
// delegated to the resource package.
package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/apimeta-io/apimeta/internal/resource"
)

// Document is the on-disk layout of a descriptor file:
//
//	resources:
//	  Book:
//	    shortName: Book
//	    itemOperations:
//	      get: {}
//	    paginationEnabled: false
type Document struct {
	Resources map[string]map[string]interface{} `yaml:"resources"`
}

// LoadFile parses a single descriptor file and hydrates every resource
// configuration it contains
func LoadFile(path string) (map[string]*resource.Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	descriptors := make(map[string]*resource.Descriptor, len(doc.Resources))
	for class, config := range doc.Resources {
		d, err := resource.FromMap(config)
		if err != nil {
			return nil, fmt.Errorf("%s: resource %s: %w", path, class, err)
		}
		descriptors[class] = d
	}

	return descriptors, nil
}

// LoadDir walks a directory tree, loads every .yml/.yaml descriptor
// file, and registers the results in a fresh registry. Classes must be
// unique across all files.
func LoadDir(dir string) (*resource.Registry, error) {
	registry := resource.NewRegistry()

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !isDescriptorFile(path) {
			return nil
		}

		descriptors, err := LoadFile(path)
		if err != nil {
			return err
		}

		for class, d := range descriptors {
			if err := registry.Register(class, d); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return registry, nil
}

// isDescriptorFile checks for the supported YAML extensions
func isDescriptorFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return true
	}
	return false
}
