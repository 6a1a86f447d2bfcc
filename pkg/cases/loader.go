package cases

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Loader handles loading suites from YAML files.
type Loader struct {
	fs fs.FS // embedded filesystem for built-in suites
}

// NewLoader creates a loader with built-in suites from the embedded
// filesystem.
func NewLoader() *Loader {
	return &Loader{
		fs: builtinSuitesFS,
	}
}

// NewLoaderWithFS creates a loader that reads from fsys instead of the
// embedded filesystem.
func NewLoaderWithFS(fsys fs.FS) *Loader {
	return &Loader{
		fs: fsys,
	}
}

// LoadSuites loads every suite from YAML bytes.
func (l *Loader) LoadSuites(data []byte) ([]*Suite, error) {
	var yamlFile yamlSuitesFile
	if err := yaml.Unmarshal(data, &yamlFile); err != nil {
		return nil, fmt.Errorf("parsing suites YAML: %w", err)
	}

	if len(yamlFile.Suites) == 0 {
		return nil, fmt.Errorf("no suites found in YAML")
	}

	suites := make([]*Suite, 0, len(yamlFile.Suites))
	for _, ys := range yamlFile.Suites {
		suites = append(suites, convertYAMLSuite(ys))
	}
	return suites, nil
}

// LoadSuiteFile loads all suites from a YAML file path.
func (l *Loader) LoadSuiteFile(path string) ([]*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading suite file %s: %w", path, err)
	}
	return l.LoadSuites(data)
}

// LoadBuiltinSuites loads all built-in suites from the embedded filesystem.
func (l *Loader) LoadBuiltinSuites() ([]*Suite, error) {
	var suites []*Suite

	err := fs.WalkDir(l.fs, "suites", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".yml" {
			return nil
		}

		data, err := fs.ReadFile(l.fs, path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		var yamlFile yamlSuitesFile
		if err := yaml.Unmarshal(data, &yamlFile); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}

		for _, ys := range yamlFile.Suites {
			suites = append(suites, convertYAMLSuite(ys))
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return suites, nil
}

// convertYAMLSuite converts yamlSuite to Suite.
func convertYAMLSuite(ys yamlSuite) *Suite {
	s := &Suite{
		ID:          ys.ID,
		Name:        ys.Name,
		Description: ys.Description,
		Automaton:   ys.Automaton,
	}
	for _, yc := range ys.Checks {
		s.Checks = append(s.Checks, Check{Input: yc.Input, Want: yc.Want})
	}
	return s
}
