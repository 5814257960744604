package loader

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLoader reads an indenter.yaml settings file.
type YAMLLoader struct {
	fs   FileSystem
	path string
}

// NewYAMLLoader returns a loader for the YAML file at path on the OS file
// system.
func NewYAMLLoader(path string) *YAMLLoader {
	return NewYAMLLoaderWithFS(DefaultFS(), path)
}

// NewYAMLLoaderWithFS returns a loader for the YAML file at path on fsys.
func NewYAMLLoaderWithFS(fsys FileSystem, path string) *YAMLLoader {
	return &YAMLLoader{fs: fsys, path: path}
}

// Load reads the loader's own file.
func (l *YAMLLoader) Load() (map[string]any, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads the YAML file at path. Each top-level key must map to a
// section of settings.
func (l *YAMLLoader) LoadFrom(path string) (map[string]any, error) {
	return loadSections(l.fs, path, decodeYAML)
}

func decodeYAML(data []byte) (map[string]any, error) {
	var m map[string]any
	err := yaml.Unmarshal(data, &m)
	if err == nil {
		return m, nil
	}
	perr := &ParseError{Message: err.Error(), Err: err}
	var te *yaml.TypeError
	if errors.As(err, &te) && len(te.Errors) > 0 {
		perr.Message = te.Errors[0]
	}
	// Syntax errors carry their position only in the text.
	_, _ = fmt.Sscanf(perr.Message, "yaml: line %d:", &perr.Line)
	return nil, perr
}
