package loader

import (
	"errors"

	"github.com/pelletier/go-toml/v2"
)

// TOMLLoader reads an indenter.toml settings file.
type TOMLLoader struct {
	fs   FileSystem
	path string
}

// NewTOMLLoader returns a loader for the TOML file at path on the OS file
// system.
func NewTOMLLoader(path string) *TOMLLoader {
	return NewTOMLLoaderWithFS(DefaultFS(), path)
}

// NewTOMLLoaderWithFS returns a loader for the TOML file at path on fsys.
func NewTOMLLoaderWithFS(fsys FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{fs: fsys, path: path}
}

// Load reads the loader's own file.
func (l *TOMLLoader) Load() (map[string]any, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads the TOML file at path. Settings live in tables such as
// [indent] and [log]; a bare key at the top of the file is an error.
func (l *TOMLLoader) LoadFrom(path string) (map[string]any, error) {
	return loadSections(l.fs, path, decodeTOML)
}

func decodeTOML(data []byte) (map[string]any, error) {
	var m map[string]any
	err := toml.Unmarshal(data, &m)
	if err == nil {
		return m, nil
	}
	perr := &ParseError{Message: err.Error(), Err: err}
	var de *toml.DecodeError
	if errors.As(err, &de) {
		perr.Line, perr.Column = de.Position()
	}
	return nil, perr
}
