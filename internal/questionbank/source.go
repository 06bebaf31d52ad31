package questionbank

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"os"
)

//go:embed assets/*.json
var assets embed.FS

// FSSource reads datasets named "<name>.json" from a filesystem.
type FSSource struct {
	fsys fs.FS
}

// NewFSSource returns a Source backed by fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// Embedded returns the question bank compiled into the binary.
func Embedded() *FSSource {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(err)
	}
	return NewFSSource(sub)
}

// Dir returns a Source reading datasets from a directory on disk.
func Dir(path string) *FSSource {
	return NewFSSource(os.DirFS(path))
}

func (s *FSSource) Load(ctx context.Context, name string) ([]Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}

	file := name + ".json"
	if !fs.ValidPath(file) {
		return nil, &LoadError{Name: name, Err: ErrNotFound}
	}

	raw, err := fs.ReadFile(s.fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Name: name, Err: ErrNotFound}
		}
		return nil, &LoadError{Name: name, Err: err}
	}

	qs, err := Decode(raw)
	if err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}
	return qs, nil
}
