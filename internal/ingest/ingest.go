// Package ingest loads drawing descriptors from disk.
//
// Structured descriptors (.yaml, .yml, .json) are read directly. Raw
// drawings (.pdf, .dwg) are not parsed; their descriptor comes from an
// optional sidecar file named after the drawing with ".yaml" appended.
package ingest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/takeoff-cli/internal/model"
)

// ErrUnsupportedFormat is returned for a file extension Load cannot read.
var ErrUnsupportedFormat = eris.New("ingest: unsupported drawing format")

// SidecarSuffix is appended to a raw drawing's path to find its descriptor.
const SidecarSuffix = ".yaml"

// Load reads the descriptor for the drawing at path.
func Load(path string) (model.Blueprint, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var (
		bp  model.Blueprint
		err error
	)
	switch ext {
	case ".yaml", ".yml":
		bp, err = readYAML(path)
	case ".json":
		bp, err = readJSON(path)
	case ".pdf", ".dwg":
		bp, err = readDrawing(path)
	default:
		return model.Blueprint{}, eris.Wrapf(ErrUnsupportedFormat, "%s", path)
	}
	if err != nil {
		return model.Blueprint{}, err
	}

	bp.Path = path
	if bp.Format == "" {
		bp.Format = strings.TrimPrefix(ext, ".")
	}
	if bp.Name == "" {
		bp.Name = filepath.Base(path)
	}
	if bp.Discipline == "" {
		bp.Discipline = InferDiscipline(path)
	}
	return bp, nil
}

// LoadAll loads every path, preserving order. It stops at the first
// failure.
func LoadAll(paths []string) ([]model.Blueprint, error) {
	out := make([]model.Blueprint, 0, len(paths))
	for _, p := range paths {
		bp, err := Load(p)
		if err != nil {
			return nil, err
		}
		out = append(out, bp)
	}
	return out, nil
}

func readYAML(path string) (model.Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Blueprint{}, eris.Wrapf(err, "ingest: read %s", path)
	}
	var bp model.Blueprint
	if err := yaml.Unmarshal(data, &bp); err != nil {
		return model.Blueprint{}, eris.Wrapf(err, "ingest: parse %s", path)
	}
	return bp, nil
}

func readJSON(path string) (model.Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Blueprint{}, eris.Wrapf(err, "ingest: read %s", path)
	}
	var bp model.Blueprint
	if err := json.Unmarshal(data, &bp); err != nil {
		return model.Blueprint{}, eris.Wrapf(err, "ingest: parse %s", path)
	}
	return bp, nil
}

func readDrawing(path string) (model.Blueprint, error) {
	if _, err := os.Stat(path); err != nil {
		return model.Blueprint{}, eris.Wrapf(err, "ingest: stat %s", path)
	}

	sidecar := path + SidecarSuffix
	if _, err := os.Stat(sidecar); err != nil {
		if os.IsNotExist(err) {
			zap.L().Info("ingest: no sidecar descriptor, recognizer defaults apply",
				zap.String("document", path),
			)
			return model.Blueprint{}, nil
		}
		return model.Blueprint{}, eris.Wrapf(err, "ingest: stat %s", sidecar)
	}
	return readYAML(sidecar)
}

var disciplineHints = []struct {
	hint       string
	discipline model.Discipline
}{
	{"struct", model.DisciplineStructural},
	{"elec", model.DisciplineElectrical},
	{"plumb", model.DisciplinePlumbing},
	{"hvac", model.DisciplineHVAC},
	{"arch", model.DisciplineArchitectural},
}

// InferDiscipline guesses a drawing's discipline from its file name,
// falling back to architectural.
func InferDiscipline(path string) model.Discipline {
	name := strings.ToLower(filepath.Base(path))
	for _, h := range disciplineHints {
		if strings.Contains(name, h.hint) {
			return h.discipline
		}
	}
	return model.DisciplineArchitectural
}
