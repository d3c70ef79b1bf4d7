package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/remaimber-it/quizcore/internal/validation"
	"github.com/remaimber-it/quizcore/internal/worker"
)

// Manifest is the YAML index of a catalog directory:
//
//	subjects:
//	  - key: go-basics
//	    display_name: Go Basics
//	    file: go-basics.json
type Manifest struct {
	Subjects []ManifestEntry `yaml:"subjects" validate:"dive"`
}

type ManifestEntry struct {
	Key         string `yaml:"key" validate:"required"`
	DisplayName string `yaml:"display_name"`
	File        string `yaml:"file" validate:"required"`
}

// ParseManifest decodes and validates a manifest document.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	if err := validation.Struct(m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Loader reads a manifest and its question files into a Catalog.
type Loader struct {
	workers int
	logger  *slog.Logger
}

func NewLoader(workers int, logger *slog.Logger) *Loader {
	if workers < 1 {
		workers = 1
	}
	return &Loader{workers: workers, logger: logger}
}

// Load reads the manifest at path. Question files are resolved relative to
// the manifest and parsed in parallel. A file that cannot be read or parsed
// is logged and left out of the catalog; only a bad manifest or the end of
// ctx fails the load.
func (l *Loader) Load(ctx context.Context, path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	manifest, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	pool := worker.NewPool[QuestionFile](ctx, l.workers, len(manifest.Subjects))
	submitted := 0
	for i, e := range manifest.Subjects {
		e := e
		err := pool.Submit(strconv.Itoa(i), func(context.Context) (QuestionFile, error) {
			return readQuestionFile(filepath.Join(dir, e.File))
		})
		if err != nil {
			break
		}
		submitted++
	}
	pool.Close()

	results := make(map[string]worker.Result[QuestionFile], submitted)
	for i := 0; i < submitted; i++ {
		r := <-pool.Results()
		results[r.JobID] = r
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// walk in manifest order so a duplicate key always keeps the same entry
	cat := make(Catalog, len(manifest.Subjects))
	for i, e := range manifest.Subjects {
		r := results[strconv.Itoa(i)]
		if r.Err != nil {
			l.logger.Warn("skipping catalog subject", "key", e.Key, "file", e.File, "error", r.Err)
			continue
		}
		if _, dup := cat[e.Key]; dup {
			l.logger.Warn("duplicate catalog key, keeping first entry", "key", e.Key, "file", e.File)
			continue
		}
		cat[e.Key] = Entry{DisplayName: e.DisplayName, File: r.Output}
	}

	l.logger.Info("catalog loaded", "path", path, "subjects", len(cat))
	return cat, nil
}

func readQuestionFile(path string) (QuestionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return QuestionFile{}, err
	}
	return ParseQuestionFile(data)
}
