package fixture

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/agenda/internal/sources"
)

// Loader reads events from a local YAML file, for offline and demo runs
type Loader struct {
	filePath string
}

// NewLoader creates a new fixture loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Name identifies the source in logs and /infra
func (l *Loader) Name() string {
	return "fixture"
}

// Load reads and parses the fixture file
func (l *Loader) Load() (File, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return File{}, fmt.Errorf("failed to read events file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("failed to parse events yaml: %w", err)
	}

	return file, nil
}

// Fetch loads the file and validates every event.
// The file is read again on each call so edits are picked up by a reload.
func (l *Loader) Fetch(ctx context.Context) (sources.Batch, error) {
	if err := ctx.Err(); err != nil {
		return sources.Batch{}, err
	}
	file, err := l.Load()
	if err != nil {
		return sources.Batch{}, err
	}

	var batch sources.Batch
	for _, rec := range file.Events {
		batch.Add(rec.Event())
	}
	return batch, nil
}
