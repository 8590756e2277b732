package settings

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultSuite is the settings suite shared with the main application
	DefaultSuite = "group.MoonlightTV"

	// AppListKey holds the JSON encoded app list
	AppListKey = "appList"
)

// Reader reads string values from a settings suite shared across processes.
// A missing key reports ok=false with a nil error.
type Reader interface {
	String(ctx context.Context, key string) (value string, ok bool, err error)
}

// MapStore is an in-memory suite
type MapStore map[string]string

func (m MapStore) String(_ context.Context, key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

// FileStore reads one suite from a YAML file mapping suite names to
// key/value pairs. The file is read on every call.
//
//	group.MoonlightTV:
//	  appList: '[{"id": "1", ...}]'
type FileStore struct {
	path  string
	suite string
}

// NewFileStore creates a file-backed reader for suite
func NewFileStore(path, suite string) *FileStore {
	if suite == "" {
		suite = DefaultSuite
	}
	return &FileStore{path: path, suite: suite}
}

func (f *FileStore) String(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read settings file: %w", err)
	}

	var suites map[string]map[string]string
	if err := yaml.Unmarshal(data, &suites); err != nil {
		return "", false, fmt.Errorf("failed to parse settings file: %w", err)
	}

	v, ok := suites[f.suite][key]
	return v, ok, nil
}

// Path returns the file the store reads from
func (f *FileStore) Path() string {
	return f.path
}
