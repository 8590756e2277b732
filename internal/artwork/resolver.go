package artwork

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	// DefaultAppGroup is the shared container the main application writes to
	DefaultAppGroup = "group.MoonlightTV"

	// DefaultPlaceholder is the bundled image used when no artwork is cached
	DefaultPlaceholder = "NoAppImage"

	imageExt = "png"
)

// ErrNoContainer is returned when the shared container cannot be located
var ErrNoContainer = errors.New("shared container not available")

// FileChecker reports whether a regular file exists at path
type FileChecker interface {
	Exists(path string) bool
}

// ContainerLocator resolves the root directory of an app group container
type ContainerLocator interface {
	ContainerPath(group string) (string, error)
}

// OSFileChecker checks the local file system
type OSFileChecker struct{}

func (OSFileChecker) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// StaticContainer maps every group to a single directory. An empty Root
// means the container is unavailable.
type StaticContainer struct {
	Root string
}

func (s StaticContainer) ContainerPath(group string) (string, error) {
	if s.Root == "" {
		return "", fmt.Errorf("%w: %s", ErrNoContainer, group)
	}
	return s.Root, nil
}

// Bundle locates named resources shipped with the application
type Bundle struct {
	Dir   string
	Files FileChecker
}

// URLForResource returns a file URL for name.ext if the bundle contains it
func (b Bundle) URLForResource(name, ext string) (string, bool) {
	if b.Dir == "" {
		return "", false
	}
	path := filepath.Join(b.Dir, name+"."+ext)
	if !b.files().Exists(path) {
		return "", false
	}
	return FileURL(path), true
}

func (b Bundle) files() FileChecker {
	if b.Files == nil {
		return OSFileChecker{}
	}
	return b.Files
}

// Resolver picks the artwork URL for an app
type Resolver struct {
	group       string
	placeholder string
	containers  ContainerLocator
	files       FileChecker
	bundle      Bundle
	logger      *zap.Logger
}

// Options configures a Resolver. Zero values fall back to the defaults.
type Options struct {
	AppGroup    string
	Placeholder string
	Containers  ContainerLocator
	Files       FileChecker
	Bundle      Bundle
}

// NewResolver creates a new artwork resolver
func NewResolver(opts Options, logger *zap.Logger) *Resolver {
	if opts.AppGroup == "" {
		opts.AppGroup = DefaultAppGroup
	}
	if opts.Placeholder == "" {
		opts.Placeholder = DefaultPlaceholder
	}
	if opts.Containers == nil {
		opts.Containers = StaticContainer{}
	}
	if opts.Files == nil {
		opts.Files = OSFileChecker{}
	}
	if opts.Bundle.Files == nil {
		opts.Bundle.Files = opts.Files
	}

	return &Resolver{
		group:       opts.AppGroup,
		placeholder: opts.Placeholder,
		containers:  opts.Containers,
		files:       opts.Files,
		bundle:      opts.Bundle,
		logger:      logger,
	}
}

// CachePath returns where the main application caches artwork for an app:
// <container>/Library/Caches/{hostUUID}-{appID}.png
func CachePath(container, hostUUID, appID string) string {
	return filepath.Join(container, "Library", "Caches", fmt.Sprintf("%s-%s.%s", hostUUID, appID, imageExt))
}

// Cached returns the URL of the cached artwork for an app, if present
func (r *Resolver) Cached(hostUUID, appID string) (string, bool) {
	container, err := r.containers.ContainerPath(r.group)
	if err != nil {
		r.logger.Debug("Shared container unavailable",
			zap.String("group", r.group),
			zap.Error(err))
		return "", false
	}

	path := CachePath(container, hostUUID, appID)
	if !r.files.Exists(path) {
		return "", false
	}
	return FileURL(path), true
}

// Placeholder returns the URL of the bundled placeholder image, or an empty
// string when the bundle does not contain it
func (r *Resolver) Placeholder() string {
	u, ok := r.bundle.URLForResource(r.placeholder, imageExt)
	if !ok {
		r.logger.Warn("Placeholder image not found in bundle",
			zap.String("name", r.placeholder),
			zap.String("bundle", r.bundle.Dir))
		return ""
	}
	return u
}

// Resolve returns the cached artwork URL for an app, falling back to the
// placeholder on a cache miss or when the container is unavailable
func (r *Resolver) Resolve(hostUUID, appID string) string {
	if u, ok := r.Cached(hostUUID, appID); ok {
		return u
	}
	return r.Placeholder()
}

// FileURL converts a path to a file:// URL, resolving relative paths against
// the working directory
func FileURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
