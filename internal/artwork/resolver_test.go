package artwork

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// fakeFiles reports existence for a fixed set of paths
type fakeFiles map[string]bool

func (f fakeFiles) Exists(path string) bool { return f[path] }

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte("png"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
}

func TestCachePath(t *testing.T) {
	got := CachePath("/group", "UUID-1", "42")
	want := filepath.Join("/group", "Library", "Caches", "UUID-1-42.png")
	if got != want {
		t.Errorf("CachePath = %q, want %q", got, want)
	}
}

func TestFileURL(t *testing.T) {
	if got := FileURL("/tmp/a b.png"); got != "file:///tmp/a%20b.png" {
		t.Errorf("FileURL = %q", got)
	}
}

func TestFileURL_RelativePath(t *testing.T) {
	abs, err := filepath.Abs(filepath.Join("bundle", "NoAppImage.png"))
	if err != nil {
		t.Fatalf("Abs: %v", err)
	}

	got := FileURL(filepath.Join("bundle", "NoAppImage.png"))
	if !strings.HasPrefix(got, "file:///") {
		t.Errorf("FileURL = %q, want an absolute file URL", got)
	}
	if want := FileURL(abs); got != want {
		t.Errorf("FileURL = %q, want %q", got, want)
	}
}

func TestBundle_RelativeDir(t *testing.T) {
	b := Bundle{Dir: "bundle", Files: fakeFiles{filepath.Join("bundle", "NoAppImage.png"): true}}

	got, ok := b.URLForResource("NoAppImage", "png")
	if !ok {
		t.Fatal("URLForResource did not find the placeholder")
	}
	if !strings.HasPrefix(got, "file:///") {
		t.Errorf("URLForResource = %q, want an absolute file URL", got)
	}
}

func TestResolve_UsesCachedFile(t *testing.T) {
	container := t.TempDir()
	bundleDir := t.TempDir()
	writeFile(t, CachePath(container, "host", "app"))
	writeFile(t, filepath.Join(bundleDir, "NoAppImage.png"))

	r := NewResolver(Options{
		Containers: StaticContainer{Root: container},
		Bundle:     Bundle{Dir: bundleDir},
	}, zap.NewNop())

	want := FileURL(CachePath(container, "host", "app"))
	if got := r.Resolve("host", "app"); got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestResolve_FallsBackToPlaceholder(t *testing.T) {
	container := t.TempDir()
	bundleDir := t.TempDir()
	writeFile(t, filepath.Join(bundleDir, "NoAppImage.png"))

	r := NewResolver(Options{
		Containers: StaticContainer{Root: container},
		Bundle:     Bundle{Dir: bundleDir},
	}, zap.NewNop())

	want := FileURL(filepath.Join(bundleDir, "NoAppImage.png"))
	if got := r.Resolve("host", "missing"); got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestResolve_NoContainer(t *testing.T) {
	files := fakeFiles{"/bundle/NoAppImage.png": true}
	r := NewResolver(Options{
		Files:  files,
		Bundle: Bundle{Dir: "/bundle"},
	}, zap.NewNop())

	if got := r.Resolve("host", "app"); got != "file:///bundle/NoAppImage.png" {
		t.Errorf("Resolve = %q, want placeholder", got)
	}
}

func TestResolve_CustomPlaceholder(t *testing.T) {
	files := fakeFiles{"/bundle/Generic.png": true}
	r := NewResolver(Options{
		Placeholder: "Generic",
		Files:       files,
		Bundle:      Bundle{Dir: "/bundle"},
	}, zap.NewNop())

	if got := r.Placeholder(); got != "file:///bundle/Generic.png" {
		t.Errorf("Placeholder = %q", got)
	}
}

func TestResolve_DirectoryIsNotAFile(t *testing.T) {
	container := t.TempDir()
	if err := os.MkdirAll(CachePath(container, "host", "app"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	r := NewResolver(Options{Containers: StaticContainer{Root: container}}, zap.NewNop())
	if _, ok := r.Cached("host", "app"); ok {
		t.Error("a directory must not count as cached artwork")
	}
}

func TestPlaceholder_MissingFromBundle(t *testing.T) {
	r := NewResolver(Options{Bundle: Bundle{Dir: t.TempDir()}}, zap.NewNop())
	if got := r.Placeholder(); got != "" {
		t.Errorf("Placeholder = %q, want empty", got)
	}
}

func TestStaticContainer(t *testing.T) {
	if _, err := (StaticContainer{}).ContainerPath("g"); !errors.Is(err, ErrNoContainer) {
		t.Errorf("err = %v, want ErrNoContainer", err)
	}
	p, err := StaticContainer{Root: "/x"}.ContainerPath("g")
	if err != nil || p != "/x" {
		t.Errorf("ContainerPath = %q, %v", p, err)
	}
}
