package tmplfmt

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func zipArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDownloadZip(t *testing.T) {
	t.Parallel()

	archive := zipArchive(t, map[string]string{
		"bun-linux-x64/bun":    "binary",
		"bun-linux-x64/README": "readme",
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bun.zip" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(archive)
	}))
	t.Cleanup(srv.Close)

	t.Run("extracts the named file", func(t *testing.T) {
		t.Parallel()
		dest := filepath.Join(t.TempDir(), "bin")

		if err := DownloadZip(context.Background(), srv.URL+"/bun.zip", dest, "bun"); err != nil {
			t.Fatalf("DownloadZip() error = %v", err)
		}
		data, err := os.ReadFile(filepath.Join(dest, "bun"))
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "binary" {
			t.Errorf("bun = %q, want %q", data, "binary")
		}
		if _, err := os.Stat(filepath.Join(dest, "README")); !os.IsNotExist(err) {
			t.Errorf("README should not be extracted, stat error = %v", err)
		}
	})

	t.Run("missing entry", func(t *testing.T) {
		t.Parallel()
		if err := DownloadZip(context.Background(), srv.URL+"/bun.zip", t.TempDir(), "node"); err == nil {
			t.Error("DownloadZip() error = nil, want an error for a missing entry")
		}
	})

	t.Run("HTTP error", func(t *testing.T) {
		t.Parallel()
		if err := DownloadZip(context.Background(), srv.URL+"/missing.zip", t.TempDir(), "bun"); err == nil {
			t.Error("DownloadZip() error = nil, want an error for a 404")
		}
	})
}

func TestBinaryName(t *testing.T) {
	t.Parallel()

	got := BinaryName("bun")
	want := "bun"
	if runtime.GOOS == Windows {
		want = "bun.exe"
	}
	if got != want {
		t.Errorf("BinaryName(bun) = %q, want %q", got, want)
	}
}
