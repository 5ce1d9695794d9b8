package models

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func TestFilename(t *testing.T) {
	if got := Filename("base"); got != "ggml-base.bin" {
		t.Fatalf("Filename(base) = %q", got)
	}
	if got := Filename("small.en"); got != "ggml-small.en.bin" {
		t.Fatalf("Filename(small.en) = %q", got)
	}
}

func TestEnsureDownloadsOnce(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/ggml-base.bin" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("ggml model bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	m := &Manager{Dir: dir, BaseURL: srv.URL, Client: srv.Client()}

	path, err := m.Ensure(context.Background(), "base")
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if path != filepath.Join(dir, "ggml-base.bin") {
		t.Fatalf("unexpected path %q", path)
	}
	b, err := os.ReadFile(path)
	if err != nil || string(b) != "ggml model bytes" {
		t.Fatalf("model content mismatch: %q, %v", b, err)
	}

	if _, err := m.Ensure(context.Background(), "base"); err != nil {
		t.Fatalf("second Ensure: %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("model present locally but fetched %d times", hits.Load())
	}
}

func TestEnsureDownloadFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	m := &Manager{Dir: t.TempDir(), BaseURL: srv.URL, Client: srv.Client()}
	if _, err := m.Ensure(context.Background(), "base"); err == nil {
		t.Fatal("expected error for http 404")
	}
	// no partial file may be left behind
	if _, err := os.Stat(filepath.Join(m.Dir, "ggml-base.bin")); !os.IsNotExist(err) {
		t.Fatalf("partial model visible after failed download: %v", err)
	}
}

func TestEnsureEmptyVariant(t *testing.T) {
	m := NewManager(t.TempDir())
	if _, err := m.Ensure(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty variant")
	}
}
