package assetcache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"sync/atomic"
	"testing"
)

func newOrigin(t *testing.T, files map[string]string) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestInstallThenFetchFromCache(t *testing.T) {
	srv, hits := newOrigin(t, map[string]string{"/": "root", "/app.js": "js"})
	manifest := Manifest{Name: "v1", URLs: []string{"/", "/app.js"}}
	w := NewWorker(t.TempDir(), srv.URL, manifest)

	if err := w.Install(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !w.Active() {
		t.Error("expected worker to be active after install")
	}

	before := atomic.LoadInt32(hits)
	body, src, err := w.Fetch(context.Background(), "/app.js")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != "js" || src != SourceCache {
		t.Errorf("expected js from cache, got %q from %s", body, src)
	}
	if atomic.LoadInt32(hits) != before {
		t.Error("cached fetch should not hit the network")
	}
}

func TestFetchFallsBackToNetworkWithoutCaching(t *testing.T) {
	srv, _ := newOrigin(t, map[string]string{"/extra.css": "css"})
	w := NewWorker(t.TempDir(), srv.URL, Manifest{Name: "v1"})

	body, src, err := w.Fetch(context.Background(), "extra.css")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != "css" || src != SourceNetwork {
		t.Errorf("expected css from network, got %q from %s", body, src)
	}
	if _, err := os.Stat(w.EntryPath("/extra.css")); !os.IsNotExist(err) {
		t.Error("network response should not be stored")
	}
}

func TestInstallFailureKeepsPartialCache(t *testing.T) {
	srv, _ := newOrigin(t, map[string]string{"/": "root"})
	manifest := Manifest{Name: "v1", URLs: []string{"/", "/missing.png"}}
	w := NewWorker(t.TempDir(), srv.URL, manifest)

	if err := w.Install(context.Background()); err == nil {
		t.Fatal("expected error for missing asset")
	}
	if !w.Active() {
		t.Error("expected worker to be active even after a failed install")
	}
	if _, err := os.Stat(w.EntryPath("/")); err != nil {
		t.Errorf("expected entry fetched before the failure to remain: %v", err)
	}
}

func TestActivateRemovesStaleCaches(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"messcut-cache-v0", "other", "v2"} {
		os.MkdirAll(filepath.Join(root, name), 0755)
	}
	os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0644)

	w := NewWorker(root, "http://unused", Manifest{Name: "v2"})
	removed, err := w.Activate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(removed, []string{"messcut-cache-v0", "other"}) {
		t.Errorf("unexpected removed caches %v", removed)
	}
	if _, err := os.Stat(filepath.Join(root, "v2")); err != nil {
		t.Error("current cache should survive activation")
	}
	if _, err := os.Stat(filepath.Join(root, "stray.txt")); err != nil {
		t.Error("plain files should be left alone")
	}
}

func TestActivateMissingRoot(t *testing.T) {
	w := NewWorker(filepath.Join(t.TempDir(), "nope"), "", DefaultManifest())
	removed, err := w.Activate()
	if err != nil || len(removed) != 0 {
		t.Errorf("expected no-op, got %v, %v", removed, err)
	}
}

func TestDefaultManifest(t *testing.T) {
	m := DefaultManifest()
	if m.Name != "messcut-cache-v1" {
		t.Errorf("unexpected cache name %q", m.Name)
	}
	seen := map[string]bool{}
	for _, u := range m.URLs {
		if seen[u] {
			t.Errorf("duplicate manifest entry %q", u)
		}
		seen[u] = true
	}
}
