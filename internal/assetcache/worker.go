package assetcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"messcut/internal/logs"
)

// Source reports where Fetch found a response.
type Source int

const (
	SourceCache Source = iota
	SourceNetwork
)

func (s Source) String() string {
	if s == SourceCache {
		return "cache"
	}
	return "network"
}

// Manifest names a cache and the asset paths it holds.
type Manifest struct {
	Name string
	URLs []string
}

// DefaultManifest is the asset list of the current app version.
func DefaultManifest() Manifest {
	return Manifest{
		Name: "messcut-cache-v1",
		URLs: []string{
			"/",
			"/index.html",
			"/manifest.json",
			"/scripts/index.js",
			"/styles/global.css",
			"/styles/variables.css",
			"/styles/components/calendar/calendar.module.css",
			"/styles/components/modal/modal.module.css",
			"/styles/layouts/footer/footer.module.css",
			"/assets/icon.png",
		},
	}
}

// Worker keeps versioned asset caches under Root, one directory per cache name.
type Worker struct {
	Root     string
	Origin   string
	Manifest Manifest
	Client   *http.Client

	active bool
}

func NewWorker(root, origin string, manifest Manifest) *Worker {
	return &Worker{
		Root:     root,
		Origin:   strings.TrimSuffix(origin, "/"),
		Manifest: manifest,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Active reports whether Install has completed, successfully or not.
func (w *Worker) Active() bool {
	return w.active
}

func (w *Worker) cacheDir() string {
	return filepath.Join(w.Root, w.Manifest.Name)
}

// EntryPath returns the file an asset path is stored under.
func (w *Worker) EntryPath(path string) string {
	sum := sha256.Sum256([]byte(normalize(path)))
	return filepath.Join(w.cacheDir(), hex.EncodeToString(sum[:]))
}

func normalize(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// Install fetches every manifest URL and stores it in the current cache.
// Entries fetched before a failure are kept. The worker is marked active
// either way.
func (w *Worker) Install(ctx context.Context) error {
	defer func() { w.active = true }()

	if err := os.MkdirAll(w.cacheDir(), 0755); err != nil {
		return fmt.Errorf("error creating cache %s: %w", w.Manifest.Name, err)
	}

	for _, u := range w.Manifest.URLs {
		body, err := w.download(ctx, u)
		if err != nil {
			logs.Logger.Printf("cache install failed: %v", err)
			return err
		}
		if err := os.WriteFile(w.EntryPath(u), body, 0644); err != nil {
			logs.Logger.Printf("cache install failed: %v", err)
			return fmt.Errorf("error storing %s: %w", u, err)
		}
	}

	logs.Logger.Printf("cache %s installed (%d entries)", w.Manifest.Name, len(w.Manifest.URLs))
	return nil
}

// Activate deletes every cache except the current one and returns the
// names removed.
func (w *Worker) Activate() ([]string, error) {
	entries, err := os.ReadDir(w.Root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var removed []string
	for _, e := range entries {
		if !e.IsDir() || e.Name() == w.Manifest.Name {
			continue
		}
		if err := os.RemoveAll(filepath.Join(w.Root, e.Name())); err != nil {
			return removed, fmt.Errorf("error deleting cache %s: %w", e.Name(), err)
		}
		removed = append(removed, e.Name())
	}
	sort.Strings(removed)

	if len(removed) > 0 {
		logs.Logger.Printf("removed stale caches: %s", strings.Join(removed, ", "))
	}
	return removed, nil
}

// Fetch serves path from the current cache, falling back to the network.
// Network responses are not stored.
func (w *Worker) Fetch(ctx context.Context, path string) ([]byte, Source, error) {
	body, err := os.ReadFile(w.EntryPath(path))
	if err == nil {
		return body, SourceCache, nil
	}

	body, err = w.download(ctx, path)
	if err != nil {
		return nil, SourceNetwork, err
	}
	return body, SourceNetwork, nil
}

func (w *Worker) download(ctx context.Context, path string) ([]byte, error) {
	url := w.Origin + normalize(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := w.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error fetching %s: %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
