package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDirWatcherDetectsChange(t *testing.T) {
	dir := writeCatalogDir(t)

	var changed []string
	w := NewDirWatcher(dir, time.Hour, func(p string) { changed = append(changed, p) })

	w.scan(true)
	if len(changed) != 0 {
		t.Fatalf("priming scan must not fire, got %v", changed)
	}

	target := filepath.Join(dir, "catalog.yaml")
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(target, future, future); err != nil {
		t.Fatal(err)
	}
	w.scan(false)
	if len(changed) != 1 || changed[0] != target {
		t.Fatalf("expected one change for %s, got %v", target, changed)
	}

	// unchanged files stay quiet
	w.scan(false)
	if len(changed) != 1 {
		t.Fatalf("no-op scan must not fire, got %v", changed)
	}
}

func TestDirWatcherNewStoreFile(t *testing.T) {
	dir := writeCatalogDir(t)

	var changed []string
	w := NewDirWatcher(dir, time.Hour, func(p string) { changed = append(changed, p) })
	w.scan(true)

	added := filepath.Join(dir, "stores", "new.yaml")
	if err := os.WriteFile(added, []byte(storeYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	w.scan(false)
	if len(changed) != 1 || changed[0] != added {
		t.Fatalf("expected new store file to fire, got %v", changed)
	}
}
