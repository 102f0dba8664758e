package catalog

import (
	"os"
	"path/filepath"
	"time"
)

// DirWatcher polls the catalog directory for YAML changes and triggers a
// callback. It polls mtimes using only the standard library.
type DirWatcher struct {
	Dir       string
	Interval  time.Duration
	onChange  func(string) // called with the path that changed
	stopCh    chan struct{}
	lastMTime map[string]time.Time
}

// NewDirWatcher creates a watcher over baseDir (and its stores/ subdir).
func NewDirWatcher(baseDir string, interval time.Duration, onChange func(string)) *DirWatcher {
	return &DirWatcher{
		Dir:       baseDir,
		Interval:  interval,
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		lastMTime: make(map[string]time.Time),
	}
}

// Start begins polling in a goroutine.
func (w *DirWatcher) Start() {
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		// prime cache
		w.scan(true)
		for {
			select {
			case <-ticker.C:
				w.scan(false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher.
func (w *DirWatcher) Stop() {
	close(w.stopCh)
}

// scan walks the known catalog locations and fires onChange for files whose
// mtime moved forward since the last scan.
func (w *DirWatcher) scan(prime bool) {
	for _, p := range w.paths() {
		fi, err := os.Stat(p)
		if err != nil {
			// file removed or unreadable; forget it so re-adding fires
			delete(w.lastMTime, p)
			continue
		}
		mt := fi.ModTime()
		last, ok := w.lastMTime[p]
		if !ok {
			w.lastMTime[p] = mt
			if !prime && w.onChange != nil {
				w.onChange(p)
			}
			continue
		}
		if mt.After(last) {
			w.lastMTime[p] = mt
			if !prime && w.onChange != nil {
				w.onChange(p)
			}
		}
	}
}

func (w *DirWatcher) paths() []string {
	out := []string{filepath.Join(w.Dir, "catalog.yaml")}
	entries, err := os.ReadDir(filepath.Join(w.Dir, "stores"))
	if err != nil {
		return out
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		out = append(out, filepath.Join(w.Dir, "stores", e.Name()))
	}
	return out
}
