package codebase

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// FileWatcher polls the codebase root and reprocesses sources whose
// modification time changed. Sources that disappear are removed.
type FileWatcher struct {
	codebase     *Codebase
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time
}

func NewFileWatcher(c *Codebase) *FileWatcher {
	return &FileWatcher{
		codebase:     c,
		stopCh:       make(chan struct{}),
		pollInterval: 1 * time.Second,
		modTimes:     make(map[string]time.Time),
	}
}

func (w *FileWatcher) SetPollInterval(d time.Duration) {
	w.pollInterval = d
}

func (w *FileWatcher) Start(ctx context.Context) {
	go w.Run(ctx)
}

func (w *FileWatcher) Stop() {
	close(w.stopCh)
}

// Run scans once immediately and then on every tick until ctx is done or
// Stop is called.
func (w *FileWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.Scan(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Scan(ctx)
		}
	}
}

// Scan performs a single poll and returns the paths it reprocessed or
// removed.
func (w *FileWatcher) Scan(ctx context.Context) (changed []string) {
	c := w.codebase
	currentFiles := make(map[string]bool)

	filepath.Walk(c.RootDir(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if ctx.Err() != nil {
			return filepath.SkipAll
		}
		if info.IsDir() {
			if path != c.RootDir() && c.skipDir(path, info) {
				return filepath.SkipDir
			}
			return nil
		}
		if !c.IsSource(path) {
			return nil
		}

		currentFiles[path] = true

		lastMod, known := w.modTimes[path]
		if !known || info.ModTime().After(lastMod) {
			w.modTimes[path] = info.ModTime()
			c.ScanFile(ctx, path)
			changed = append(changed, path)
		}
		return nil
	})
	if ctx.Err() != nil {
		return changed
	}

	for path := range w.modTimes {
		if !currentFiles[path] {
			delete(w.modTimes, path)
			c.RemoveFile(path)
			changed = append(changed, path)
		}
	}
	return changed
}
