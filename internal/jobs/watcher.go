// Package jobs runs background document processing. The core pipeline is
// synchronous; anything event-driven lives here.
package jobs

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// DocumentProcessor processes one document file through the pipeline.
type DocumentProcessor interface {
	ProcessFile(ctx context.Context, path string) error
}

// watchedExtensions limits events to file types the parser handles.
var watchedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".pdf":      true,
}

// Watcher re-processes documents when files under a directory change.
// One document is processed per event; concurrency across documents is
// safe because each run builds its own chunk set and graph.
type Watcher struct {
	processor DocumentProcessor
	fs        *fsnotify.Watcher
	stopChan  chan struct{}
	doneChan  chan struct{}
}

// NewWatcher creates a Watcher over the given directory.
func NewWatcher(dir string, processor DocumentProcessor) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, err
	}

	return &Watcher{
		processor: processor,
		fs:        fs,
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
	}, nil
}

// Start begins the watch loop and blocks until the context is cancelled
// or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	defer close(w.doneChan)
	defer w.fs.Close()

	log.Printf("watcher started: %v", w.fs.WatchList())

	for {
		select {
		case <-ctx.Done():
			log.Println("watcher stopped: context cancelled")
			return
		case <-w.stopChan:
			log.Println("watcher stopped: stop signal received")
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !watchedExtensions[strings.ToLower(filepath.Ext(event.Name))] {
				continue
			}
			if err := w.processor.ProcessFile(ctx, event.Name); err != nil {
				log.Printf("error processing %s: %v", event.Name, err)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("watch error: %v", err)
		}
	}
}

// Stop gracefully stops the watcher.
func (w *Watcher) Stop() {
	close(w.stopChan)
	<-w.doneChan
	log.Println("watcher shutdown complete")
}
