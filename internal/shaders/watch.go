package shaders

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

var watchLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("QUADGL_DEBUG_SHADERS") == "1" {
		watchLogger = log.New(os.Stdout, "[shaders] ", log.Ltime|log.Lmsgprefix)
	}
}

// Watcher reports modifications of a set of shader files. Notifications are
// coalesced: any number of writes between two calls to Changed collapse into
// one. It never touches the graphics context, so the render loop stays the
// only caller of the backend.
type Watcher struct {
	fsw     *fsnotify.Watcher
	files   map[string]bool
	changed chan struct{}
	done    chan struct{}
}

// Watch starts watching the given files. Their parent directories are
// watched instead of the files themselves, since editors commonly replace
// files on save.
func Watch(paths ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	w := &Watcher{
		fsw:     fsw,
		files:   make(map[string]bool),
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.files[filepath.Clean(ev.Name)] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			watchLogger.Printf("%s: %s", ev.Op, ev.Name)
			select {
			case w.changed <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			watchLogger.Printf("watch error: %v", err)
		}
	}
}

// Changed reports, without blocking, whether any watched file was modified
// since the last call.
func (w *Watcher) Changed() bool {
	select {
	case <-w.changed:
		return true
	default:
		return false
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}
