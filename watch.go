package glassblog

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 250 * time.Millisecond

// FileWatcher calls a function whenever a watched file changes. Editors
// often replace files by rename, so directories are watched and events are
// filtered by name.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	err     error
}

// WatchFile starts watching path. onChange runs on the watcher goroutine
// after a short debounce.
func WatchFile(path string, logger *log.Logger, onChange func()) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return watch(filepath.Dir(abs), func(name string) bool { return name == abs }, logger, onChange)
}

// WatchDir watches the files in dir whose names end in ext.
func WatchDir(dir, ext string, logger *log.Logger, onChange func()) (*FileWatcher, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return watch(abs, func(name string) bool {
		return filepath.Dir(name) == abs && strings.HasSuffix(name, ext)
	}, logger, onChange)
}

func watch(dir string, match func(string) bool, logger *log.Logger, onChange func()) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	fw := &FileWatcher{watcher: w, done: make(chan struct{})}
	fw.wg.Add(1)
	go fw.run(match, logger, onChange)
	return fw, nil
}

func (fw *FileWatcher) run(match func(string) bool, logger *log.Logger, onChange func()) {
	defer fw.wg.Done()
	var timer *time.Timer
	fire := make(chan struct{}, 1)
	for {
		select {
		case <-fw.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !match(filepath.Clean(ev.Name)) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("data file changed", "path", ev.Name, "op", ev.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			onChange()
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("file watcher error", "err", err)
		}
	}
}

// Close stops the watcher and waits for its goroutine to exit. Later calls
// return the result of the first.
func (fw *FileWatcher) Close() error {
	fw.once.Do(func() {
		close(fw.done)
		fw.err = fw.watcher.Close()
		fw.wg.Wait()
	})
	return fw.err
}
