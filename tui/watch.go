package tui

import (
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounceDuration = 100 * time.Millisecond

// fileChangedMsg is sent when the definition file was written
type fileChangedMsg struct{}

// watchErrMsg carries a watcher error; watching continues afterwards
type watchErrMsg struct {
	err error
}

// newWatcher watches the directory holding path, since editors often
// replace files instead of writing them in place. Returns nil when
// watching is not possible; the viewer still reloads on demand.
func newWatcher(path string, logger *zap.Logger) *fsnotify.Watcher {
	if path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); err != nil {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("failed to create watcher", zap.Error(err))
		return nil
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		logger.Warn("failed to watch directory", zap.String("dir", dir), zap.Error(err))
		return nil
	}
	return watcher
}

// waitForChange returns a tea.Cmd that blocks until path changes, with
// debouncing so a burst of writes yields one reload
func waitForChange(watcher *fsnotify.Watcher, path string, logger *zap.Logger) tea.Cmd {
	if watcher == nil {
		return nil
	}
	name := filepath.Clean(path)

	return func() tea.Msg {
		timer := newDebounceTimer()
		defer timer.Stop()

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != name {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				resetDebounceTimer(timer)

			case <-timer.C:
				return fileChangedMsg{}

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Warn("watcher error", zap.Error(err))
				return watchErrMsg{err: err}
			}
		}
	}
}

func newDebounceTimer() *time.Timer {
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	return timer
}

func resetDebounceTimer(timer *time.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(debounceDuration)
}
