package adapters

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"layered-views/internal/ports"
)

const DefaultWatchDebounce = 200 * time.Millisecond

// LayoutWatcherAdapter follows file changes below search roots with
// fsnotify.  Subdirectories created while watching are picked up.
type LayoutWatcherAdapter struct {
	debounce time.Duration
}

func NewLayoutWatcherAdapter() LayoutWatcherAdapter {
	return LayoutWatcherAdapter{debounce: DefaultWatchDebounce}
}

// WithDebounce sets the quiet period that must pass after the last event
// before onChange fires.
func (a LayoutWatcherAdapter) WithDebounce(d time.Duration) LayoutWatcherAdapter {
	if d > 0 {
		a.debounce = d
	}
	return a
}

func (a LayoutWatcherAdapter) Watch(ctx context.Context, dirs []string, ignore []string, onChange func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create layout watcher").
			WithCause(err)
	}
	defer watcher.Close()

	watched := 0
	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			log.Warn().Str("dir", dir).Msg("search path missing, not watching")
			continue
		}
		if err := addRecursive(watcher, dir); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to watch search path: " + dir).
				WithCause(err)
		}
		watched++
	}
	if watched == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("no existing search paths to watch")
	}

	debounce := a.debounce
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	ignored := newIgnoreSet(ignore)

	var (
		timer   *time.Timer
		pending string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		var fire <-chan time.Time
		if timer != nil {
			fire = timer.C
		}

		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(watcher, event.Name); err != nil {
						log.Warn().Err(err).Str("dir", event.Name).Msg("failed to watch new directory")
					}
				}
			}
			if ignored.match(event.Name) {
				continue
			}
			log.Debug().
				Str("path", event.Name).
				Str("op", event.Op.String()).
				Msg("layout change detected")

			pending = event.Name
			if timer == nil {
				timer = time.NewTimer(debounce)
				continue
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)

		case <-fire:
			timer = nil
			if pending != "" {
				path := pending
				pending = ""
				onChange(path)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("layout watcher error")
		}
	}
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && d.Name() == ".git" {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// ignoreSet matches files the watch loop writes itself.  Atomic writes go
// through a temp file in the target's directory whose name starts with
// the target's base name, so those match too.
type ignoreSet []string

func newIgnoreSet(paths []string) ignoreSet {
	set := make(ignoreSet, 0, len(paths))
	for _, path := range paths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		set = append(set, absClean(path))
	}
	return set
}

func (s ignoreSet) match(name string) bool {
	name = absClean(name)
	for _, path := range s {
		if name == path {
			return true
		}
		if filepath.Dir(name) == filepath.Dir(path) && strings.HasPrefix(filepath.Base(name), filepath.Base(path)) {
			return true
		}
	}
	return false
}

func absClean(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

var _ ports.LayoutWatcherPort = LayoutWatcherAdapter{}
