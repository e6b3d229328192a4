package variant

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	// pollInterval is used when fsnotify is unavailable.
	pollInterval = 250 * time.Millisecond

	// defaultWatchDebounce is how long a file must stay quiet after an
	// fsnotify event before it is loaded.
	defaultWatchDebounce = 100 * time.Millisecond
)

// WatchEvent reports the outcome of loading one descriptor file.
type WatchEvent struct {
	Path     string
	Families []string // Families generated (or already present) from the file
	Err      error
}

// Watch generates the families of every descriptor file in dir, then keeps
// generating families from files created or rewritten there until ctx is
// cancelled. Writes to a file are coalesced until the file has been quiet
// for the registry's watch debounce, then one event is sent per load. Rewriting a file with a
// changed descriptor does not replace the family; the ConfigurationError
// is reported on the channel. The channel is closed when ctx is done.
//
// Uses fsnotify with a polling fallback.
func (r *Registry) Watch(ctx context.Context, dir string) (<-chan WatchEvent, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch descriptor dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch descriptor dir: %s is not a directory", dir)
	}

	// Start watching before the initial scan so no file falls in between.
	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		if addErr := watcher.Add(dir); addErr != nil {
			watcher.Close()
			watcher, err = nil, addErr
		}
	}
	if err != nil {
		r.logger.Warn("file watching unavailable, polling descriptor dir",
			slog.String("dir", dir),
			slog.Any("error", err))
	}

	ch := make(chan WatchEvent, 16)
	go func() {
		defer close(ch)

		seen := make(map[string]time.Time)
		paths, err := DescriptorFiles(dir)
		if err != nil {
			r.send(ctx, ch, WatchEvent{Path: dir, Err: err})
		}
		for _, p := range paths {
			seen[p] = modTime(p)
			r.load(ctx, ch, p)
		}

		if watcher == nil {
			r.watchPolling(ctx, ch, dir, seen)
			return
		}
		defer watcher.Close()
		r.watchEvents(ctx, ch, watcher)
	}()

	return ch, nil
}

// watchEvents loads descriptor files as fsnotify reports them, once each
// file has been quiet for the debounce interval.
func (r *Registry) watchEvents(ctx context.Context, ch chan<- WatchEvent, watcher *fsnotify.Watcher) {
	pending := make(map[string]time.Time)
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if _, ok := FormatFromPath(event.Name); !ok {
				continue
			}
			pending[event.Name] = time.Now().Add(r.watchDebounce)
			timer, fire = rearm(timer, pending)

		case <-fire:
			now := time.Now()
			for path, due := range pending {
				if now.Before(due) {
					continue
				}
				delete(pending, path)
				r.load(ctx, ch, path)
			}
			timer, fire = rearm(timer, pending)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			r.logger.Warn("descriptor watcher error", slog.Any("error", err))
		}
	}
}

// rearm points timer at the earliest pending deadline. It returns a nil
// channel when nothing is pending.
func rearm(timer *time.Timer, pending map[string]time.Time) (*time.Timer, <-chan time.Time) {
	if len(pending) == 0 {
		return timer, nil
	}
	var next time.Time
	for _, due := range pending {
		if next.IsZero() || due.Before(next) {
			next = due
		}
	}

	wait := time.Until(next)
	if timer == nil {
		timer = time.NewTimer(wait)
	} else {
		timer.Stop()
		timer.Reset(wait)
	}
	return timer, timer.C
}

// watchPolling rescans dir and loads files that are new or modified.
func (r *Registry) watchPolling(ctx context.Context, ch chan<- WatchEvent, dir string, seen map[string]time.Time) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			paths, err := DescriptorFiles(dir)
			if err != nil {
				continue
			}
			for _, p := range paths {
				mt := modTime(p)
				if prev, ok := seen[p]; ok && !mt.After(prev) {
					continue
				}
				seen[p] = mt
				r.load(ctx, ch, p)
			}
		}
	}
}

// load generates every family of one file and reports the result.
func (r *Registry) load(ctx context.Context, ch chan<- WatchEvent, path string) {
	ev := WatchEvent{Path: path}

	ds, err := LoadFile(path)
	if err != nil {
		ev.Err = err
	}
	for _, d := range ds {
		if _, err := r.Generate(d); err != nil {
			ev.Err = fmt.Errorf("%s: %w", path, err)
			break
		}
		ev.Families = append(ev.Families, d.Name)
	}

	if ev.Err != nil {
		r.logger.Warn("descriptor file not applied",
			slog.String("path", filepath.Base(path)),
			slog.Any("error", ev.Err))
	}
	r.send(ctx, ch, ev)
}

func (r *Registry) send(ctx context.Context, ch chan<- WatchEvent, ev WatchEvent) {
	select {
	case ch <- ev:
	case <-ctx.Done():
	}
}

func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
