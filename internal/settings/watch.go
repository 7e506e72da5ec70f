// SPDX-License-Identifier: MIT
package settings

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	xglog "github.com/ManuGH/ipwww-iptv/internal/log"
)

// DefaultDebounce collapses the burst of events one save produces.
const DefaultDebounce = 500 * time.Millisecond

// Watch reloads the store whenever its file changes and blocks until ctx is
// done. The parent directory is watched so that editors which replace the
// file by rename are picked up too. onReload, if set, runs after every
// successful reload.
func (s *Store) Watch(ctx context.Context, debounce time.Duration, onReload func()) error {
	if s.path == "" {
		return errors.New("settings: in-memory store cannot be watched")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watch settings dir: %w", err)
	}

	s.logger.Info().
		Str(xglog.FieldEvent, "settings.watcher_started").
		Str(xglog.FieldPath, s.path).
		Msg("watching settings for changes")

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Str(xglog.FieldEvent, "settings.watcher_stopped").Msg("settings watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				s.logger.Debug().
					Str(xglog.FieldEvent, "settings.file_changed").
					Str("op", event.Op.String()).
					Msg("settings file changed")
				timer.Reset(debounce)
			}

		case <-timer.C:
			if err := s.Reload(); err != nil {
				s.logger.Error().Err(err).
					Str(xglog.FieldEvent, "settings.reload_failed").
					Msg("settings reload failed, keeping previous values")
				continue
			}
			s.logger.Info().Str(xglog.FieldEvent, "settings.reloaded").Msg("settings reloaded")
			if onReload != nil {
				onReload()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error().Err(err).
				Str(xglog.FieldEvent, "settings.watcher_error").
				Msg("settings watcher error")
		}
	}
}
