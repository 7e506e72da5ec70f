// SPDX-License-Identifier: MIT

// Package settings reads the add-on settings that decide which channels are
// enabled. The store is read-only; the add-on owns the file.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	xglog "github.com/ManuGH/ipwww-iptv/internal/log"
	"github.com/ManuGH/ipwww-iptv/internal/metrics"
)

// Reader is the read side of a settings store.
type Reader interface {
	Get(key string) (string, bool)
}

// Store holds a snapshot of key/value settings loaded from a YAML file.
type Store struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
	logger zerolog.Logger
}

// Open loads settings from path. A missing file yields an empty store, the
// same as an add-on that was never configured.
func Open(path string) (*Store, error) {
	s := &Store{
		path:   filepath.Clean(path),
		values: map[string]string{},
		logger: xglog.WithComponent("settings"),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// FromMap builds an in-memory store that cannot be reloaded.
func FromMap(values map[string]string) *Store {
	cp := make(map[string]string, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return &Store{values: cp, logger: xglog.WithComponent("settings")}
}

// Path returns the backing file, empty for in-memory stores.
func (s *Store) Path() string { return s.path }

// Get returns the raw value of key.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Bool reports whether key holds a true value ("true", "1", ...).
func (s *Store) Bool(key string) bool {
	v, _ := s.Get(key)
	return parseBool(v)
}

// Snapshot returns a copy of all settings.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Reload re-reads the backing file. On error the previous snapshot stays.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	values, err := load(s.path)
	metrics.RecordSettingsReload(err == nil)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.values = values
	s.mu.Unlock()
	return nil
}

func load(path string) (map[string]string, error) {
	// #nosec G304 -- path comes from operator configuration
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	return parse(data)
}

// parse decodes a flat YAML mapping. Scalars of any type are kept as their
// literal text so "true" and true read the same.
func parse(data []byte) (map[string]string, error) {
	values := map[string]string{}
	if len(bytes.TrimSpace(data)) == 0 {
		return values, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	if len(doc.Content) == 0 {
		return values, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse settings: top level must be a mapping, got %s", kindName(root.Kind))
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("parse settings: %s: line %d: value must be a scalar", key.Value, val.Line)
		}
		if val.Tag == "!!null" {
			values[key.Value] = ""
			continue
		}
		values[key.Value] = val.Value
	}
	return values, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return strconv.Itoa(int(k))
	}
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}
