// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ManuGH/ipwww-iptv/internal/log"
)

// ErrUnknownConfigField classifies strict YAML failures caused by unknown keys.
var ErrUnknownConfigField = errors.New("unknown config field")

// Loader resolves configuration with precedence env > .env > file > defaults.
type Loader struct {
	configPath string
	envFile    string
	lookup     envSource
}

// NewLoader reads configPath (optional) and envFile (optional; a missing
// file is ignored) on Load.
func NewLoader(configPath, envFile string) *Loader {
	return &Loader{configPath: configPath, envFile: envFile, lookup: osLookup}
}

// Load resolves and validates the configuration.
func (l *Loader) Load() (AppConfig, error) {
	cfg := Default()

	if l.configPath != "" {
		if err := l.loadFile(&cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	lookup, err := l.envLookup()
	if err != nil {
		return cfg, err
	}
	applyEnv(&cfg, envReader{lookup: lookup, logger: log.WithComponent("config")})

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// envLookup layers the .env file beneath the process environment, so a
// real variable always wins over the file.
func (l *Loader) envLookup() (envSource, error) {
	if l.envFile == "" {
		return l.lookup, nil
	}
	fileEnv, err := godotenv.Read(l.envFile)
	if errors.Is(err, fs.ErrNotExist) {
		return l.lookup, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read env file: %w", err)
	}
	base := l.lookup
	return func(key string) (string, bool) {
		if v, ok := base(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	}, nil
}

func (l *Loader) loadFile(cfg *AppConfig) error {
	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	return decodeStrict(data, cfg)
}

// decodeStrict decodes YAML over cfg, rejecting unknown keys and trailing documents.
func decodeStrict(data []byte, cfg *AppConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return fmt.Errorf("%w: %v", ErrUnknownConfigField, err)
		}
		return fmt.Errorf("strict config parse error: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("config file contains multiple documents or trailing content")
	}
	return nil
}

// Dump renders cfg as YAML.
func Dump(cfg AppConfig) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
