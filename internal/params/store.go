// Package params holds the printing cost parameters and the store that
// persists them as a JSON record in the operator's home directory.
package params

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"printk/internal/format"
)

// DefaultFileName is the record name used under the home directory.
const DefaultFileName = "configurazione.json"

// ErrCorruptRecord means the persisted record is not a JSON object.
var ErrCorruptRecord = errors.New("corrupt parameter record")

// Store reads and writes the parameter record.
type Store struct {
	path   string
	logger *zap.Logger
}

// DefaultPath returns $HOME/configurazione.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("params.DefaultPath: %w", err)
	}
	return filepath.Join(home, DefaultFileName), nil
}

func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Path returns the location of the record.
func (s *Store) Path() string {
	return s.path
}

// Load reads the record and normalizes it: the legacy volume key is renamed,
// missing keys get their default and values that are not numeric fall back
// to the default. A missing file is treated as an empty record.
func (s *Store) Load() (Set, error) {
	const operation = "params.Store.Load"

	raw := map[string]any{}

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.logger.Info("Parameter record not found, using defaults", zap.String("path", s.path))
	case err != nil:
		return nil, fmt.Errorf("%s: read %s: %w", operation, s.path, err)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%s: %w: %v", operation, ErrCorruptRecord, err)
		}
		if raw == nil {
			raw = map[string]any{}
		}
	}

	return s.normalize(raw), nil
}

func (s *Store) normalize(raw map[string]any) Set {
	if legacy, ok := raw[LegacyAnnualVolume]; ok {
		raw[KeyAnnualVolume] = legacy
		delete(raw, LegacyAnnualVolume)
		s.logger.Info("Migrated legacy parameter key",
			zap.String("from", LegacyAnnualVolume),
			zap.String("to", KeyAnnualVolume))
	}

	defaults := Defaults()
	for k, v := range defaults {
		if _, ok := raw[k]; !ok {
			raw[k] = v
		}
	}

	out := make(Set, len(raw))
	for k, v := range raw {
		if f, ok := toFloat(v); ok {
			out[k] = f
			continue
		}
		if d, ok := defaults[k]; ok {
			s.logger.Debug("Parameter is not numeric, using default",
				zap.String("key", k),
				zap.Any("value", v),
				zap.Float64("default", d))
			out[k] = d
			continue
		}
		s.logger.Warn("Dropping non-numeric unknown parameter",
			zap.String("key", k),
			zap.Any("value", v))
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := format.ParseDecimal(n)
		return f, err == nil
	default:
		return 0, false
	}
}

// Save overwrites the record with the whole set.
func (s *Store) Save(set Set) error {
	const operation = "params.Store.Save"

	data, err := json.MarshalIndent(set, "", "    ")
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", operation, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%s: create dir: %w", operation, err)
	}

	tmp, err := os.CreateTemp(dir, ".printk-*.json")
	if err != nil {
		return fmt.Errorf("%s: create temp file: %w", operation, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: write: %w", operation, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: close: %w", operation, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%s: replace %s: %w", operation, s.path, err)
	}

	s.logger.Info("Parameters saved", zap.String("path", s.path))
	return nil
}
