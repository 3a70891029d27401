// Package settings persists the panel's display and behavior options in a
// small TOML file.
package settings

import (
	"bytes"
	"codeberg.org/miketth/kbpanel/pkg/kbpanel"
	"fmt"
	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	SectionDisplay  = "display"
	SectionBehavior = "behavior"
)

var defaults = map[string]map[string]string{
	SectionDisplay: {
		"icon_type":     string(kbpanel.IconKeyboard),
		"show_text":     "true",
		"text_position": string(kbpanel.TextRight),
	},
	SectionBehavior: {
		"update_interval": "1",
		"autostart":       "true",
		"restore_last":    "false",
	},
}

type Store struct {
	path   string
	values map[string]map[string]string
	log    *zap.SugaredLogger
}

// Open loads path, regenerating it from defaults when it is missing or
// cannot be parsed. It never fails: the store always ends up usable.
func Open(path string, log *zap.SugaredLogger) *Store {
	s := &Store{path: path, log: log}

	values, err := s.load()
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnw("settings unreadable, regenerating defaults", "path", path, "error", err)
		}
		s.values = copyDefaults()
	} else {
		s.values = values
		fillDefaults(s.values)
	}

	if err := s.save(); err != nil {
		log.Warnw("write settings", "path", path, "error", err)
	}

	return s
}

func (s *Store) load() (map[string]map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}

	values := make(map[string]map[string]string)
	for section, v := range raw {
		table, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%q is not a section", section)
		}

		values[section] = make(map[string]string, len(table))
		for key, val := range table {
			switch val.(type) {
			case string, bool, int64, float64:
				values[section][key] = fmt.Sprint(val)
			default:
				return nil, fmt.Errorf("unsupported value for %s.%s", section, key)
			}
		}
	}

	return values, nil
}

func (s *Store) save() error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s.values); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}

	return nil
}

func (s *Store) Get(section, key, fallback string) string {
	if v, ok := s.values[section][key]; ok {
		return v
	}
	if fallback != "" {
		return fallback
	}
	return defaults[section][key]
}

// Set updates the value in memory and persists it immediately. The
// in-memory value is kept even when the write fails.
func (s *Store) Set(section, key, value string) error {
	if s.values[section] == nil {
		s.values[section] = make(map[string]string)
	}
	s.values[section][key] = value

	if err := s.save(); err != nil {
		s.log.Warnw("write settings", "path", s.path, "section", section, "key", key, "error", err)
		return err
	}
	return nil
}

func (s *Store) Bool(section, key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(s.Get(section, key, strconv.FormatBool(fallback)))) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}

func (s *Store) SetBool(section, key string, value bool) error {
	return s.Set(section, key, strconv.FormatBool(value))
}

func (s *Store) IconStyle() kbpanel.IconStyle {
	style := kbpanel.IconStyle(s.Get(SectionDisplay, "icon_type", string(kbpanel.IconKeyboard)))
	if !style.Valid() {
		return kbpanel.IconKeyboard
	}
	return style
}

// SetIconStyle ignores unknown styles.
func (s *Store) SetIconStyle(style kbpanel.IconStyle) error {
	if !style.Valid() {
		return nil
	}
	return s.Set(SectionDisplay, "icon_type", string(style))
}

func (s *Store) ShowText() bool {
	return s.Bool(SectionDisplay, "show_text", true)
}

func (s *Store) SetShowText(show bool) error {
	return s.SetBool(SectionDisplay, "show_text", show)
}

func (s *Store) TextPosition() kbpanel.TextPosition {
	if kbpanel.TextPosition(s.Get(SectionDisplay, "text_position", "")) == kbpanel.TextLeft {
		return kbpanel.TextLeft
	}
	return kbpanel.TextRight
}

func (s *Store) Autostart() bool {
	return s.Bool(SectionBehavior, "autostart", true)
}

func (s *Store) SetAutostart(enabled bool) error {
	return s.SetBool(SectionBehavior, "autostart", enabled)
}

func (s *Store) RestoreLast() bool {
	return s.Bool(SectionBehavior, "restore_last", false)
}

func (s *Store) UpdateInterval() int {
	n, err := strconv.Atoi(strings.TrimSpace(s.Get(SectionBehavior, "update_interval", "1")))
	if err != nil {
		return 1
	}
	return min(max(1, n), kbpanel.MaxUpdateInterval)
}

func copyDefaults() map[string]map[string]string {
	out := make(map[string]map[string]string, len(defaults))
	fillDefaults(out)
	return out
}

func fillDefaults(values map[string]map[string]string) {
	for section, options := range defaults {
		if values[section] == nil {
			values[section] = make(map[string]string, len(options))
		}
		for key, value := range options {
			if _, ok := values[section][key]; !ok {
				values[section][key] = value
			}
		}
	}
}
