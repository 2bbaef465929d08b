package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	// DefaultLocalEncoding is used when the environment names no charset.
	DefaultLocalEncoding = "UTF-8"

	// DefaultHistoryDepth is how many tasks a session keeps.
	DefaultHistoryDepth = 8
)

// Settings holds the tunable behavior of batchren.
type Settings struct {
	// LocalEncoding is the system encoding used by the to-unicode and
	// to-locale rules.
	LocalEncoding string `json:"localEncoding,omitempty"`

	// HistoryDepth is the number of tasks kept per session, newest on top.
	HistoryDepth int `json:"historyDepth,omitempty"`
}

// FileReader is the subset of fsops.FS needed to read the settings file.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// LoadSettings resolves settings in increasing priority: built-in defaults,
// the JSON file at p.Config (if present), then environment variables
// BATCHREN_LOCAL_ENCODING and BATCHREN_HISTORY. Without an explicit local
// encoding the charset suffix of LC_ALL, LC_CTYPE or LANG is used.
func LoadSettings(fs FileReader, p *Paths) (*Settings, error) {
	s := &Settings{
		LocalEncoding: localeCharset(),
		HistoryDepth:  DefaultHistoryDepth,
	}

	data, err := fs.ReadFile(p.Config)
	switch {
	case err == nil:
		var file Settings
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", p.Config, err)
		}
		if file.LocalEncoding != "" {
			s.LocalEncoding = file.LocalEncoding
		}
		if file.HistoryDepth != 0 {
			s.HistoryDepth = file.HistoryDepth
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read %s: %w", p.Config, err)
	}

	if v := os.Getenv("BATCHREN_LOCAL_ENCODING"); v != "" {
		s.LocalEncoding = v
	}
	if v := os.Getenv("BATCHREN_HISTORY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BATCHREN_HISTORY %q: %w", v, err)
		}
		s.HistoryDepth = n
	}

	if s.HistoryDepth < 1 {
		return nil, fmt.Errorf("history depth must be at least 1, got %d", s.HistoryDepth)
	}
	return s, nil
}

// localeCharset extracts the charset from a POSIX locale such as
// "ja_JP.SJIS" or "en_US.UTF-8@euro".
func localeCharset() string {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		if i := strings.IndexByte(v, '@'); i >= 0 {
			v = v[:i]
		}
		if i := strings.IndexByte(v, '.'); i >= 0 && i < len(v)-1 {
			return v[i+1:]
		}
		return DefaultLocalEncoding
	}
	return DefaultLocalEncoding
}
