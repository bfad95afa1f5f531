package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	DefaultOptionsPath = "/data/options.json"
	DefaultBackendURL  = "http://supervisor:8091"
	DefaultHAEvent     = "pos_sale"
	DefaultTerminalTTL = 30 * time.Minute
)

// Options mirrors the add-on options file (/data/options.json)
type Options struct {
	BackendURL         string `json:"backend_url"`
	GoogleSheetID      string `json:"google_sheet_id"`
	ServiceAccountJSON string `json:"service_account_json"`
	HAEvent            string `json:"ha_event"`
}

// OptionsPath returns the options file location (OPTIONS_PATH or /data/options.json)
func OptionsPath() string {
	if p := os.Getenv("OPTIONS_PATH"); p != "" {
		return p
	}
	return DefaultOptionsPath
}

// ReadOptions reads and parses the options file at path
func ReadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file: %w", err)
	}

	var o Options
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("failed to parse options file: %w", err)
	}
	return &o, nil
}

// BackendURLSource resolves backend_url each time it is asked, so edits to the
// options file apply to the next request without a restart.
type BackendURLSource struct {
	Path     string
	Fallback string
}

// NewBackendURLSource creates a source reading path, falling back to BACKEND_URL and then the supervisor default
func NewBackendURLSource(path string) *BackendURLSource {
	fallback := os.Getenv("BACKEND_URL")
	if fallback == "" {
		fallback = DefaultBackendURL
	}
	return &BackendURLSource{Path: path, Fallback: fallback}
}

// BackendURL returns the current backend origin without a trailing slash
func (s *BackendURLSource) BackendURL() string {
	url := s.Fallback
	if o, err := ReadOptions(s.Path); err == nil && o.BackendURL != "" {
		url = o.BackendURL
	}
	return strings.TrimRight(url, "/")
}

// BackendSettings holds what the POS backend needs to reach its sheet
type BackendSettings struct {
	SheetID         string
	CredentialsPath string
	HAEvent         string
}

// LoadBackendSettings merges the options file with environment variables (env wins)
func LoadBackendSettings(path string) (*BackendSettings, error) {
	s := &BackendSettings{HAEvent: DefaultHAEvent}
	if o, err := ReadOptions(path); err == nil {
		s.SheetID = o.GoogleSheetID
		s.CredentialsPath = o.ServiceAccountJSON
		if o.HAEvent != "" {
			s.HAEvent = o.HAEvent
		}
	}
	if v := os.Getenv("GOOGLE_SHEET_ID"); v != "" {
		s.SheetID = v
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		s.CredentialsPath = v
	}
	if v := os.Getenv("HA_EVENT"); v != "" {
		s.HAEvent = v
	}

	if s.SheetID == "" {
		return nil, fmt.Errorf("google_sheet_id is not set (options file or GOOGLE_SHEET_ID)")
	}
	if s.CredentialsPath == "" {
		return nil, fmt.Errorf("service account credentials are not set (options file or GOOGLE_APPLICATION_CREDENTIALS)")
	}
	return s, nil
}

// TerminalTTL returns TERMINAL_TTL parsed as a duration, or the default
func TerminalTTL() time.Duration {
	if v := os.Getenv("TERMINAL_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return DefaultTerminalTTL
}
