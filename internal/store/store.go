// Package store loads and saves the user's home-view settings.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/bank-insights/internal/fileutils"
	"fjacquet/bank-insights/internal/logging"

	"gopkg.in/yaml.v3"
)

// DefaultSettingsFile is used when no settings file is configured.
const DefaultSettingsFile = "user_settings.json"

// UserSettings lists the currencies and stock tickers shown on the home page.
type UserSettings struct {
	UserCurrencies []string `json:"user_currencies" yaml:"user_currencies"`
	UserStocks     []string `json:"user_stocks" yaml:"user_stocks"`
}

// Provider gives read access to the user settings.
type Provider interface {
	LoadSettings() UserSettings
}

// SettingsStore reads user settings from a JSON or YAML file.
type SettingsStore struct {
	SettingsFile string
	logger       logging.Logger
}

// NewSettingsStore creates a store for settingsFile.
func NewSettingsStore(settingsFile string, logger logging.Logger) *SettingsStore {
	if settingsFile == "" {
		settingsFile = DefaultSettingsFile
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &SettingsStore{
		SettingsFile: settingsFile,
		logger:       logger.WithField(logging.FieldComponent, "settings_store"),
	}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *SettingsStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if fileutils.FileExists(filename) {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("data", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "bank-insights", filename))
	}

	for _, location := range locations {
		if fileutils.FileExists(location) {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadSettings returns the stored settings. A missing or unreadable file
// gives empty lists and a log entry.
func (s *SettingsStore) LoadSettings() UserSettings {
	settings, err := s.Load()
	if err != nil {
		s.logger.WithError(err).Warn("Using empty user settings",
			logging.F(logging.FieldFile, s.SettingsFile))
	}
	return settings
}

// Load reads the settings file. It always returns usable (possibly empty)
// settings; the error explains why the file was not used.
func (s *SettingsStore) Load() (UserSettings, error) {
	empty := UserSettings{UserCurrencies: []string{}, UserStocks: []string{}}

	filePath, err := s.FindConfigFile(s.SettingsFile)
	if err != nil {
		return empty, fmt.Errorf("settings file not found: %s: %w", s.SettingsFile, err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return empty, fmt.Errorf("error reading settings file: %w", err)
	}

	var settings UserSettings
	if isYAML(filePath) {
		err = yaml.Unmarshal(data, &settings)
	} else {
		err = json.Unmarshal(data, &settings)
	}
	if err != nil {
		return empty, fmt.Errorf("error parsing settings file %s: %w", filePath, err)
	}

	settings.UserCurrencies = normalizeCodes(settings.UserCurrencies)
	settings.UserStocks = normalizeCodes(settings.UserStocks)
	s.logger.Debug("Loaded user settings",
		logging.F(logging.FieldFile, filePath),
		logging.F("currencies", len(settings.UserCurrencies)),
		logging.F("stocks", len(settings.UserStocks)))
	return settings, nil
}

// SaveSettings writes settings back to the file they were loaded from, or to
// SettingsFile when it does not exist yet.
func (s *SettingsStore) SaveSettings(settings UserSettings) error {
	filePath, err := s.FindConfigFile(s.SettingsFile)
	if err != nil {
		filePath = s.SettingsFile
	}

	settings.UserCurrencies = normalizeCodes(settings.UserCurrencies)
	settings.UserStocks = normalizeCodes(settings.UserStocks)

	var data []byte
	if isYAML(filePath) {
		data, err = yaml.Marshal(settings)
	} else {
		data, err = json.MarshalIndent(settings, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("error marshaling settings: %w", err)
	}

	if err := fileutils.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing settings: %w", err)
	}

	s.logger.Info("Saved user settings", logging.F(logging.FieldFile, filePath))
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// normalizeCodes upper-cases codes and drops blanks and duplicates.
func normalizeCodes(codes []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}
