package store

// MockSettingsStore is a Provider returning fixed settings.
type MockSettingsStore struct {
	Settings UserSettings
	Calls    int
}

// LoadSettings returns the configured settings.
func (m *MockSettingsStore) LoadSettings() UserSettings {
	m.Calls++
	return m.Settings
}
