package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Settings contains the local settings of the application
type Settings struct {
	// WeightTracking mirrors every saved health record into the
	// weight_tracking table when enabled
	WeightTracking bool `json:"weight_tracking"`
}

// Store manages the persistent settings
type Store struct {
	filePath string
	mutex    sync.RWMutex
	settings *Settings
}

// DefaultPath returns the settings file location, next to the database
func DefaultPath() string {
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = ".."
	}
	return filepath.Join(dataDir, "settings", "settings.json")
}

// GetStore returns a Store backed by the default settings file
func GetStore() (*Store, error) {
	return NewStore(DefaultPath())
}

// NewStore creates a Store backed by the given file, writing default
// settings when the file does not exist yet
func NewStore(filePath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("error creating settings directory: %w", err)
	}

	store := &Store{
		filePath: filePath,
		settings: &Settings{},
	}

	if err := store.loadFromFile(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading settings: %w", err)
		}
		// If file doesn't exist, use default settings
		store.settings = &Settings{WeightTracking: false}
		if err := store.Save(store.settings); err != nil {
			return nil, fmt.Errorf("error saving default settings: %w", err)
		}
	}

	return store, nil
}

// loadFromFile loads the settings from the file
func (s *Store) loadFromFile() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	settings := &Settings{}
	if err := json.Unmarshal(data, settings); err != nil {
		return fmt.Errorf("error unmarshaling settings: %w", err)
	}

	s.settings = settings
	return nil
}

// Load returns a copy of the current settings
func (s *Store) Load() Settings {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return *s.settings
}

// Save persists the given settings to the file
func (s *Store) Save(settings *Settings) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling settings: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing settings file: %w", err)
	}

	s.settings = settings
	return nil
}

// GetWeightTracking returns whether weight tracking is enabled
func (s *Store) GetWeightTracking() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.settings.WeightTracking
}

// SetWeightTracking toggles weight tracking and persists the change
func (s *Store) SetWeightTracking(enabled bool) error {
	settings := s.Load()
	settings.WeightTracking = enabled
	return s.Save(&settings)
}
