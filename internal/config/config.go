// Package config loads and saves user-configurable settings from
// ~/.config/inkpad/config.json.
package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Config holds all user-configurable settings loaded from config.json
type Config struct {
	UI      UIConfig      `json:"ui"`
	Editor  EditorConfig  `json:"editor"`
	Pointer PointerConfig `json:"pointer"`
	Export  ExportConfig  `json:"export"`
}

// UIConfig holds UI-related settings
type UIConfig struct {
	Theme        string `json:"theme"`        // "light" or "dark"
	SidebarWidth int    `json:"sidebarWidth"` // Sidebar width in dp
	ShowPinned   bool   `json:"showPinned"`
}

// EditorConfig holds editor settings
type EditorConfig struct {
	FontSize    int  `json:"fontSize"`
	ShowPreview bool `json:"showPreview"`
	AutoSaveMs  int  `json:"autoSaveMs"`
}

// PointerConfig tunes the drag engine's coordinate normalization. The
// engine cannot tell whether an embedding context reports raw or
// device-pixel-ratio-scaled coordinates; ScaleOverride pins the divisor
// when the host knows its behavior, and 0 keeps the window's reported
// scale factor.
type PointerConfig struct {
	ScaleOverride float64 `json:"scaleOverride"`
}

// ExportConfig holds export defaults
type ExportConfig struct {
	Format       string `json:"format"` // currently only "html"
	KeepMetadata bool   `json:"keepMetadata"`
}

// Manager handles loading, saving, and accessing configuration
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	parseErr error // Stores parsing error if config failed to load
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{
		config: DefaultConfig(),
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Theme:        "light",
			SidebarWidth: 220,
			ShowPinned:   true,
		},
		Editor: EditorConfig{
			FontSize:    14,
			ShowPreview: true,
			AutoSaveMs:  2000,
		},
		Pointer: PointerConfig{
			ScaleOverride: 0,
		},
		Export: ExportConfig{
			Format:       "html",
			KeepMetadata: false,
		},
	}
}

// ConfigPath returns the config file path: ~/.config/inkpad/config.json
// This is consistent across all platforms (Windows, macOS, Linux)
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "inkpad", "config.json")
}

// Load reads the configuration from the config file
// If the file doesn't exist, creates it with defaults
// If parsing fails, stores the error and returns defaults
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.path == "" {
		m.path = ConfigPath()
	}
	m.parseErr = nil

	configDir := filepath.Dir(m.path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		log.Printf("Config: failed to create directory %s: %v", configDir, err)
		return err
	}

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		log.Printf("Config: creating default config at %s", m.path)
		m.config = DefaultConfig()
		if saveErr := m.saveUnlocked(); saveErr != nil {
			log.Printf("Config: failed to save default config: %v", saveErr)
			return saveErr
		}
		return nil
	}
	if err != nil {
		log.Printf("Config: failed to read %s: %v", m.path, err)
		return err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		// Store error for UI display, use defaults
		log.Printf("Config: JSON parse error: %v", err)
		m.parseErr = err
		m.config = DefaultConfig()
		return nil // Don't return error - we're using defaults
	}

	m.config = &cfg
	return nil
}

// SetPath overrides the config file location. Must be called before Load.
func (m *Manager) SetPath(path string) {
	m.mu.Lock()
	m.path = path
	m.mu.Unlock()
}

// saveUnlocked saves config without acquiring lock (caller must hold lock)
func (m *Manager) saveUnlocked() error {
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0o644)
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveUnlocked()
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return *DefaultConfig()
	}
	return *m.config
}

// ParseError returns the parsing error if config failed to load
func (m *Manager) ParseError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.parseErr
}

// SetTheme updates the theme setting
func (m *Manager) SetTheme(theme string) {
	m.mu.Lock()
	m.config.UI.Theme = theme
	m.mu.Unlock()
	m.Save()
}

// SetSidebarWidth updates the sidebar width
func (m *Manager) SetSidebarWidth(width int) {
	m.mu.Lock()
	m.config.UI.SidebarWidth = width
	m.mu.Unlock()
	m.Save()
}

// PointerScale resolves the normalizer's scale divisor: the override when
// set, otherwise the window scale passed in.
func (m *Manager) PointerScale(windowScale float32) float32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config.Pointer.ScaleOverride > 0 {
		return float32(m.config.Pointer.ScaleOverride)
	}
	if windowScale > 0 {
		return windowScale
	}
	return 1
}

// IsDarkMode returns true if dark mode is enabled
func (m *Manager) IsDarkMode() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.UI.Theme == "dark"
}
