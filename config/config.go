package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the dashboard.
// Fields may be loaded from a JSON or YAML file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug" yaml:"debug"`

	// Upload validation
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes"`
	ScreenCapture  bool  `json:"screen_capture" yaml:"screen_capture"`

	// Simulated analysis
	AnalysisDelayMs          int  `json:"analysis_delay_ms" yaml:"analysis_delay_ms"`
	MinGreenSeconds          int  `json:"min_green_seconds" yaml:"min_green_seconds"`
	MaxGreenSeconds          int  `json:"max_green_seconds" yaml:"max_green_seconds"`
	InvalidateResultOnChange bool `json:"invalidate_result_on_change" yaml:"invalidate_result_on_change"`

	// Presentation
	NotificationSeconds int  `json:"notification_seconds" yaml:"notification_seconds"`
	PreviewWidth        int  `json:"preview_width" yaml:"preview_width"`
	PreviewHeight       int  `json:"preview_height" yaml:"preview_height"`
	ChartWidth          int  `json:"chart_width" yaml:"chart_width"`
	ChartHeight         int  `json:"chart_height" yaml:"chart_height"`
	DarkMode            bool `json:"dark_mode" yaml:"dark_mode"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:                    false,
		MaxUploadBytes:           5 * 1024 * 1024,
		ScreenCapture:            true,
		AnalysisDelayMs:          3000,
		MinGreenSeconds:          30,
		MaxGreenSeconds:          89,
		InvalidateResultOnChange: true,
		NotificationSeconds:      4,
		PreviewWidth:             220,
		PreviewHeight:            128,
		ChartWidth:               360,
		ChartHeight:              220,
		DarkMode:                 false,
	}
}

// ErrInvalidSetting reports a configuration value that cannot be used as given.
var ErrInvalidSetting = errors.New("config: invalid setting")

// Validate clamps/normalizes values to safe ranges. A green range whose max is
// below its min is an error rather than a guess.
func (c *Config) Validate() error {
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 5 * 1024 * 1024
	}
	if c.AnalysisDelayMs < 0 {
		c.AnalysisDelayMs = 3000
	}
	if c.MinGreenSeconds <= 0 {
		c.MinGreenSeconds = 30
	}
	if c.MaxGreenSeconds <= 0 {
		c.MaxGreenSeconds = 89
	}
	if c.NotificationSeconds <= 0 {
		c.NotificationSeconds = 4
	}
	if c.PreviewWidth < 50 {
		c.PreviewWidth = 50
	}
	if c.PreviewHeight < 50 {
		c.PreviewHeight = 50
	}
	if c.ChartWidth < 120 {
		c.ChartWidth = 120
	}
	if c.ChartHeight < 80 {
		c.ChartHeight = 80
	}
	if c.MaxGreenSeconds < c.MinGreenSeconds {
		return fmt.Errorf("%w: max green %ds is below min green %ds", ErrInvalidSetting, c.MaxGreenSeconds, c.MinGreenSeconds)
	}
	return nil
}

// WithAnalysisSettings returns a copy of c with the settings panel's text
// fields applied. Unparsable or inconsistent input is rejected, not clamped.
func (c *Config) WithAnalysisSettings(delayMs, minGreen, maxGreen string) (*Config, error) {
	cfg := *c
	fields := []struct {
		name string
		text string
		dst  *int
	}{
		{"analysis delay", delayMs, &cfg.AnalysisDelayMs},
		{"min green", minGreen, &cfg.MinGreenSeconds},
		{"max green", maxGreen, &cfg.MaxGreenSeconds},
	}
	for _, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f.text))
		if err != nil {
			return nil, fmt.Errorf("%w: %s %q is not a whole number", ErrInvalidSetting, f.name, strings.TrimSpace(f.text))
		}
		*f.dst = v
	}
	if cfg.AnalysisDelayMs < 0 {
		return nil, fmt.Errorf("%w: analysis delay must not be negative", ErrInvalidSetting)
	}
	if cfg.MinGreenSeconds <= 0 {
		return nil, fmt.Errorf("%w: min green must be positive", ErrInvalidSetting)
	}
	if cfg.MaxGreenSeconds < cfg.MinGreenSeconds {
		return nil, fmt.Errorf("%w: max green %ds is below min green %ds", ErrInvalidSetting, cfg.MaxGreenSeconds, cfg.MinGreenSeconds)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AnalysisDelay returns the simulated analysis delay.
func (c *Config) AnalysisDelay() time.Duration {
	return time.Duration(c.AnalysisDelayMs) * time.Millisecond
}

// NotificationTTL returns how long a notification stays on screen.
func (c *Config) NotificationTTL() time.Duration {
	return time.Duration(c.NotificationSeconds) * time.Second
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load attempts to read configuration from the given path; YAML is chosen by
// the .yaml/.yml extension, JSON otherwise. If the file does not exist it
// returns DefaultConfig(). On parse error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to the given path in the format its extension selects.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if isYAML(path) {
		enc := yaml.NewEncoder(f)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
