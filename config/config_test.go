package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxUploadBytes != 5242880 || cfg.AnalysisDelay() != 3*time.Second {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.MinGreenSeconds != 30 || cfg.MaxGreenSeconds != 89 || !cfg.InvalidateResultOnChange {
		t.Fatalf("unexpected analysis defaults %+v", cfg)
	}
}

func TestSaveLoad_JSONAndYAML(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"cfg.json", "cfg.yaml"} {
		path := filepath.Join(dir, name)
		cfg := DefaultConfig()
		cfg.AnalysisDelayMs = 250
		cfg.DarkMode = true
		cfg.InvalidateResultOnChange = false
		if err := cfg.Save(path); err != nil {
			t.Fatalf("%s save: %v", name, err)
		}
		got, err := Load(path)
		if err != nil {
			t.Fatalf("%s load: %v", name, err)
		}
		if got.AnalysisDelayMs != 250 || !got.DarkMode || got.InvalidateResultOnChange {
			t.Fatalf("%s round trip mismatch: %+v", name, got)
		}
	}
}

func TestLoad_YAMLPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yml")
	if err := os.WriteFile(path, []byte("min_green_seconds: 20\nmax_green_seconds: 40\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MinGreenSeconds != 20 || cfg.MaxGreenSeconds != 40 {
		t.Fatalf("unexpected range min=%d max=%d", cfg.MinGreenSeconds, cfg.MaxGreenSeconds)
	}
	if cfg.PreviewWidth != 220 {
		t.Fatalf("unset field should keep default, got %d", cfg.PreviewWidth)
	}
}

func TestLoad_InvertedGreenRangeRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inverted.yml")
	if err := os.WriteFile(path, []byte("max_green_seconds: 10\nmin_green_seconds: 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("expected ErrInvalidSetting, got %v", err)
	}
	if cfg.MinGreenSeconds != 30 || cfg.MaxGreenSeconds != 89 {
		t.Fatalf("expected defaults alongside error, got min=%d max=%d", cfg.MinGreenSeconds, cfg.MaxGreenSeconds)
	}
}

func TestWithAnalysisSettings(t *testing.T) {
	base := DefaultConfig()

	got, err := base.WithAnalysisSettings(" 500 ", "20", "60")
	if err != nil {
		t.Fatalf("valid settings rejected: %v", err)
	}
	if got.AnalysisDelayMs != 500 || got.MinGreenSeconds != 20 || got.MaxGreenSeconds != 60 {
		t.Fatalf("settings not applied: %+v", got)
	}
	if base.MinGreenSeconds != 30 {
		t.Fatalf("receiver modified")
	}

	for _, in := range [][3]string{
		{"3000", "100", "50"}, // inverted range
		{"3000", "abc", "60"}, // not a number
		{"-1", "30", "89"},    // negative delay
		{"3000", "0", "89"},   // non-positive min
		{"", "30", "89"},      // empty
	} {
		if _, err := base.WithAnalysisSettings(in[0], in[1], in[2]); !errors.Is(err, ErrInvalidSetting) {
			t.Fatalf("%v: expected ErrInvalidSetting, got %v", in, err)
		}
	}
}

func TestLoad_BadJSONReturnsDefaultsWithError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if cfg == nil || cfg.MaxUploadBytes != 5242880 {
		t.Fatalf("expected defaults alongside error")
	}
}

func TestValidate_Clamps(t *testing.T) {
	cfg := &Config{MaxUploadBytes: -1, AnalysisDelayMs: -5, PreviewWidth: 1, ChartHeight: 1}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.MaxUploadBytes != 5242880 || cfg.AnalysisDelayMs != 3000 || cfg.PreviewWidth != 50 || cfg.ChartHeight != 80 {
		t.Fatalf("unexpected clamp result %+v", cfg)
	}
	if cfg.MinGreenSeconds != 30 || cfg.MaxGreenSeconds != 89 || cfg.NotificationSeconds != 4 {
		t.Fatalf("unexpected clamp result %+v", cfg)
	}
}
