package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.REPL.Prompt != "bloc> " {
		t.Errorf("unexpected default prompt: %q", cfg.REPL.Prompt)
	}
	if cfg.Output.Format != "tree" {
		t.Errorf("unexpected default format: %q", cfg.Output.Format)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("unexpected default log level: %q", cfg.Logging.Level)
	}
}

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing config file must not error: %v", err)
	}
	if cfg.REPL.HistorySize != 1000 {
		t.Errorf("expected default history size, got %d", cfg.REPL.HistorySize)
	}
}

func TestConfigRoundTripYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.REPL.Prompt = ">> "
	cfg.Output.Format = "json"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.REPL.Prompt != ">> " {
		t.Errorf("prompt not preserved, got %q", loaded.REPL.Prompt)
	}
	if loaded.Output.Format != "json" {
		t.Errorf("format not preserved, got %q", loaded.Output.Format)
	}
}

func TestConfigRoundTripJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.Logging.Level = "debug"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Logging.Level != "debug" {
		t.Errorf("level not preserved, got %q", loaded.Logging.Level)
	}
}

func TestLoadConfigPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("output:\n  format: yaml\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Output.Format != "yaml" {
		t.Errorf("override not applied, got %q", cfg.Output.Format)
	}
	// Untouched sections keep their defaults.
	if cfg.REPL.Prompt != "bloc> " {
		t.Errorf("default prompt lost, got %q", cfg.REPL.Prompt)
	}
}
