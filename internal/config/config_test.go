package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PRINTK_PARAMS_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if want := filepath.Join(home, "configurazione.json"); cfg.ParamsPath != want {
		t.Errorf("ParamsPath = %q, want %q", cfg.ParamsPath, want)
	}
	if cfg.DefaultMargin != 35 {
		t.Errorf("DefaultMargin = %v, want 35", cfg.DefaultMargin)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.StartupMaxElapsed != 2*time.Minute {
		t.Errorf("StartupMaxElapsed = %v, want 2m", cfg.StartupMaxElapsed)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PRINTK_PARAMS_PATH", "/tmp/printk.json")
	t.Setenv("OPERATOR_CHAT_ID", "42")
	t.Setenv("DEFAULT_MARGIN", "20,5")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for decimal comma in DEFAULT_MARGIN")
	}

	t.Setenv("DEFAULT_MARGIN", "20.5")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ParamsPath != "/tmp/printk.json" {
		t.Errorf("ParamsPath = %q", cfg.ParamsPath)
	}
	if cfg.OperatorChatID != 42 {
		t.Errorf("OperatorChatID = %d, want 42", cfg.OperatorChatID)
	}
	if cfg.DefaultMargin != 20.5 {
		t.Errorf("DefaultMargin = %v, want 20.5", cfg.DefaultMargin)
	}
}

func TestLoad_NegativeMargin(t *testing.T) {
	t.Setenv("PRINTK_PARAMS_PATH", "/tmp/printk.json")
	t.Setenv("DEFAULT_MARGIN", "-1")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for negative margin")
	}
}

func TestValidateBot(t *testing.T) {
	cfg := &Config{}
	if err := cfg.ValidateBot(); err == nil {
		t.Error("Expected error without token")
	}
	cfg.TelegramToken = "123:abc"
	if err := cfg.ValidateBot(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}
