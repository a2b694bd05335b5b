package common

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.Server.HTTPAddr != ":5000" {
		t.Errorf("HTTPAddr = %q", cfg.Server.HTTPAddr)
	}
	if cfg.Server.MaxUploadBytes != 32<<20 {
		t.Errorf("MaxUploadBytes = %d", cfg.Server.MaxUploadBytes)
	}
	if cfg.Rules.Path != "configs/rules.json" {
		t.Errorf("Rules.Path = %q", cfg.Rules.Path)
	}
	if cfg.Rules.NumericLocale != "auto" {
		t.Errorf("NumericLocale = %q", cfg.Rules.NumericLocale)
	}
	if cfg.OCR.TesseractLang != "fra" {
		t.Errorf("TesseractLang = %q", cfg.OCR.TesseractLang)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("NUMERIC_LOCALE", "fr")
	t.Setenv("OCR_DPI", "150")

	cfg := LoadConfig()
	if cfg.Server.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.Server.HTTPAddr)
	}
	if cfg.Server.MaxUploadBytes != 1048576 {
		t.Errorf("MaxUploadBytes = %d", cfg.Server.MaxUploadBytes)
	}
	if cfg.Server.ShutdownTimeout != 3*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Rules.NumericLocale != "fr" {
		t.Errorf("NumericLocale = %q", cfg.Rules.NumericLocale)
	}
	if cfg.OCR.DPI != 150 {
		t.Errorf("DPI = %d", cfg.OCR.DPI)
	}
}

func TestLoadConfigBadValuesFallBack(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "beaucoup")
	t.Setenv("SHUTDOWN_TIMEOUT", "bientôt")
	t.Setenv("OCR_DPI", "3.5")

	cfg := LoadConfig()
	if cfg.Server.MaxUploadBytes != 32<<20 {
		t.Errorf("MaxUploadBytes = %d, want default", cfg.Server.MaxUploadBytes)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want default", cfg.Server.ShutdownTimeout)
	}
	if cfg.OCR.DPI != 300 {
		t.Errorf("DPI = %d, want default", cfg.OCR.DPI)
	}
}

func TestValidateRejectsBadLocale(t *testing.T) {
	cfg := LoadConfig()
	cfg.Rules.NumericLocale = "de"
	if err := cfg.Validate(); err == nil {
		t.Error("expected a validation error for an unknown locale")
	}
}
