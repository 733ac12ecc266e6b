package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, defaultAPIBase)
	}
	if cfg.HealthTimeout != 10*time.Second {
		t.Fatalf("HealthTimeout = %v, want 10s", cfg.HealthTimeout)
	}
	if cfg.UploadTimeout != 2*time.Minute {
		t.Fatalf("UploadTimeout = %v, want 2m", cfg.UploadTimeout)
	}

	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base = "  http://10.0.0.5:9999/api/v1/  "
health_timeout = " 3s "
upload_timeout = "90s"
log_file = "  ~/.flashdeck/run.log  "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != "http://10.0.0.5:9999/api/v1" {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, "http://10.0.0.5:9999/api/v1")
	}
	if cfg.HealthTimeout != 3*time.Second {
		t.Fatalf("HealthTimeout = %v, want 3s", cfg.HealthTimeout)
	}
	if cfg.UploadTimeout != 90*time.Second {
		t.Fatalf("UploadTimeout = %v, want 90s", cfg.UploadTimeout)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base = "   "
upload_timeout = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, defaultAPIBase)
	}
	if cfg.UploadTimeout != defaultUploadTimeout {
		t.Fatalf("UploadTimeout = %v, want %v", cfg.UploadTimeout, defaultUploadTimeout)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_base = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_InvalidDurationFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`upload_timeout = "soon"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "upload_timeout") {
		t.Fatalf("Load error = %v, want it to mention upload_timeout", err)
	}
}

func TestLoad_ValidationRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base = "not a url"
health_timeout = "-1s"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "invalid configuration") {
		t.Fatalf("Load error = %q, want invalid configuration", msg)
	}
	if !strings.Contains(msg, "api_base") || !strings.Contains(msg, "health_timeout") {
		t.Fatalf("Load error = %q, want both api_base and health_timeout reported", msg)
	}
}

func TestWithAPIBase(t *testing.T) {
	cfg := Default()

	same, err := cfg.WithAPIBase("  ")
	if err != nil {
		t.Fatalf("WithAPIBase blank returned error: %v", err)
	}
	if same.APIBase != cfg.APIBase {
		t.Fatalf("APIBase = %q, want unchanged %q", same.APIBase, cfg.APIBase)
	}

	next, err := cfg.WithAPIBase("https://cards.example.com/api/v1/")
	if err != nil {
		t.Fatalf("WithAPIBase returned error: %v", err)
	}
	if next.APIBase != "https://cards.example.com/api/v1" {
		t.Fatalf("APIBase = %q, want trailing slash trimmed", next.APIBase)
	}

	if _, err := cfg.WithAPIBase("ftp://example.com"); err == nil {
		t.Fatalf("WithAPIBase(ftp) returned nil error, want validation error")
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
