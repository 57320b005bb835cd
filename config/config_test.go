package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("UPLOAD_DIR", "")
	t.Setenv("REPORT_DIR", "")
	t.Setenv("MAX_UPLOAD_MB", "")
	t.Setenv("CLEANUP_INTERVAL_HOURS", "")
	t.Setenv("COMPANY_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UploadDir == "" || cfg.ReportDir == "" {
		t.Errorf("expected default dirs, got %+v", cfg)
	}
	if cfg.MaxUploadMB != 16 {
		t.Errorf("MaxUploadMB = %d, want 16", cfg.MaxUploadMB)
	}
	if cfg.CleanupIntervalHours != 24 {
		t.Errorf("CleanupIntervalHours = %d, want 24", cfg.CleanupIntervalHours)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("UPLOAD_DIR", "/tmp/up")
	t.Setenv("REPORT_DIR", "/tmp/rep")
	t.Setenv("MAX_UPLOAD_MB", "32")
	t.Setenv("CLEANUP_INTERVAL_HOURS", "6")
	t.Setenv("COMPANY_NAME", "ACME PLY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UploadDir != "/tmp/up" || cfg.ReportDir != "/tmp/rep" {
		t.Errorf("dirs not overridden: %+v", cfg)
	}
	if cfg.MaxUploadMB != 32 {
		t.Errorf("MaxUploadMB = %d, want 32", cfg.MaxUploadMB)
	}
	if cfg.CleanupIntervalHours != 6 {
		t.Errorf("CleanupIntervalHours = %d, want 6", cfg.CleanupIntervalHours)
	}
	if cfg.CompanyName != "ACME PLY" {
		t.Errorf("CompanyName = %q", cfg.CompanyName)
	}
}

func TestLoadBadIntFallsBack(t *testing.T) {
	t.Setenv("MAX_UPLOAD_MB", "not-a-number")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxUploadMB != 16 {
		t.Errorf("MaxUploadMB = %d, want fallback 16", cfg.MaxUploadMB)
	}
}
