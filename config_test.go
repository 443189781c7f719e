package peatrack

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("EMAIL_USER", "")
	t.Setenv("EMAIL_RECEIVER", "")
	t.Setenv("EMAIL_PASS", "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "peatrack.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() on a missing file error = %v, want defaults", err)
	}
	if cfg.Benchmark != "CW8.PA" {
		t.Errorf("Benchmark = %q, want CW8.PA", cfg.Benchmark)
	}
	if got := cfg.Monthly("ESE.PA"); got != 250 {
		t.Errorf("Monthly(ESE.PA) = %v, want 250", got)
	}
	if got := cfg.Monthly("TTE.PA"); got != 0 {
		t.Errorf("Monthly(TTE.PA) = %v, want 0 (tracked only)", got)
	}
	if len(cfg.Tickers()) != 5 {
		t.Errorf("Tickers() = %v, want the 5 default plan tickers", cfg.Tickers())
	}
}

func TestLoadConfig_File(t *testing.T) {
	t.Setenv("EMAIL_USER", "sender@example.com")
	t.Setenv("EMAIL_RECEIVER", "receiver@example.com")
	t.Setenv("EMAIL_PASS", "app-password")

	path := filepath.Join(t.TempDir(), "peatrack.toml")
	content := `
currency = "EUR"
benchmark = "IWDA.AS"

[[plan]]
ticker = "ESE.PA"
monthly = 300.0

[[plan]]
ticker = "AI.PA"
monthly = 0.0

[pages]
owner = "jdoe"
repo = "pea"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Benchmark != "IWDA.AS" {
		t.Errorf("Benchmark = %q, want IWDA.AS", cfg.Benchmark)
	}
	if got := cfg.Monthly("ESE.PA"); got != 300 {
		t.Errorf("Monthly(ESE.PA) = %v, want 300", got)
	}
	// The environment completes the mail settings, never the file.
	if cfg.Mail.From != "sender@example.com" || cfg.Mail.To != "receiver@example.com" || cfg.Mail.Password != "app-password" {
		t.Errorf("Mail = %+v, want the environment values", cfg.Mail)
	}
	if got := cfg.Pages.URL(); got != "https://jdoe.github.io/pea/" {
		t.Errorf("Pages.URL() = %q, want https://jdoe.github.io/pea/", got)
	}
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peatrack.toml")
	if err := os.WriteFile(path, []byte("currency = ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() accepted an unparseable file")
	}
}

func TestPagesConfig_URLUnset(t *testing.T) {
	if got := (PagesConfig{}).URL(); got != "" {
		t.Errorf("URL() = %q, want empty when unset", got)
	}
}
