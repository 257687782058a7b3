package config

import (
	"os"
	"testing"
	"time"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	dir := t.TempDir()
	if err := os.Mkdir(dir+"/run", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.Chdir(dir + "/run"); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != "0.0.0.0:8080" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Catalog.BaseURL != "https://api.kexp.org/v2" || cfg.Catalog.PageSize != 250 {
		t.Errorf("catalog = %+v", cfg.Catalog)
	}
	if cfg.Timeout() != 15*time.Second {
		t.Errorf("timeout = %v", cfg.Timeout())
	}
	if cfg.Location() != time.Local {
		t.Errorf("location = %v, want Local", cfg.Location())
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	chdirTemp(t)
	yaml := "server:\n  addr: \":9000\"\ncatalog:\n  page_size: 100\ndisplay:\n  timezone: America/Los_Angeles\n"
	if err := os.WriteFile("config.yaml", []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ONAIR_CATALOG_BASE_URL", "http://catalog.test/v2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":9000" || cfg.Catalog.PageSize != 100 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Catalog.BaseURL != "http://catalog.test/v2" {
		t.Errorf("base_url = %q, want env override", cfg.Catalog.BaseURL)
	}
	if loc := cfg.Location(); loc.String() != "America/Los_Angeles" {
		t.Errorf("location = %v", loc)
	}
}

func TestLocationFallback(t *testing.T) {
	var cfg Config
	cfg.Display.Timezone = "Mars/Olympus_Mons"
	if cfg.Location() != time.Local {
		t.Errorf("Location() should fall back to Local")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	chdirTemp(t)
	if err := os.WriteFile("config.yaml", []byte("this: is: invalid: yaml: ["), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(); err == nil {
		t.Error("Load() error = nil, want parse error")
	}
}
