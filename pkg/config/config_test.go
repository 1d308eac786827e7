package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	kerrors "github.com/matzehuels/kintree/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())
	for _, e := range env {
		t.Setenv(e.name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Layout.NodeSep != def.Layout.NodeSep || cfg.Server.Addr != def.Server.Addr {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Schema.Inactive != "is_inactive" {
		t.Errorf("schema = %+v", cfg.Schema)
	}
}

func TestLoadFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
[source]
location = "sheets:1AbC"

[schema]
active = "is_active"

[layout]
node_sep = 120

[cache]
ttl = "45m"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source.Location != "sheets:1AbC" {
		t.Errorf("location = %q", cfg.Source.Location)
	}
	if cfg.Schema.Active != "is_active" || cfg.Schema.ID != "id" {
		t.Errorf("schema = %+v", cfg.Schema)
	}
	if cfg.Layout.NodeSep != 120 || cfg.Layout.RankSep != 100 {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	if cfg.Cache.TTL != 45*time.Minute {
		t.Errorf("ttl = %v", cfg.Cache.TTL)
	}
}

func TestLoadErrors(t *testing.T) {
	isolate(t)
	tests := []struct {
		name string
		body string
		code kerrors.Code
	}{
		{"syntax", "[source\n", kerrors.ErrCodeInvalidConfig},
		{"unknown key", "[source]\nurl = \"x\"\n", kerrors.ErrCodeInvalidConfig},
		{"negative sep", "[layout]\nnode_sep = -5\n", kerrors.ErrCodeInvalidConfig},
		{"bad redis url", "[cache]\nredis_url = \"not a url\"\n", kerrors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !kerrors.Is(err, tt.code) {
				t.Errorf("Load() = %v, want %s", err, tt.code)
			}
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !kerrors.Is(err, kerrors.ErrCodeFileNotFound) {
		t.Errorf("missing explicit file = %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("KINTREE_SOURCE", "family.csv")
	t.Setenv("KINTREE_CACHE_TTL", "5m")
	t.Setenv("KINTREE_NO_CACHE", "yes")
	t.Setenv("KINTREE_ADDR", ":9000")

	cfg, err := Load(writeConfig(t, "[source]\nlocation = \"sheets:x\"\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source.Location != "family.csv" {
		t.Errorf("location = %q, env should win", cfg.Source.Location)
	}
	if cfg.Cache.TTL != 5*time.Minute || !cfg.Cache.Disabled || cfg.Server.Addr != ":9000" {
		t.Errorf("cfg = %+v %+v", cfg.Cache, cfg.Server)
	}

	t.Setenv("KINTREE_CACHE_TTL", "soon")
	if _, err := Load(""); !kerrors.Is(err, kerrors.ErrCodeInvalidConfig) {
		t.Errorf("bad duration = %v", err)
	}
}

func TestDotEnv(t *testing.T) {
	isolate(t)
	if err := os.WriteFile(".env", []byte("KINTREE_SOURCE=from-dotenv.csv\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	os.Unsetenv("KINTREE_SOURCE")
	t.Cleanup(func() { os.Unsetenv("KINTREE_SOURCE") })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source.Location != "from-dotenv.csv" {
		t.Errorf("location = %q", cfg.Source.Location)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	isolate(t)
	cfg := Default()
	cfg.Source.Location = "sheets:abc"
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Source.Location != "sheets:abc" || back.Server.SessionTTL != cfg.Server.SessionTTL {
		t.Errorf("round trip = %+v", back)
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")
	if got := Path(); got != "/xdg/config/kintree/config.toml" {
		t.Errorf("Path() = %s", got)
	}
	if got, _ := CacheDir(); got != "/xdg/cache/kintree" {
		t.Errorf("CacheDir() = %s", got)
	}
}
