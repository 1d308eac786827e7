package cli

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/config"
)

func TestCacheDir(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", tmp)

	tests := []struct {
		name string
		cc   config.CacheConfig
		want string
	}{
		{"xdg default", config.CacheConfig{}, filepath.Join(tmp, "kintree")},
		{"configured", config.CacheConfig{Dir: "/var/cache/tree"}, "/var/cache/tree"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cacheDir(tt.cc)
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("cacheDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewCache(t *testing.T) {
	dir := t.TempDir()

	c, err := newCache(t.Context(), config.CacheConfig{Disabled: true, Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("disabled cache = %T, want *cache.NullCache", c)
	}

	c, err = newCache(t.Context(), config.CacheConfig{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	fc, ok := c.(*cache.FileCache)
	if !ok {
		t.Fatalf("default cache = %T, want *cache.FileCache", c)
	}
	if fc.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", fc.Dir(), dir)
	}
}

func TestCacheKeyer(t *testing.T) {
	plain := cache.NewDefaultKeyer().RowsKey("sheets", "abc#Nodes")
	tests := []struct {
		name string
		cc   config.CacheConfig
		want string
	}{
		{"file cache", config.CacheConfig{}, plain},
		{"redis default prefix", config.CacheConfig{RedisURL: "redis://localhost:6379/0"}, "kintree:" + plain},
		{"redis custom prefix", config.CacheConfig{RedisURL: "redis://localhost:6379/0", KeyPrefix: "tenant-a:"}, "tenant-a:" + plain},
		{"redis disabled", config.CacheConfig{RedisURL: "redis://localhost:6379/0", Disabled: true}, plain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cacheKeyer(tt.cc).RowsKey("sheets", "abc#Nodes"); got != tt.want {
				t.Errorf("RowsKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCountEntries(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := fc.Set(t.Context(), k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	if n := countEntries(dir); n != 3 {
		t.Errorf("countEntries() = %d, want 3", n)
	}
	if n := countEntries(filepath.Join(dir, "missing")); n != 0 {
		t.Errorf("countEntries(missing) = %d, want 0", n)
	}
}
