package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	appDir := filepath.Join(dir, appName)
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(appDir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error for missing file: %v", err)
	}
	if cfg.Cache.Backend != cacheBackendFile {
		t.Errorf("default cache backend = %q, want %q", cfg.Cache.Backend, cacheBackendFile)
	}
	if cfg.Store.Backend != storeBackendMemory {
		t.Errorf("default store backend = %q, want %q", cfg.Store.Backend, storeBackendMemory)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("default server addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
}

func TestLoadConfigFull(t *testing.T) {
	writeConfigFile(t, `
[cache]
backend = "redis"

[cache.redis]
addr = "redis.internal:6379"
db = 2

[store]
backend = "mongo"

[store.mongo]
uri = "mongodb://db.internal:27017"
database = "clouds"

[server]
addr = ":9090"

[layout]
min_font_size = 10
max_font_size = 48
jitter = 4
seed = 7
`)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Cache.Backend != cacheBackendRedis {
		t.Errorf("cache backend = %q, want redis", cfg.Cache.Backend)
	}
	if cfg.Cache.Redis.Addr != "redis.internal:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("redis config = %+v", cfg.Cache.Redis)
	}
	if cfg.Store.Backend != storeBackendMongo {
		t.Errorf("store backend = %q, want mongo", cfg.Store.Backend)
	}
	if cfg.Store.Mongo.Database != "clouds" {
		t.Errorf("mongo database = %q, want clouds", cfg.Store.Mongo.Database)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("server addr = %q, want :9090", cfg.Server.Addr)
	}

	lc := cfg.Layout.ToCloud()
	if lc.MinFontSize != 10 || lc.MaxFontSize != 48 {
		t.Errorf("layout font range = [%g, %g], want [10, 48]", lc.MinFontSize, lc.MaxFontSize)
	}
	if lc.Jitter != 4 || lc.Seed != 7 {
		t.Errorf("layout jitter/seed = %g/%d, want 4/7", lc.Jitter, lc.Seed)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	// Unlisted sections keep their defaults.
	writeConfigFile(t, `
[layout]
padding = 40
`)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Layout.Padding != 40 {
		t.Errorf("padding = %g, want 40", cfg.Layout.Padding)
	}
	if cfg.Cache.Backend != cacheBackendFile {
		t.Errorf("cache backend = %q, want default file", cfg.Cache.Backend)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed toml", "[cache\nbackend ="},
		{"unknown cache backend", "[cache]\nbackend = \"memcached\""},
		{"unknown store backend", "[store]\nbackend = \"postgres\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeConfigFile(t, tt.content)

			cfg, err := LoadConfig()
			if err == nil {
				t.Fatal("LoadConfig() should report the config error")
			}
			// Falls back to usable defaults
			if cfg.Cache.Backend != cacheBackendFile {
				t.Errorf("fallback cache backend = %q, want %q", cfg.Cache.Backend, cacheBackendFile)
			}
		})
	}
}
