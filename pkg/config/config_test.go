package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordtrie", "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig error: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("InitConfig = %+v, want defaults", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config file not written: %v", err)
	}

	again, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if *again != *cfg {
		t.Errorf("round trip = %+v, want %+v", again, cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
max_limit = 10
workers = 2

[dict]
path = "/srv/words.txt"
encoding = "latin1"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Server.MaxLimit != 10 || cfg.Server.Workers != 2 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.MaxPrefix != DefaultConfig().Server.MaxPrefix {
		t.Errorf("unset max_prefix = %d, want default", cfg.Server.MaxPrefix)
	}
	if cfg.Dict.Path != "/srv/words.txt" || cfg.Dict.Encoding != "latin1" {
		t.Errorf("dict = %+v", cfg.Dict)
	}
	if !cfg.Dict.SkipInvalid {
		t.Errorf("unset skip_invalid lost its default")
	}
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	// max_prefix has the wrong type, which fails strict decoding
	content := `
[server]
max_limit = 12
max_prefix = "long"

[cli]
default_limit = 5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Server.MaxLimit != 12 {
		t.Errorf("max_limit = %d, want 12", cfg.Server.MaxLimit)
	}
	if cfg.Server.MaxPrefix != DefaultConfig().Server.MaxPrefix {
		t.Errorf("max_prefix = %d, want default", cfg.Server.MaxPrefix)
	}
	if cfg.CLI.DefaultLimit != 5 {
		t.Errorf("default_limit = %d, want 5", cfg.CLI.DefaultLimit)
	}
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	limit, workers := 32, 3
	if err := cfg.Update(path, &limit, nil, nil, &workers); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if loaded.Server.MaxLimit != 32 || loaded.Server.Workers != 3 {
		t.Errorf("server = %+v", loaded.Server)
	}
	if loaded.Server.MinPrefix != DefaultConfig().Server.MinPrefix {
		t.Errorf("min_prefix changed to %d", loaded.Server.MinPrefix)
	}
}

func TestLoadConfigSanitizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
max_limit = 0
min_prefix = 4
max_prefix = 2

[dict]
encoding = ""
max_words = -5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	defaults := DefaultConfig()
	tests := []struct {
		name string
		got  any
		want any
	}{
		{"max_limit", cfg.Server.MaxLimit, defaults.Server.MaxLimit},
		{"max_prefix", cfg.Server.MaxPrefix, 4},
		{"encoding", cfg.Dict.Encoding, defaults.Dict.Encoding},
		{"max_words", cfg.Dict.MaxWords, 0},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}
