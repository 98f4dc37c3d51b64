package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "geospace.ini")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	for _, k := range []string{"GEOSPACE_ADDR", "DATABASE_URL", "TOKEN_KEY", "LOG_LEVEL", "TLS_CERT", "TLS_KEY"} {
		t.Setenv(k, "")
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.RateBurst != 3 || cfg.ShutdownTimeout != 5*time.Second || cfg.LogLevel != "info" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.TLS() {
		t.Errorf("TLS should be off without cert and key")
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	path := writeConfig(t, `
[server]
addr = :9000
shutdown_timeout = 10s

[database]
url = postgres://lab@localhost/geo
max_open_conns = 5

[auth]
token_key = from-file
rate_limit = 2.5
rate_burst = 10

[log]
level = debug
`)
	t.Setenv("TOKEN_KEY", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("server section not applied: %+v", cfg)
	}
	if cfg.MaxOpenConns != 5 || cfg.RateLimit != 2.5 || cfg.RateBurst != 10 || cfg.LogLevel != "debug" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.TokenKey != "from-env" {
		t.Errorf("environment should override file, got %q", cfg.TokenKey)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	good := Config{TokenKey: "k", DatabaseURL: "postgres://x", RateLimit: 1, RateBurst: 1, MaxOpenConns: 1}
	cases := []struct {
		name   string
		modify func(c *Config)
	}{
		{"no token", func(c *Config) { c.TokenKey = "" }},
		{"no database", func(c *Config) { c.DatabaseURL = "" }},
		{"zero rate", func(c *Config) { c.RateLimit = 0 }},
		{"zero burst", func(c *Config) { c.RateBurst = 0 }},
		{"zero conns", func(c *Config) { c.MaxOpenConns = 0 }},
		{"cert without key", func(c *Config) { c.TLSCert = "server.crt" }},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := good
			tc.modify(&c)
			if c.Validate() == nil {
				t.Errorf("expected an error")
			}
		})
	}
}
