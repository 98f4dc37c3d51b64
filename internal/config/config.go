// Package config loads server settings from an INI file, a .env file and
// the environment, in increasing order of precedence.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

type Config struct {
	Addr            string
	TLSCert         string
	TLSKey          string
	StaticDir       string
	ShutdownTimeout time.Duration

	DatabaseURL  string
	MaxOpenConns int

	TokenKey  string
	RateLimit float64
	RateBurst int

	LogLevel string
}

// Load reads path when it exists, then .env, then the environment. An empty
// path skips the file.
func Load(path string) (*Config, error) {
	file := ini.Empty()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			file, err = ini.Load(path)
			if err != nil {
				return nil, pkgerrors.Wrapf(err, "failed to read config %s", path)
			}
		} else {
			logrus.WithField("path", path).Debug("config file not found, using defaults")
		}
	}
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, pkgerrors.Wrap(err, "failed to load .env")
	}

	cfg := fromFile(file)
	cfg.applyEnv()
	return cfg, nil
}

func fromFile(file *ini.File) *Config {
	server := file.Section("server")
	db := file.Section("database")
	auth := file.Section("auth")
	return &Config{
		Addr:            server.Key("addr").MustString(":8080"),
		TLSCert:         server.Key("tls_cert").String(),
		TLSKey:          server.Key("tls_key").String(),
		StaticDir:       server.Key("static_dir").MustString("./static"),
		ShutdownTimeout: server.Key("shutdown_timeout").MustDuration(5 * time.Second),

		DatabaseURL:  db.Key("url").String(),
		MaxOpenConns: db.Key("max_open_conns").MustInt(25),

		TokenKey:  auth.Key("token_key").String(),
		RateLimit: auth.Key("rate_limit").MustFloat64(1),
		RateBurst: auth.Key("rate_burst").MustInt(3),

		LogLevel: file.Section("log").Key("level").MustString("info"),
	}
}

func (c *Config) applyEnv() {
	for env, dst := range map[string]*string{
		"GEOSPACE_ADDR": &c.Addr,
		"DATABASE_URL":  &c.DatabaseURL,
		"TOKEN_KEY":     &c.TokenKey,
		"LOG_LEVEL":     &c.LogLevel,
		"TLS_CERT":      &c.TLSCert,
		"TLS_KEY":       &c.TLSKey,
	} {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
}

// TLS reports whether both a certificate and a key are configured.
func (c *Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

func (c *Config) Validate() error {
	if c.TokenKey == "" {
		return pkgerrors.New("TOKEN_KEY is not set")
	}
	if c.DatabaseURL == "" {
		return pkgerrors.New("DATABASE_URL is not set")
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return pkgerrors.Errorf("rate limit must be positive, got %v/%d", c.RateLimit, c.RateBurst)
	}
	if c.MaxOpenConns <= 0 {
		return pkgerrors.Errorf("max_open_conns must be positive, got %d", c.MaxOpenConns)
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return pkgerrors.New("tls_cert and tls_key must be set together")
	}
	return nil
}
