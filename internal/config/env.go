package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Env holds settings read from the environment. Flags override them.
type Env struct {
	OutDir    string
	UserAgent string
	TimeoutMs int
	LogLevel  string
	LogFormat string
	Storage   StorageConfig
}

// StorageConfig describes the optional S3-compatible bucket outputs are
// published to. Publishing is off when Endpoint is empty.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Prefix    string
}

// Enabled reports whether an endpoint is configured.
func (s StorageConfig) Enabled() bool { return s.Endpoint != "" }

// LoadDotEnv loads path (".env" when empty) into the process environment.
// A missing file is not an error; variables already set win.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// LoadEnv reads PAPYRUS_* variables.
func LoadEnv() Env {
	return Env{
		OutDir:    getEnv("PAPYRUS_OUT_DIR", ""),
		UserAgent: getEnv("PAPYRUS_USER_AGENT", ""),
		TimeoutMs: getEnvInt("PAPYRUS_TIMEOUT_MS", -1),
		LogLevel:  getEnv("PAPYRUS_LOG_LEVEL", "warn"),
		LogFormat: getEnv("PAPYRUS_LOG_FORMAT", "text"),
		Storage: StorageConfig{
			Endpoint:  getEnv("PAPYRUS_S3_ENDPOINT", ""),
			AccessKey: getEnv("PAPYRUS_S3_ACCESS_KEY", ""),
			SecretKey: getEnv("PAPYRUS_S3_SECRET_KEY", ""),
			Bucket:    getEnv("PAPYRUS_S3_BUCKET", ""),
			UseSSL:    getEnvBool("PAPYRUS_S3_USE_SSL", true),
			Prefix:    getEnv("PAPYRUS_S3_PREFIX", ""),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
