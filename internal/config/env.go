package config

import (
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

const (
	EnvUser       = "DEMOQA_USER"
	EnvPassword   = "DEMOQA_PASS"
	EnvResultsDSN = "RESULTS_DB_DSN"
)

// LoadEnv loads dotenv files into the process environment. Files that do not
// exist are skipped and variables already set win.
func LoadEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env.local", ".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		_ = godotenv.Load(f)
	}
}

// OverrideCredentials returns the fixed account supplied through the
// environment, if both variables are set.
func OverrideCredentials() (username, password string, ok bool) {
	username = strings.TrimSpace(os.Getenv(EnvUser))
	password = os.Getenv(EnvPassword)
	if username == "" || password == "" {
		return "", "", false
	}
	return username, password, true
}

// GetEnv returns the environment value for key or def when unset.
func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Cache loads the configuration at most once per process.
type Cache struct {
	mu  sync.Mutex
	run *Run
	err error
}

// Get returns the cached configuration, loading it from dir on first use.
// A failed load is cached too, so every caller sees the same error.
func (c *Cache) Get(dir string) (Run, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.run == nil && c.err == nil {
		run, err := Load(dir)
		if err != nil {
			c.err = err
		} else {
			c.run = &run
		}
	}
	if c.err != nil {
		return Run{}, c.err
	}
	return *c.run, nil
}
