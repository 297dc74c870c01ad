package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bookqa/internal/validation"

	"github.com/magiconair/properties"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrMissingKey is returned when a required property is absent or blank.
var ErrMissingKey = errors.New("missing required key")

// MissingKeyError names the absent key. It matches ErrMissingKey.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return "Missing required key: " + e.Key
}

func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingKey
}

// Credentials is one account entry from config/user/<key>.properties.
type Credentials struct {
	Key      string
	Username string `validate:"required"`
	Password string `validate:"required"`
	UserID   string
}

// Run is the resolved configuration of one test run. It is built once by
// Load and passed by value to everything that needs it.
type Run struct {
	Env        string      `validate:"required"`
	APIBaseURL string      `validate:"required,url"`
	UIBaseURL  string      `validate:"required,url"`
	DBURL      string
	APIUser    Credentials
	UIUser     Credentials
}

// Load reads common.properties from dir, then the selected environment file
// and the API and UI user files.
func Load(dir string) (Run, error) {
	return loadWith(dir, log.With().Str("component", "config").Logger())
}

func loadWith(dir string, logger zerolog.Logger) (Run, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	logger.Info().Str("dir", abs).Msg("Loading config")

	common, err := readFlat(filepath.Join(dir, "common.properties"))
	if err != nil {
		return Run{}, err
	}
	envKey, err := required(common, "test_env")
	if err != nil {
		return Run{}, err
	}
	apiUserKey, err := required(common, "api_test_user")
	if err != nil {
		return Run{}, err
	}
	uiUserKey, err := required(common, "ui_test_user")
	if err != nil {
		return Run{}, err
	}
	logger.Info().
		Str("env", envKey).
		Str("api_user", apiUserKey).
		Str("ui_user", uiUserKey).
		Msg("Selected configuration")

	envProps, err := readNamed(dir, "env", envKey, logger)
	if err != nil {
		return Run{}, err
	}

	run := Run{Env: envKey, DBURL: envProps["db"]}
	if run.APIBaseURL, err = required(envProps, "api"); err != nil {
		return Run{}, err
	}
	if run.UIBaseURL, err = required(envProps, "ui"); err != nil {
		return Run{}, err
	}
	if run.APIUser, err = readUser(dir, apiUserKey, logger); err != nil {
		return Run{}, err
	}
	if run.UIUser, err = readUser(dir, uiUserKey, logger); err != nil {
		return Run{}, err
	}

	logger.Info().
		Str("env", run.Env).
		Str("api", run.APIBaseURL).
		Str("ui", run.UIBaseURL).
		Str("api_user", run.APIUser.Username).
		Str("ui_user", run.UIUser.Username).
		Msg("Configuration loaded")
	return run, nil
}

// Validate checks URLs and credentials of a loaded configuration.
func (r Run) Validate() error {
	return validation.Struct(r)
}

// Masked renders the configuration for display with passwords hidden.
func (r Run) Masked() map[string]string {
	return map[string]string{
		"test_env":          r.Env,
		"api":               r.APIBaseURL,
		"ui":                r.UIBaseURL,
		"db":                maskDSN(r.DBURL),
		"api_user":          r.APIUser.Username,
		"api_user_id":       r.APIUser.UserID,
		"api_user_password": mask(r.APIUser.Password),
		"ui_user":           r.UIUser.Username,
		"ui_user_id":        r.UIUser.UserID,
		"ui_user_password":  mask(r.UIUser.Password),
	}
}

func readUser(dir, key string, logger zerolog.Logger) (Credentials, error) {
	props, err := readNamed(dir, "user", key, logger)
	if err != nil {
		return Credentials{}, err
	}
	c := Credentials{Key: key}
	if c.Username, err = required(props, "username"); err != nil {
		return Credentials{}, err
	}
	if c.Password, err = required(props, "password"); err != nil {
		return Credentials{}, err
	}
	if c.UserID, err = required(props, "userid"); err != nil {
		return Credentials{}, err
	}
	return c, nil
}

// readNamed reads <dir>/<folder>/<key>.properties.
func readNamed(dir, folder, key string, logger zerolog.Logger) (map[string]string, error) {
	name := key
	if !strings.HasSuffix(name, ".properties") {
		name += ".properties"
	}
	path := filepath.Join(dir, folder, name)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s properties not found: %s", folder, path)
	}
	logger.Info().Str("path", path).Msgf("Reading %s file", folder)
	return readFlat(path)
}

// readFlat loads a key=value file into a map with lower-cased keys.
func readFlat(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("properties file not found: %s", path)
	}
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	out := make(map[string]string, p.Len())
	for _, k := range p.Keys() {
		v, _ := p.Get(k)
		out[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return out, nil
}

func required(m map[string]string, key string) (string, error) {
	v := strings.TrimSpace(m[key])
	if v == "" {
		return "", &MissingKeyError{Key: key}
	}
	return v, nil
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}

func maskDSN(dsn string) string {
	if dsn == "" {
		return "-"
	}
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return dsn
	}
	return dsn[:scheme+3] + "***" + dsn[at:]
}
