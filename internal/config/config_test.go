package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func setupConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "common.properties"),
		"test_env=stage\napi_test_user=api\nui_test_user=ui.properties\n")
	writeFile(t, filepath.Join(dir, "env", "stage.properties"),
		"api = https://api.example.com\nui=https://ui.example.com\ndb=postgres://qa:secret@db:5432/results\n")
	writeFile(t, filepath.Join(dir, "user", "api.properties"),
		"username=api_user\npassword=Secret@123\nuserid=id-1\n")
	writeFile(t, filepath.Join(dir, "user", "ui.properties"),
		"UserName=ui_user\npassword=Secret@456\nUserId=id-2\n")
	return dir
}

func TestLoad(t *testing.T) {
	dir := setupConfigDir(t)

	run, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "stage", run.Env)
	assert.Equal(t, "https://api.example.com", run.APIBaseURL)
	assert.Equal(t, "https://ui.example.com", run.UIBaseURL)
	assert.Equal(t, "postgres://qa:secret@db:5432/results", run.DBURL)
	assert.Equal(t, Credentials{Key: "api", Username: "api_user", Password: "Secret@123", UserID: "id-1"}, run.APIUser)
	assert.Equal(t, "ui_user", run.UIUser.Username)
	assert.Equal(t, "id-2", run.UIUser.UserID)
	assert.NoError(t, run.Validate())
}

func TestLoad_MissingRequiredKey(t *testing.T) {
	dir := setupConfigDir(t)
	writeFile(t, filepath.Join(dir, "common.properties"), "test_env=stage\napi_test_user=   \nui_test_user=ui\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.Equal(t, "Missing required key: api_test_user", err.Error())
}

func TestLoad_MissingUserKey(t *testing.T) {
	dir := setupConfigDir(t)
	writeFile(t, filepath.Join(dir, "user", "api.properties"), "username=api_user\npassword=Secret@123\n")

	_, err := Load(dir)
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.Contains(t, err.Error(), "userid")
}

func TestLoad_MissingFiles(t *testing.T) {
	t.Run("common", func(t *testing.T) {
		_, err := Load(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "common.properties")
	})

	t.Run("env", func(t *testing.T) {
		dir := setupConfigDir(t)
		require.NoError(t, os.Remove(filepath.Join(dir, "env", "stage.properties")))

		_, err := Load(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "env properties not found")
	})
}

func TestRun_ValidateRejectsBadURL(t *testing.T) {
	run := Run{
		Env:        "x",
		APIBaseURL: "not-a-url",
		UIBaseURL:  "https://ui.example.com",
		APIUser:    Credentials{Username: "a", Password: "b"},
		UIUser:     Credentials{Username: "a", Password: "b"},
	}
	err := run.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APIBaseURL must be a valid URL")
}

func TestRun_Masked(t *testing.T) {
	run, err := Load(setupConfigDir(t))
	require.NoError(t, err)

	m := run.Masked()
	assert.Equal(t, "***", m["api_user_password"])
	assert.Equal(t, "postgres://***@db:5432/results", m["db"])
	assert.Equal(t, "api_user", m["api_user"])
}

func TestCache_LoadsOnce(t *testing.T) {
	dir := setupConfigDir(t)
	var c Cache

	first, err := c.Get(dir)
	require.NoError(t, err)

	// later changes on disk are not picked up
	writeFile(t, filepath.Join(dir, "env", "stage.properties"), "api=https://changed.example.com\nui=https://ui.example.com\n")
	second, err := c.Get(dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestOverrideCredentials(t *testing.T) {
	t.Setenv(EnvUser, "")
	t.Setenv(EnvPassword, "")
	_, _, ok := OverrideCredentials()
	assert.False(t, ok)

	t.Setenv(EnvUser, " fixed ")
	t.Setenv(EnvPassword, "P@ss1234")
	u, p, ok := OverrideCredentials()
	assert.True(t, ok)
	assert.Equal(t, "fixed", u)
	assert.Equal(t, "P@ss1234", p)
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env.test")
	writeFile(t, path, "BOOKQA_TEST_ONLY=from-file\n")
	t.Setenv("BOOKQA_TEST_ONLY", "")
	require.NoError(t, os.Unsetenv("BOOKQA_TEST_ONLY"))

	LoadEnv(path, filepath.Join(t.TempDir(), "absent"))
	assert.Equal(t, "from-file", GetEnv("BOOKQA_TEST_ONLY", "default"))
	assert.Equal(t, "default", GetEnv("BOOKQA_TEST_UNSET", "default"))
}
