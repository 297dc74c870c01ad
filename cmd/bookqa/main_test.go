package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"bookqa/internal/config"
	"bookqa/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	apiUser = "cfg_api_user"
	apiPass = "1Aa@cfgpass01"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// setupEnv starts the fake API and writes a config dir pointing at it.
func setupEnv(t *testing.T) (*testutil.DemoAPI, string) {
	t.Helper()
	t.Setenv(config.EnvUser, "")
	t.Setenv(config.EnvPassword, "")
	t.Setenv(config.EnvResultsDSN, "")

	api := testutil.NewDemoAPI()
	t.Cleanup(api.Close)
	id := api.SeedUser(apiUser, apiPass)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "common.properties"), "test_env=fake\napi_test_user=api\nui_test_user=api\n")
	writeFile(t, filepath.Join(dir, "env", "fake.properties"), "api="+api.URL()+"\nui=https://demoqa.test\n")
	writeFile(t, filepath.Join(dir, "user", "api.properties"),
		"username="+apiUser+"\npassword="+apiPass+"\nuserid="+id+"\n")
	return api, dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRun_APINegativeScenarios(t *testing.T) {
	_, dir := setupEnv(t)
	reports := filepath.Join(t.TempDir(), "target")

	out, err := execute(t, "run", "--config-dir", dir, "--suite", "api", "--tag", "negative", "--report-dir", reports)

	require.NoError(t, err, out)
	assert.Regexp(t, `passed \d+, failed 0, skipped 0`, out)
	assert.FileExists(t, filepath.Join(reports, "report.html"))
	assert.FileExists(t, filepath.Join(reports, "results.json"))
}

func TestRun_BrowserFlagDefaults(t *testing.T) {
	cmd := newRunCmd(&rootFlags{})

	headless := cmd.Flags().Lookup("headless")
	require.NotNil(t, headless)
	assert.Equal(t, "false", headless.DefValue)
	assert.Equal(t, "1920,1080", cmd.Flags().Lookup("window-size").DefValue)
	assert.Equal(t, "en-US", cmd.Flags().Lookup("lang").DefValue)
}

func TestRun_NoMatchingScenarios(t *testing.T) {
	_, dir := setupEnv(t)

	_, err := execute(t, "run", "--config-dir", dir, "--suite", "api", "--tag", "does-not-exist")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no scenarios match")
}

func TestRun_BadWindowSize(t *testing.T) {
	_, dir := setupEnv(t)

	_, err := execute(t, "run", "--config-dir", dir, "--window-size", "big")
	assert.Error(t, err)
}

func TestRun_MissingConfig(t *testing.T) {
	_, err := execute(t, "run", "--config-dir", t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "common.properties")
}

func TestConfig_MasksPasswords(t *testing.T) {
	_, dir := setupEnv(t)

	out, err := execute(t, "config", "--config-dir", dir)

	require.NoError(t, err)
	assert.Contains(t, out, apiUser)
	assert.NotContains(t, out, apiPass)
	assert.Regexp(t, `api_user_password\s+= \S+`, out)
}

func TestList_FiltersBySuite(t *testing.T) {
	out, err := execute(t, "list", "--suite", "ui")

	require.NoError(t, err)
	assert.Contains(t, out, "ui_login_valid")
	assert.NotContains(t, out, "account_create_user")
	assert.NotContains(t, out, "e2e_book_visible_cookie_login")
}

func TestUser_CreateThenDelete(t *testing.T) {
	api, dir := setupEnv(t)

	out, err := execute(t, "user", "create", "--config-dir", dir)
	require.NoError(t, err)

	m := regexp.MustCompile(`DEMOQA_USER=(\S+)\nDEMOQA_PASS=(\S+)\n# user id (\S+)`).FindStringSubmatch(out)
	require.Len(t, m, 4, out)
	require.True(t, api.HasUser(m[3]))

	out, err = execute(t, "user", "delete", "--config-dir", dir, "--username", m[1], "--password", m[2])
	require.NoError(t, err)
	assert.Contains(t, out, "deleted "+m[1])
	assert.False(t, api.HasUser(m[3]))
}

func TestUser_DeleteNeedsCredentials(t *testing.T) {
	_, dir := setupEnv(t)

	_, err := execute(t, "user", "delete", "--config-dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.EnvUser)
}

func TestRuns_NeedsDatabase(t *testing.T) {
	_, dir := setupEnv(t)

	_, err := execute(t, "runs", "list", "--config-dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no results database")
}
