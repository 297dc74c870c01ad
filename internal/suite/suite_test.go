package suite

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookqa/internal/config"
	"bookqa/internal/fixture"
	"bookqa/internal/report"
	"bookqa/internal/scenario"
	"bookqa/internal/testutil"
	"bookqa/internal/ui"
	"bookqa/internal/ui/mocks"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	uiUser = "cfg_ui_user"
	uiPass = "1Aa@cfgpass02"
)

func newRunner(t *testing.T) (*testutil.DemoAPI, *scenario.Runner) {
	t.Helper()
	t.Setenv(config.EnvUser, "")
	t.Setenv(config.EnvPassword, "")

	api := testutil.NewDemoAPI()
	t.Cleanup(api.Close)
	uiID := api.SeedUser(uiUser, uiPass)

	cfg := config.Run{
		Env:        "test",
		APIBaseURL: api.URL(),
		UIBaseURL:  "https://demoqa.test",
		UIUser:     config.Credentials{Key: "ui", Username: uiUser, Password: uiPass, UserID: uiID},
	}
	s := fixture.NewSession(cfg, fixture.Options{Logger: zerolog.Nop()})
	t.Cleanup(s.Close)

	r := scenario.NewRunner(s, scenario.Options{ReportDir: t.TempDir(), Timeout: 30 * time.Second}, zerolog.Nop())
	r.NewBrowser = func(ui.Options, zerolog.Logger) (ui.Driver, error) {
		return nil, errors.New("no browser in unit tests")
	}
	return api, r
}

func failures(cases []*report.Case) map[string]string {
	out := map[string]string{}
	for _, c := range cases {
		if c.Status != report.StatusPassed {
			out[c.Name] = c.Error
		}
	}
	return out
}

func TestAccountScenariosPassAgainstFakeAPI(t *testing.T) {
	_, r := newRunner(t)

	res := r.Run(context.Background(), Account())

	assert.Empty(t, failures(res.Cases))
	assert.Equal(t, len(Account()), res.Passed)
}

func TestBookStoreScenariosPassAgainstFakeAPI(t *testing.T) {
	_, r := newRunner(t)

	res := r.Run(context.Background(), BookStore())

	assert.Empty(t, failures(res.Cases))
	assert.Equal(t, len(BookStore()), res.Passed)
}

func TestE2ECookieLoginWithMockBrowser(t *testing.T) {
	api, r := newRunner(t)
	t.Setenv(config.EnvUser, "env_user")
	t.Setenv(config.EnvPassword, "1Aa@envpass01")
	envID := api.SeedUser("env_user", "1Aa@envpass01")

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	d := mocks.NewMockDriver(ctrl)
	r.NewBrowser = func(ui.Options, zerolog.Logger) (ui.Driver, error) { return d, nil }

	name := ui.ByID("userName-value")
	gomock.InOrder(
		d.EXPECT().Navigate(gomock.Any(), "https://demoqa.test/images/Toolsqa.jpg").Return(nil),
		d.EXPECT().ClearStorage(gomock.Any()).Return(nil),
		d.EXPECT().SetCookies(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		d.EXPECT().Navigate(gomock.Any(), "https://demoqa.test/profile").Return(nil),
		d.EXPECT().WaitVisible(gomock.Any(), name).Return(nil),
		d.EXPECT().Text(gomock.Any(), name).Return("env_user", nil),
		d.EXPECT().Count(gomock.Any(), ui.ContainsText("9781449325862")).Return(1, nil),
		d.EXPECT().Close().Return(nil),
	)

	res := r.Run(context.Background(), []scenario.Scenario{E2E()[0]})

	require.Len(t, res.Cases, 1)
	assert.Equal(t, report.StatusPassed, res.Cases[0].Status, res.Cases[0].Error)
	assert.True(t, api.HasUser(envID), "environment user is never deleted")
	assert.Empty(t, api.Shelf(envID), "book removed after the scenario")
}

func TestProfileNotLoggedWithMockBrowser(t *testing.T) {
	_, r := newRunner(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	d := mocks.NewMockDriver(ctrl)
	r.NewBrowser = func(ui.Options, zerolog.Logger) (ui.Driver, error) { return d, nil }

	label := ui.ByID("notLoggin-label")
	gomock.InOrder(
		d.EXPECT().Navigate(gomock.Any(), "https://demoqa.test/profile").Return(nil),
		d.EXPECT().WaitVisible(gomock.Any(), label).Return(nil),
		d.EXPECT().Text(gomock.Any(), label).Return("Currently you are not logged into the Book Store application, "+
			"please visit the login page to enter or register page to register yourself.", nil),
		d.EXPECT().Close().Return(nil),
	)

	res := r.Run(context.Background(), scenario.Filter(UI(), nil, []string{"profile"})[:1])

	require.Len(t, res.Cases, 1)
	assert.Equal(t, "ui_profile_not_logged", res.Cases[0].Name)
	assert.Equal(t, report.StatusPassed, res.Cases[0].Status, res.Cases[0].Error)
}

func TestCatalogIsWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, sc := range All() {
		assert.False(t, seen[sc.Name], "duplicate scenario %s", sc.Name)
		seen[sc.Name] = true

		assert.NotEmpty(t, sc.Title, sc.Name)
		assert.NotEmpty(t, sc.Feature, sc.Name)
		assert.NotNil(t, sc.Run, sc.Name)
		assert.Contains(t, []string{scenario.SuiteAPI, scenario.SuiteUI, scenario.SuiteE2E}, sc.Suite, sc.Name)
		assert.Equal(t, sc.Suite != scenario.SuiteAPI, sc.UI, "%s browser flag matches its suite", sc.Name)
	}
	assert.Len(t, Account(), 14)
	assert.Len(t, BookStore(), 9)
	assert.Len(t, UI(), 11)
	assert.Len(t, E2E(), 2)
}
