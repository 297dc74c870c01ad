package suite

import (
	"net/http"

	"bookqa/internal/account"
	"bookqa/internal/datagen"
	"bookqa/internal/httpclient"
	"bookqa/internal/scenario"
)

func accountScenario(name, title string, run func(t *scenario.T), tags ...string) scenario.Scenario {
	return scenario.Scenario{
		Name:    name,
		Title:   title,
		Feature: "Account",
		Suite:   scenario.SuiteAPI,
		Tags:    append([]string{"account"}, tags...),
		Run:     run,
	}
}

// Account returns the /Account/v1 scenarios.
func Account() []scenario.Scenario {
	return []scenario.Scenario{
		accountScenario("account_create_user", "Create user returns 201 with an id", createUser),
		accountScenario("account_create_duplicate", "Creating an existing user is rejected", createDuplicate, "negative"),
		accountScenario("account_create_weak_password", "Weak password is rejected", createWeakPassword, "negative"),
		accountScenario("account_generate_token", "Generate token for a registered user", generateToken),
		accountScenario("account_token_bad_password", "Token with a wrong password fails", tokenBadPassword, "negative"),
		accountScenario("account_token_bad_username", "Token with an unknown username fails", tokenBadUsername, "negative"),
		accountScenario("account_authorized", "Authorized flips to true after a token is issued", authorizedFlow),
		accountScenario("account_authorized_bad_username", "Authorized with an unknown username is 404", authorizedBadUsername, "negative"),
		accountScenario("account_authorized_bad_password", "Authorized with a wrong password is 404", authorizedBadPassword, "negative"),
		accountScenario("account_login", "Login returns a token for the account", loginUser),
		accountScenario("account_get_user", "Get user with a bearer token", getUser),
		accountScenario("account_get_user_bad_id", "Get user with an unknown id is 401", getUserBadID, "negative"),
		accountScenario("account_delete_user", "Deleted user can no longer be read", deleteUser),
		accountScenario("account_delete_user_bad_id", "Delete user with a wrong id is refused", deleteUserBadID, "negative"),
	}
}

func createUser(t *scenario.T) {
	t.Step("Create a random user")
	body, created := registeredUser(t)

	t.Assert().NotEmpty(created.UserID)
	t.Assert().Equal(body.UserName, created.Username)
	t.Assert().Empty(created.Books)
}

func createDuplicate(t *scenario.T) {
	body, _ := registeredUser(t)

	t.Step("Create the same user again")
	resp, err := t.Session().Accounts.Client().CreateUser(t.Context(), body, httpclient.Expect(http.StatusNotAcceptable))
	t.NoError(err, "create duplicate user")
	t.Assert().Equal(http.StatusNotAcceptable, resp.StatusCode)
	t.Assert().Equal("User exists!", message(resp))
}

func createWeakPassword(t *scenario.T) {
	body := account.UserRequest{UserName: datagen.NewCredentials().UserName, Password: "12345678"}
	t.Assert().Error(account.ValidateUser(body), "local rules reject the password")

	t.Step("Create user with a weak password")
	resp, err := t.Session().Accounts.Client().CreateUser(t.Context(), body, httpclient.Expect(http.StatusBadRequest))
	t.NoError(err, "create weak user")
	t.Assert().Equal(http.StatusBadRequest, resp.StatusCode)
	t.Assert().Equal("1300", resp.JSONMap()["code"])
	t.Assert().Contains(message(resp), "Passwords must have")
}

func generateToken(t *scenario.T) {
	body, _ := registeredUser(t)

	t.Step("Generate token")
	res, err := t.Session().Accounts.GenerateToken(t.Context(), body)
	t.NoError(err, "generate token")
	t.Assert().Equal(account.TokenSuccess, res.Status)
	t.Assert().Equal("User authorized successfully.", res.Result)
	t.Assert().NotEmpty(res.Token)
	t.Assert().NotEmpty(res.Expires)

	claims, err := account.InspectToken(res.Token)
	if t.Assert().NoError(err, "token is a JWT") {
		t.Assert().Equal(body.UserName, claims.UserName)
	}
}

func tokenBadPassword(t *scenario.T) {
	body, _ := registeredUser(t)
	body.Password = "123"

	t.Step("Generate token with a wrong password")
	res, err := t.Session().Accounts.GenerateToken(t.Context(), body)
	t.NoError(err, "generate token")
	t.Assert().Equal(account.TokenFailed, res.Status)
	t.Assert().Equal("User authorization failed.", res.Result)
	t.Assert().Empty(res.Token)
}

func tokenBadUsername(t *scenario.T) {
	body, _ := registeredUser(t)
	body.UserName = "abcd_12345@@"

	t.Step("Generate token with an unknown username")
	res, err := t.Session().Accounts.GenerateToken(t.Context(), body)
	t.NoError(err, "generate token")
	t.Assert().Equal(account.TokenFailed, res.Status)
	t.Assert().Equal("User authorization failed.", res.Result)
}

func authorizedFlow(t *scenario.T) {
	body, _ := registeredUser(t)
	accounts := t.Session().Accounts

	t.Step("Check authorization before any token")
	ok, err := accounts.IsAuthorized(t.Context(), body)
	t.NoError(err, "authorized before token")
	t.Assert().False(ok)

	t.Step("Generate token and check again")
	_, err = accounts.IssueToken(t.Context(), body)
	t.NoError(err, "issue token")
	ok, err = accounts.IsAuthorized(t.Context(), body)
	t.NoError(err, "authorized after token")
	t.Assert().True(ok)
}

func authorizedNotFound(t *scenario.T, body account.UserRequest) {
	resp, err := t.Session().Accounts.Client().Authorized(t.Context(), body, httpclient.Expect(http.StatusNotFound))
	t.NoError(err, "authorized")
	t.Assert().Equal(http.StatusNotFound, resp.StatusCode)
	t.Assert().Equal("User not found!", message(resp))
}

func authorizedBadUsername(t *scenario.T) {
	body, _ := registeredUser(t)
	body.UserName = "abcd_12345@@"
	t.Step("Check authorization for an unknown username")
	authorizedNotFound(t, body)
}

func authorizedBadPassword(t *scenario.T) {
	body, _ := registeredUser(t)
	body.Password = "123"
	t.Step("Check authorization with a wrong password")
	authorizedNotFound(t, body)
}

func loginUser(t *scenario.T) {
	body, created := registeredUser(t)

	t.Step("Login")
	s, err := t.Session().Accounts.Login(t.Context(), body)
	t.NoError(err, "login")
	t.Assert().Equal(created.UserID, s.UserID)
	t.Assert().Equal(body.UserName, s.Username)
	t.Assert().NotEmpty(s.Token)
	t.Assert().NotEmpty(s.Expires)
}

func getUser(t *scenario.T) {
	u := tempUser(t)

	t.Step("Get user by id")
	got, err := t.Session().Accounts.GetUser(t.Context(), u.UserID, u.Token)
	t.NoError(err, "get user")
	t.Assert().Equal(u.UserID, got.UserID)
	t.Assert().Equal(u.Username, got.Username)
}

func getUserBadID(t *scenario.T) {
	u := tempUser(t)

	t.Step("Get user with a mangled id")
	resp, err := t.Session().Accounts.Client().GetUser(t.Context(), u.UserID+"1a", u.Token, httpclient.Expect(http.StatusUnauthorized))
	t.NoError(err, "get user")
	t.Assert().Equal(http.StatusUnauthorized, resp.StatusCode)
	t.Assert().Equal("User not found!", message(resp))
}

func deleteUser(t *scenario.T) {
	u := tempUser(t)
	accounts := t.Session().Accounts

	t.Step("Delete user")
	resp, err := accounts.DeleteUser(t.Context(), u.UserID, u.Token)
	t.NoError(err, "delete user")
	t.Require().Equal(http.StatusNoContent, resp.StatusCode)

	t.Step("Get the deleted user")
	resp, err = accounts.Client().GetUser(t.Context(), u.UserID, u.Token, httpclient.Expect(http.StatusUnauthorized))
	t.NoError(err, "get deleted user")
	t.Assert().Equal(http.StatusUnauthorized, resp.StatusCode)
	t.Assert().Equal("User not found!", message(resp))
}

func deleteUserBadID(t *scenario.T) {
	u := tempUser(t)

	t.Step("Delete user with a mangled id")
	resp, err := t.Session().Accounts.DeleteUser(t.Context(), u.UserID+"1q", u.Token)
	t.NoError(err, "delete user")
	t.Assert().Equal(http.StatusOK, resp.StatusCode)
	t.Assert().Equal("User Id not correct!", message(resp))
}
