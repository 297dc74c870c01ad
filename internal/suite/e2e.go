package suite

import (
	"context"
	"slices"

	"bookqa/internal/bookstore"
	"bookqa/internal/fixture"
	"bookqa/internal/scenario"
	"bookqa/internal/ui"
)

func e2eScenario(name, title string, run func(t *scenario.T), tags ...string) scenario.Scenario {
	return scenario.Scenario{
		Name:    name,
		Title:   title,
		Feature: "API to UI",
		Suite:   scenario.SuiteE2E,
		Tags:    append([]string{"e2e"}, tags...),
		UI:      true,
		Run:     run,
	}
}

// E2E returns the flows that set state through the API and check it in the
// browser.
func E2E() []scenario.Scenario {
	return []scenario.Scenario{
		e2eScenario("e2e_book_visible_cookie_login", "Book added via API shows on the profile after cookie login", bookVisibleCookieLogin, "cookies", "smoke"),
		e2eScenario("e2e_book_visible_form_login", "Book added via API shows on the profile after form login", bookVisibleFormLogin, "login"),
	}
}

// shelveBook puts the first catalog book on u's shelf and removes it again
// after the scenario.
func shelveBook(t *scenario.T, u fixture.TestUser) bookstore.Book {
	isbn := firstISBNs(t, 1)[0]
	books := t.Session().Books
	book, err := books.Book(t.Context(), isbn)
	t.NoError(err, "get book")

	t.Step("API: add " + isbn + " to the shelf")
	if slices.Contains(shelfISBNs(t, u.UserID, u.Token), isbn) {
		t.Logf("%s already on the shelf", isbn)
	} else {
		_, err = books.AddToShelf(t.Context(), u.UserID, u.Token, isbn)
		t.NoError(err, "add book")
		t.Cleanup("unshelve "+isbn, func(ctx context.Context) error {
			return books.RemoveFromShelf(ctx, u.UserID, isbn, u.Token)
		})
	}
	return book
}

// assertOnProfile accepts either the ISBN or the title in the profile grid;
// the grid renders titles and the ISBN only appears in link targets.
func assertOnProfile(t *scenario.T, profile *ui.ProfilePage, book bookstore.Book) {
	t.Step("UI: book is on the profile")
	if profile.IsISBNVisible(t.Context(), book.ISBN) {
		return
	}
	titles, err := profile.BookTitles(t.Context())
	t.NoError(err, "read shelf titles")
	t.Assert().Contains(titles, book.Title, "profile shows %s", book.ISBN)
}

func bookVisibleCookieLogin(t *scenario.T) {
	u := runUser(t)
	book := shelveBook(t, u)

	t.Step("UI: login with session cookies")
	auth := ui.Auth{UserID: u.UserID, Username: u.Username, Token: u.Token}
	t.NoError(ui.LoginWithCookies(t.Context(), t.Browser(), t.Config().UIBaseURL, auth), "set auth cookies")

	page := t.Page()
	t.NoError(page.Open(t.Context(), "/profile"), "open profile")
	name, err := page.LoggedUserName(t.Context())
	t.NoError(err, "read user name")
	t.Assert().Equal(u.Username, name)

	assertOnProfile(t, ui.NewProfilePage(page), book)
}

func bookVisibleFormLogin(t *scenario.T) {
	u := runUser(t)
	book := shelveBook(t, u)

	page := t.Page()
	t.NoError(page.Open(t.Context(), "/login"), "open login")
	profile, err := ui.NewLoginPage(page).Login(t.Context(), u.Username, u.Password)
	t.NoError(err, "submit login form")
	t.Require().True(profile.IsAt(t.Context(), "/profile"), "redirected to /profile")

	assertOnProfile(t, profile, book)
}
