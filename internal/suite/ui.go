package suite

import (
	"fmt"
	"regexp"
	"strconv"

	"bookqa/internal/scenario"
	"bookqa/internal/ui"
)

const invalidLoginMessage = "Invalid username or password!"

func uiScenario(name, title, feature string, run func(t *scenario.T), tags ...string) scenario.Scenario {
	return scenario.Scenario{
		Name:    name,
		Title:   title,
		Feature: feature,
		Suite:   scenario.SuiteUI,
		Tags:    append([]string{"ui"}, tags...),
		UI:      true,
		Run:     run,
	}
}

// UI returns the browser scenarios.
func UI() []scenario.Scenario {
	return []scenario.Scenario{
		uiScenario("ui_login_valid", "Login with valid credentials", "Login", loginValid, "login", "smoke"),
		uiScenario("ui_login_invalid", "Login with a wrong password shows an error", "Login", loginInvalid, "login", "negative"),
		uiScenario("ui_logout", "Logout returns to an empty login form", "Login", logout, "login"),
		uiScenario("ui_cookie_login", "Cookie session login and logout", "Login", cookieLogin, "login", "cookies"),
		uiScenario("ui_profile_not_logged", "Profile asks anonymous visitors to log in", "Profile", profileNotLogged, "profile"),
		uiScenario("ui_profile_logged", "Profile shows the logged in user", "Profile", profileLogged, "profile"),
		uiScenario("ui_search_javascript", "Search the catalog for JavaScript", "Books", searchJavaScript, "books", "search"),
		uiScenario("ui_search_titles", "Search the catalog by title keywords", "Books", searchTitles, "books", "search"),
		uiScenario("ui_pagination", "Paginate the catalog five rows at a time", "Books", pagination, "books"),
		uiScenario("ui_sidebar_profile", "Sidebar navigates to Profile", "Navigation", sidebarProfile, "navigation"),
		uiScenario("ui_open_book", "Open a book from the catalog grid", "Books", openBook, "books"),
	}
}

// formLogin logs the configured UI account in through /login.
func formLogin(t *scenario.T) *ui.ProfilePage {
	cfg := t.Config().UIUser
	page := t.Page()
	t.NoError(page.Open(t.Context(), "/login"), "open login")
	profile, err := ui.NewLoginPage(page).Login(t.Context(), cfg.Username, cfg.Password)
	t.NoError(err, "submit login form")
	t.Require().True(profile.IsAt(t.Context(), "/profile"), "redirected to /profile")
	return profile
}

// cookieSession plants auth cookies for the configured UI account and opens
// path.
func cookieSession(t *scenario.T, path string) ui.Page {
	t.Step("Login with session cookies")
	t.NoError(ui.LoginWithCookies(t.Context(), t.Browser(), t.Config().UIBaseURL, uiAuth(t)), "set auth cookies")
	page := t.Page()
	t.NoError(page.Open(t.Context(), path), "open "+path)
	return page
}

func assertLoggedIn(t *scenario.T, p ui.Page) {
	name, err := p.LoggedUserName(t.Context())
	t.NoError(err, "read user name")
	t.Assert().Equal(t.Config().UIUser.Username, name)

	label, err := p.LogOutButtonText(t.Context())
	t.NoError(err, "read logout button")
	t.Assert().Equal("Log out", label)
}

func assertLoginPlaceholders(t *scenario.T, l *ui.LoginPage) {
	user, err := l.UserNamePlaceholder(t.Context())
	t.NoError(err, "read username placeholder")
	t.Assert().Contains(user, "UserName")

	pass, err := l.PasswordPlaceholder(t.Context())
	t.NoError(err, "read password placeholder")
	t.Assert().Contains(pass, "Password")
}

func loginValid(t *scenario.T) {
	profile := formLogin(t)
	assertLoggedIn(t, profile.Page)
}

func loginInvalid(t *scenario.T) {
	page := t.Page()
	t.NoError(page.Open(t.Context(), "/login"), "open login")

	login := ui.NewLoginPage(page)
	_, err := login.Login(t.Context(), t.Config().UIUser.Username, "wrong-Password1!")
	t.NoError(err, "submit login form")

	t.Require().True(login.ErrorVisible(t.Context()), "error message shown")
	msg, err := login.ErrorText(t.Context())
	t.NoError(err, "read error")
	t.Assert().Equal(invalidLoginMessage, msg)
}

func logout(t *scenario.T) {
	profile := formLogin(t)

	login, err := profile.Logout(t.Context())
	t.NoError(err, "log out")
	t.Assert().True(login.IsAt(t.Context(), "/login"))
	assertLoginPlaceholders(t, login)
}

func cookieLogin(t *scenario.T) {
	page := cookieSession(t, "/profile")
	assertLoggedIn(t, page)

	login, err := page.Logout(t.Context())
	t.NoError(err, "log out")
	assertLoginPlaceholders(t, login)
}

func profileNotLogged(t *scenario.T) {
	page := t.Page()
	t.NoError(page.Open(t.Context(), "/profile"), "open profile")

	text, err := ui.NewProfilePage(page).NotLoggedText(t.Context())
	t.NoError(err, "read not-logged label")
	t.Assert().Contains(text, "you are not logged into the Book Store application")
	t.Assert().Contains(text, "page to register yourself.")
	t.Assert().Contains(text, "login")
}

func profileLogged(t *scenario.T) {
	page := cookieSession(t, "/profile")
	assertLoggedIn(t, page)

	titles, err := ui.NewProfilePage(page).BookTitles(t.Context())
	t.NoError(err, "read shelf titles")
	t.Logf("shelf has %d books", len(titles))
}

// searchFor searches the grid and checks every title matches term.
func searchFor(t *scenario.T, books *ui.BooksPage, term string) {
	t.NoError(books.Search(t.Context(), term), "search "+term)
	titles, err := books.BookTitles(t.Context())
	t.NoError(err, "read titles")
	t.Require().NotEmpty(titles, "results for %q", term)

	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))
	for _, title := range titles {
		t.Assert().Regexp(re, title, "search %q", term)
	}
}

func searchJavaScript(t *scenario.T) {
	page := t.Page()
	t.NoError(page.Open(t.Context(), "/books"), "open books")
	searchFor(t, ui.NewBooksPage(page), "JavaScript")
}

func searchTitles(t *scenario.T) {
	page := t.Page()
	t.NoError(page.Open(t.Context(), "/books"), "open books")
	books := ui.NewBooksPage(page)
	for _, term := range []string{"Git", "Java", "Design"} {
		t.Step("Search " + term)
		searchFor(t, books, term)
	}
}

func pageLabel(t *scenario.T, books *ui.BooksPage) string {
	label, err := books.PageLabel(t.Context())
	t.NoError(err, "read pager")
	return label
}

func pagination(t *scenario.T) {
	page := t.Page()
	t.NoError(page.Open(t.Context(), "/books"), "open books")
	books := ui.NewBooksPage(page)

	t.Assert().Equal("Page 1 of 1", pageLabel(t, books), "default page size fits the catalog")

	t.NoError(books.SetRowsPerPage(t.Context(), 5), "set rows per page")
	total, err := books.TotalPages(t.Context())
	t.NoError(err, "read total pages")
	if n, _ := strconv.Atoi(total); n < 2 {
		t.Skipf("only %s page(s) with 5 rows", total)
	}

	t.Assert().Equal(fmt.Sprintf("Page 1 of %s", total), pageLabel(t, books))
	t.NoError(books.NextPage(t.Context()), "next page")
	t.Assert().Equal(fmt.Sprintf("Page 2 of %s", total), pageLabel(t, books))
	t.NoError(books.PreviousPage(t.Context()), "previous page")
	t.Assert().Equal(fmt.Sprintf("Page 1 of %s", total), pageLabel(t, books))
}

func sidebarProfile(t *scenario.T) {
	page := t.Page()
	t.NoError(page.Open(t.Context(), "/books"), "open books")
	t.NoError(ui.NewSidebar(page).Click(t.Context(), "Profile"), "click Profile")
	t.Assert().True(page.IsAt(t.Context(), "/profile"))
}

func openBook(t *scenario.T) {
	isbn := firstISBNs(t, 1)[0]
	book, err := t.Session().Books.Book(t.Context(), isbn)
	t.NoError(err, "get book")

	page := t.Page()
	t.NoError(page.Open(t.Context(), "/books"), "open books")
	t.NoError(ui.NewBooksPage(page).OpenBook(t.Context(), book.Title), "open "+book.Title)
	t.Assert().True(page.IsAt(t.Context(), "book="+isbn), "book detail for %s", isbn)
}
