package ui

// Shared header of every inner page.
var (
	loggedUserName = ByID("userName-value")
	logOutButton   = ByID("submit")
)

// Login form.
var (
	loginUserName = ByID("userName")
	loginPassword = ByID("password")
	loginButton   = ByID("login")
	loginError    = ByID("name")
)

// Book grid, shared by the catalog and the profile shelf.
var (
	bookTitles     = ByCSS("#app .rt-tbody .action-buttons a")
	bookSearch     = ByID("searchBox")
	rowsSelect     = ByCSS("#app select")
	nextPageButton = ByCSS("div.-next button")
	prevPageButton = ByCSS("div.-previous button")
	pageJumpInput  = ByCSS("div.-pageJump input")
	totalPages     = ByCSS(".-totalPages")
	gridRows       = ByCSS("div.rt-tr-group")
)

var notLoggedLabel = ByID("notLoggin-label")

const bookStoreApplication = "Book Store Application"

func sidebarHeader(name string) Selector {
	return ByXPath("//div[@class='left-pannel']//div[contains(@class,'header-text') and normalize-space()=" +
		xpathLiteral(name) + "]")
}

func sidebarItem(name string) Selector {
	return ByXPath("//div[@class='left-pannel']//span[text()=" + xpathLiteral(name) + "]")
}

func bookLink(title string) Selector {
	return ByXPath("//div[contains(@class,'action-buttons')]//a[normalize-space()=" + xpathLiteral(title) + "]")
}
