package suite

import (
	"net/http"

	"bookqa/internal/bookstore"
	"bookqa/internal/httpclient"
	"bookqa/internal/scenario"
	"bookqa/internal/validation"
)

const missingISBN = "0000000000"

func bookstoreScenario(name, title string, run func(t *scenario.T), tags ...string) scenario.Scenario {
	return scenario.Scenario{
		Name:    name,
		Title:   title,
		Feature: "BookStore",
		Suite:   scenario.SuiteAPI,
		Tags:    append([]string{"bookstore"}, tags...),
		Run:     run,
	}
}

// BookStore returns the /BookStore/v1 scenarios.
func BookStore() []scenario.Scenario {
	return []scenario.Scenario{
		bookstoreScenario("bookstore_list_books", "Catalog lists books with ISBNs", listBooks),
		bookstoreScenario("bookstore_get_book", "Get a book by ISBN", getBook),
		bookstoreScenario("bookstore_get_book_invalid", "Unknown ISBN is rejected", getBookInvalid, "negative"),
		bookstoreScenario("bookstore_add_book", "Add a book to the user's shelf", addBook),
		bookstoreScenario("bookstore_add_duplicate", "Adding a shelved book again is rejected", addDuplicate, "negative"),
		bookstoreScenario("bookstore_replace_book", "Replace a shelved book", replaceBook),
		bookstoreScenario("bookstore_delete_book", "Delete one book from the shelf", deleteBook),
		bookstoreScenario("bookstore_clear_books", "Clear the user's shelf", clearBooks),
		bookstoreScenario("bookstore_clear_books_bad_user", "Clearing another user's shelf is refused", clearBooksBadUser, "negative"),
	}
}

func listBooks(t *scenario.T) {
	t.Step("List catalog")
	books, err := t.Session().Books.Books(t.Context())
	t.NoError(err, "list books")
	t.Require().NotEmpty(books)

	for _, b := range books {
		t.Assert().True(validation.IsISBN(b.ISBN), "isbn %q", b.ISBN)
		t.Assert().NotEmpty(b.Title, "title of %s", b.ISBN)
	}
}

func getBook(t *scenario.T) {
	isbn := firstISBNs(t, 1)[0]

	t.Step("Get book " + isbn)
	b, err := t.Session().Books.Book(t.Context(), isbn)
	t.NoError(err, "get book")
	t.Assert().Equal(isbn, b.ISBN)
	t.Assert().NotEmpty(b.Title)
	t.Assert().NotEmpty(b.Author)
}

func getBookInvalid(t *scenario.T) {
	t.Step("Get book " + missingISBN)
	resp, err := t.Session().Books.Client().GetBook(t.Context(), missingISBN, httpclient.Expect(http.StatusBadRequest))
	t.NoError(err, "get book")
	t.Assert().Equal(http.StatusBadRequest, resp.StatusCode)
	t.Assert().Equal("ISBN supplied is not available in Books Collection!", message(resp))
}

func shelfISBNs(t *scenario.T, userID, token string) []string {
	u, err := t.Session().Accounts.GetUser(t.Context(), userID, token)
	t.NoError(err, "read shelf")
	out := make([]string, 0, len(u.Books))
	for _, b := range u.Books {
		out = append(out, b.ISBN)
	}
	return out
}

func addBook(t *scenario.T) {
	u := tempUser(t)
	isbn := firstISBNs(t, 1)[0]

	t.Step("Add book " + isbn)
	added, err := t.Session().Books.AddToShelf(t.Context(), u.UserID, u.Token, isbn)
	t.NoError(err, "add book")
	t.Assert().Equal([]bookstore.BookRef{{ISBN: isbn}}, added.Books)
	t.Assert().Equal([]string{isbn}, shelfISBNs(t, u.UserID, u.Token))
}

func addDuplicate(t *scenario.T) {
	u := tempUser(t)
	isbn := firstISBNs(t, 1)[0]
	books := t.Session().Books

	_, err := books.AddToShelf(t.Context(), u.UserID, u.Token, isbn)
	t.NoError(err, "add book")

	t.Step("Add the same book again")
	resp, err := books.Client().AddBooks(t.Context(), bookstore.NewUserBooks(u.UserID, isbn), u.Token, httpclient.Expect(http.StatusBadRequest))
	t.NoError(err, "add duplicate")
	t.Assert().Equal(http.StatusBadRequest, resp.StatusCode)
	t.Assert().Equal("ISBN already present in the User's Collection!", message(resp))
}

func replaceBook(t *scenario.T) {
	u := tempUser(t)
	isbns := firstISBNs(t, 2)
	t.Require().Len(isbns, 2, "catalog needs two books")
	books := t.Session().Books

	_, err := books.AddToShelf(t.Context(), u.UserID, u.Token, isbns[0])
	t.NoError(err, "add book")

	t.Step("Replace " + isbns[0] + " with " + isbns[1])
	shelf, err := books.ReplaceOnShelf(t.Context(), u.UserID, isbns[0], isbns[1], u.Token)
	t.NoError(err, "replace book")
	t.Assert().Equal(u.UserID, shelf.UserID)
	t.Assert().Equal([]string{isbns[1]}, shelfISBNs(t, u.UserID, u.Token))
}

func deleteBook(t *scenario.T) {
	u := tempUser(t)
	isbns := firstISBNs(t, 2)
	books := t.Session().Books

	_, err := books.AddToShelf(t.Context(), u.UserID, u.Token, isbns...)
	t.NoError(err, "add books")

	t.Step("Delete " + isbns[0])
	t.NoError(books.RemoveFromShelf(t.Context(), u.UserID, isbns[0], u.Token), "delete book")
	t.Assert().NotContains(shelfISBNs(t, u.UserID, u.Token), isbns[0])
}

func clearBooks(t *scenario.T) {
	u := tempUser(t)
	books := t.Session().Books

	_, err := books.AddToShelf(t.Context(), u.UserID, u.Token, firstISBNs(t, 2)...)
	t.NoError(err, "add books")

	t.Step("Clear shelf")
	resp, err := books.Client().ClearBooks(t.Context(), u.UserID, u.Token, httpclient.Expect(http.StatusNoContent))
	t.NoError(err, "clear books")
	t.Assert().Equal(http.StatusNoContent, resp.StatusCode)
	t.Assert().Empty(shelfISBNs(t, u.UserID, u.Token))
}

func clearBooksBadUser(t *scenario.T) {
	u := tempUser(t)

	t.Step("Clear shelf of user 000")
	resp, err := t.Session().Books.Client().ClearBooks(t.Context(), "000", u.Token, httpclient.Expect(http.StatusUnauthorized))
	t.NoError(err, "clear books")
	t.Assert().Equal(http.StatusUnauthorized, resp.StatusCode)
	t.Assert().Equal("User Id not correct!", message(resp))
}
