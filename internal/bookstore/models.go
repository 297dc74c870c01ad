package bookstore

// Book is a catalog entry.
type Book struct {
	ISBN        string `json:"isbn"`
	Title       string `json:"title"`
	SubTitle    string `json:"subTitle"`
	Author      string `json:"author"`
	PublishDate string `json:"publish_date"`
	Publisher   string `json:"publisher"`
	Pages       int    `json:"pages"`
	Description string `json:"description"`
	Website     string `json:"website"`
}

type BookRef struct {
	ISBN string `json:"isbn"`
}

// UserBooks is the add-to-shelf body.
type UserBooks struct {
	UserID            string    `json:"userId"`
	CollectionOfISBNs []BookRef `json:"collectionOfIsbns"`
}

// NewUserBooks builds a shelf payload for one or more ISBNs.
func NewUserBooks(userID string, isbns ...string) UserBooks {
	refs := make([]BookRef, len(isbns))
	for i, isbn := range isbns {
		refs[i] = BookRef{ISBN: isbn}
	}
	return UserBooks{UserID: userID, CollectionOfISBNs: refs}
}

type replaceBody struct {
	UserID string `json:"userId"`
	ISBN   string `json:"isbn"`
}

type deleteBody struct {
	ISBN   string `json:"isbn"`
	UserID string `json:"userId"`
}

type booksEnvelope struct {
	Books []Book `json:"books"`
}

// AddedBooks is the add-to-shelf response.
type AddedBooks struct {
	Books []BookRef `json:"books"`
}

// Shelf is a user with the books on their shelf.
type Shelf struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Books    []Book `json:"books"`
}
