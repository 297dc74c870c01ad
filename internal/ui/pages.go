package ui

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"bookqa/internal/report"
)

// LoginPage is /login.
type LoginPage struct{ Page }

func NewLoginPage(p Page) *LoginPage { return &LoginPage{Page: p} }

// Login submits the form and returns the profile page the app redirects to.
func (l *LoginPage) Login(ctx context.Context, username, password string) (*ProfilePage, error) {
	report.StepCtx(ctx, fmt.Sprintf("UI: log in as %s", username))
	if err := l.typeText(ctx, loginUserName, username); err != nil {
		return nil, err
	}
	if err := l.typeText(ctx, loginPassword, password); err != nil {
		return nil, err
	}
	if err := l.click(ctx, loginButton); err != nil {
		return nil, err
	}
	return &ProfilePage{Page: l.Page}, nil
}

func (l *LoginPage) ErrorText(ctx context.Context) (string, error) {
	return l.text(ctx, loginError)
}

func (l *LoginPage) ErrorVisible(ctx context.Context) bool {
	return l.visible(ctx, loginError, l.wait())
}

func (l *LoginPage) UserNamePlaceholder(ctx context.Context) (string, error) {
	return l.attribute(ctx, loginUserName, "placeholder")
}

func (l *LoginPage) PasswordPlaceholder(ctx context.Context) (string, error) {
	return l.attribute(ctx, loginPassword, "placeholder")
}

// ProfilePage is /profile.
type ProfilePage struct{ Page }

func NewProfilePage(p Page) *ProfilePage { return &ProfilePage{Page: p} }

func (pp *ProfilePage) NotLoggedText(ctx context.Context) (string, error) {
	return pp.text(ctx, notLoggedLabel)
}

// IsISBNVisible looks for the ISBN anywhere in the page text for up to five
// seconds.
func (pp *ProfilePage) IsISBNVisible(ctx context.Context, isbn string) bool {
	report.StepCtx(ctx, fmt.Sprintf("UI: look for ISBN %s", isbn))
	err := pp.eventually(ctx, 5*time.Second, func() (bool, error) {
		n, err := pp.Driver.Count(ctx, ContainsText(isbn))
		return n > 0, err
	})
	return err == nil
}

func (pp *ProfilePage) BookTitles(ctx context.Context) ([]string, error) {
	return pp.Driver.Texts(ctx, bookTitles)
}

// BooksPage is the /books catalog grid.
type BooksPage struct{ Page }

func NewBooksPage(p Page) *BooksPage { return &BooksPage{Page: p} }

func (b *BooksPage) Search(ctx context.Context, text string) error {
	report.StepCtx(ctx, fmt.Sprintf("UI: search %q", text))
	return b.typeText(ctx, bookSearch, text)
}

// SetRowsPerPage picks the page size from the grid's rows selector.
func (b *BooksPage) SetRowsPerPage(ctx context.Context, n int) error {
	report.StepCtx(ctx, fmt.Sprintf("UI: show %d rows", n))
	if err := b.Driver.WaitVisible(ctx, rowsSelect); err != nil {
		return err
	}
	return b.Driver.Select(ctx, rowsSelect, strconv.Itoa(n))
}

func (b *BooksPage) BookTitles(ctx context.Context) ([]string, error) {
	return b.Driver.Texts(ctx, bookTitles)
}

func (b *BooksPage) NextPage(ctx context.Context) error {
	report.StepCtx(ctx, "UI: next page")
	return b.click(ctx, nextPageButton)
}

func (b *BooksPage) PreviousPage(ctx context.Context) error {
	report.StepCtx(ctx, "UI: previous page")
	return b.click(ctx, prevPageButton)
}

func (b *BooksPage) CurrentPage(ctx context.Context) (string, error) {
	if err := b.Driver.WaitVisible(ctx, pageJumpInput); err != nil {
		return "", err
	}
	return b.Driver.Value(ctx, pageJumpInput)
}

func (b *BooksPage) TotalPages(ctx context.Context) (string, error) {
	return b.text(ctx, totalPages)
}

// PageLabel renders the pager state as "Page N of M".
func (b *BooksPage) PageLabel(ctx context.Context) (string, error) {
	cur, err := b.CurrentPage(ctx)
	if err != nil {
		return "", err
	}
	total, err := b.TotalPages(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Page %s of %s", cur, total), nil
}

// RowCount counts grid rows, padding rows included.
func (b *BooksPage) RowCount(ctx context.Context) (int, error) {
	return b.Driver.Count(ctx, gridRows)
}

// OpenBook clicks the title link of a book in the grid.
func (b *BooksPage) OpenBook(ctx context.Context, title string) error {
	report.StepCtx(ctx, fmt.Sprintf("UI: open book %q", title))
	return b.click(ctx, bookLink(title))
}

// Sidebar is the left menu of inner pages.
type Sidebar struct{ Page }

func NewSidebar(p Page) *Sidebar { return &Sidebar{Page: p} }

// OpenBookStoreApplication expands the "Book Store Application" group.
// Expanding an open group is a no-op.
func (s *Sidebar) OpenBookStoreApplication(ctx context.Context) error {
	if s.visible(ctx, sidebarItem("Login"), probeWait) {
		return nil
	}
	return s.click(ctx, sidebarHeader(bookStoreApplication))
}

// Click opens a Book Store Application menu entry such as "Profile".
func (s *Sidebar) Click(ctx context.Context, item string) error {
	report.StepCtx(ctx, fmt.Sprintf("UI: sidebar %s", item))
	if err := s.OpenBookStoreApplication(ctx); err != nil {
		return err
	}
	return s.click(ctx, sidebarItem(item))
}
