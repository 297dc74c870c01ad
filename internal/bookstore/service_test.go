package bookstore_test

import (
	"context"
	"net/http"
	"testing"

	"bookqa/internal/bookstore"
	"bookqa/internal/httpclient"
	"bookqa/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*testutil.DemoAPI, *bookstore.Service, string, string) {
	t.Helper()
	api := testutil.NewDemoAPI()
	t.Cleanup(api.Close)

	id := api.SeedUser("shelf_owner", "1Aa@secret99")
	token, err := api.BearerFor(id)
	require.NoError(t, err)

	hc := httpclient.New(api.URL(), httpclient.WithLogger(zerolog.Nop()))
	svc := bookstore.NewService(bookstore.NewClient(hc), zerolog.Nop())
	return api, svc, id, token
}

func TestService_Books(t *testing.T) {
	_, svc, _, _ := setup(t)

	books, err := svc.Books(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, books)
	for _, b := range books {
		assert.NotEmpty(t, b.ISBN)
	}

	isbns, err := svc.FirstISBNs(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{books[0].ISBN, books[1].ISBN}, isbns)

	all, err := svc.FirstISBNs(context.Background(), 100)
	require.NoError(t, err)
	assert.Len(t, all, len(books))
}

func TestService_Book(t *testing.T) {
	_, svc, _, _ := setup(t)

	b, err := svc.Book(context.Background(), "9781449325862")
	require.NoError(t, err)
	assert.Equal(t, "Git Pocket Guide", b.Title)

	_, err = svc.Book(context.Background(), "0000000000")
	apiErr, ok := bookstore.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "ISBN supplied is not available in Books Collection!", apiErr.Message)
}

func TestService_ShelfLifecycle(t *testing.T) {
	api, svc, id, token := setup(t)
	ctx := context.Background()

	added, err := svc.AddToShelf(ctx, id, token, "9781449325862")
	require.NoError(t, err)
	require.Len(t, added.Books, 1)
	assert.Equal(t, "9781449325862", added.Books[0].ISBN)

	_, err = svc.AddToShelf(ctx, id, token, "9781449325862")
	apiErr, ok := bookstore.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Contains(t, apiErr.Message, "already present")
	assert.NotEmpty(t, apiErr.Code)

	shelf, err := svc.ReplaceOnShelf(ctx, id, "9781449325862", "9781449331818", token)
	require.NoError(t, err)
	require.Len(t, shelf.Books, 1)
	assert.Equal(t, "9781449331818", shelf.Books[0].ISBN)

	require.NoError(t, svc.RemoveFromShelf(ctx, id, "9781449331818", token))
	assert.Empty(t, api.Shelf(id))

	_, err = svc.AddToShelf(ctx, id, token, "9781449325862", "9781449365035")
	require.NoError(t, err)
	require.NoError(t, svc.ClearShelf(ctx, id, token))
	assert.Empty(t, api.Shelf(id))
}

func TestService_ClearShelfWrongUser(t *testing.T) {
	_, svc, _, token := setup(t)

	err := svc.ClearShelf(context.Background(), "000", token)
	apiErr, ok := bookstore.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "User Id not correct!", apiErr.Message)
}

func TestClient_UsesSessionBearerWhenNoToken(t *testing.T) {
	api, _, id, token := setup(t)

	hc := httpclient.New(api.URL(), httpclient.WithLogger(zerolog.Nop()))
	hc.SetBearer(token)
	client := bookstore.NewClient(hc)

	resp, err := client.AddBooks(context.Background(), bookstore.NewUserBooks(id, "9781449325862"), "", httpclient.Expect(201))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestNewUserBooks(t *testing.T) {
	body := bookstore.NewUserBooks("u-1", "a", "b")
	assert.Equal(t, "u-1", body.UserID)
	assert.Equal(t, []bookstore.BookRef{{ISBN: "a"}, {ISBN: "b"}}, body.CollectionOfISBNs)
}
