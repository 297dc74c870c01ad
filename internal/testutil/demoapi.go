package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"bookqa/internal/httpx"
	"bookqa/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Secret signs the fake API's tokens.
const Secret = "test-secret"

type fakeUser struct {
	ID         string
	Username   string
	Password   string
	Authorized bool
	Shelf      []string
	Created    time.Time
}

// DemoAPI is an in-memory stand-in for the demo application's REST API,
// answering with the same status codes and messages.
type DemoAPI struct {
	Server *httptest.Server

	mu     sync.Mutex
	users  map[string]*fakeUser
	byName map[string]string
	tokens map[string]string
	calls  []string
	faults map[string][]int
	logger zerolog.Logger
}

func NewDemoAPI() *DemoAPI {
	d := &DemoAPI{
		users:  map[string]*fakeUser{},
		byName: map[string]string{},
		tokens: map[string]string{},
		faults: map[string][]int{},
		logger: zerolog.Nop(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /Account/v1/User", d.createUser)
	mux.HandleFunc("POST /Account/v1/GenerateToken", d.generateToken)
	mux.HandleFunc("POST /Account/v1/Authorized", d.authorized)
	mux.HandleFunc("POST /Account/v1/Login", d.login)
	mux.HandleFunc("GET /Account/v1/User/{id}", d.getUser)
	mux.HandleFunc("DELETE /Account/v1/User/{id}", d.deleteUser)
	mux.HandleFunc("GET /BookStore/v1/Books", d.listBooks)
	mux.HandleFunc("GET /BookStore/v1/Book", d.getBook)
	mux.HandleFunc("POST /BookStore/v1/Books", d.addBooks)
	mux.HandleFunc("PUT /BookStore/v1/Books/{isbn}", d.replaceBook)
	mux.HandleFunc("DELETE /BookStore/v1/Book", d.deleteBook)
	mux.HandleFunc("DELETE /BookStore/v1/Books", d.clearBooks)

	d.Server = httptest.NewServer(httpx.Chain(d.record(mux),
		httpx.RequestID,
		httpx.AccessLog(d.logger),
		httpx.Recovery(d.logger),
	))
	return d
}

func (d *DemoAPI) URL() string {
	return d.Server.URL
}

func (d *DemoAPI) Close() {
	d.Server.Close()
}

// Calls lists "METHOD /path" for every request received.
func (d *DemoAPI) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.calls))
	copy(out, d.calls)
	return out
}

// FailNext makes the next len(statuses) requests to "METHOD /path" answer
// with the given statuses before normal handling resumes.
func (d *DemoAPI) FailNext(route string, statuses ...int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.faults[route] = append(d.faults[route], statuses...)
}

// SeedUser registers an account directly and returns its id.
func (d *DemoAPI) SeedUser(username, password string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.addUser(username, password)
}

// HasUser reports whether an account id exists.
func (d *DemoAPI) HasUser(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.users[id]
	return ok
}

// Shelf returns the ISBNs on a user's shelf.
func (d *DemoAPI) Shelf(id string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[id]
	if !ok {
		return nil
	}
	return append([]string(nil), u.Shelf...)
}

func (d *DemoAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + r.URL.Path
		d.mu.Lock()
		d.calls = append(d.calls, route)
		var fault int
		if q := d.faults[route]; len(q) > 0 {
			fault, d.faults[route] = q[0], q[1:]
		}
		d.mu.Unlock()

		if fault != 0 {
			writeJSON(w, fault, apiError("0", http.StatusText(fault)))
			return
		}
		next.ServeHTTP(w, r)
	})
}

type credentials struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

func apiError(code, message string) map[string]string {
	return map[string]string{"code": code, "message": message}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func readCredentials(r *http.Request) (credentials, bool) {
	var c credentials
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		return c, false
	}
	return c, c.UserName != "" && c.Password != ""
}

const passwordRuleMessage = "Passwords must have at least one non alphanumeric character, one digit ('0'-'9'), one uppercase ('A'-'Z'), one lowercase ('a'-'z'), one special character and Password must be eight characters or longer."

func (d *DemoAPI) createUser(w http.ResponseWriter, r *http.Request) {
	c, ok := readCredentials(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, apiError("1200", "UserName and Password required."))
		return
	}
	if !validation.IsStrongPassword(c.Password) {
		writeJSON(w, http.StatusBadRequest, apiError("1300", passwordRuleMessage))
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.byName[c.UserName]; exists {
		writeJSON(w, http.StatusNotAcceptable, apiError("1204", "User exists!"))
		return
	}
	id := d.addUser(c.UserName, c.Password)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"userID":   id,
		"username": c.UserName,
		"books":    []interface{}{},
	})
}

func (d *DemoAPI) addUser(username, password string) string {
	id := uuid.NewString()
	d.users[id] = &fakeUser{ID: id, Username: username, Password: password, Created: time.Now().UTC()}
	d.byName[username] = id
	return id
}

// lookup must be called with d.mu held.
func (d *DemoAPI) lookup(c credentials) (*fakeUser, bool) {
	id, ok := d.byName[c.UserName]
	if !ok {
		return nil, false
	}
	u := d.users[id]
	return u, u.Password == c.Password
}

// issue must be called with d.mu held.
func (d *DemoAPI) issue(u *fakeUser) (string, time.Time) {
	expires := time.Now().UTC().Add(7 * 24 * time.Hour)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userName": u.Username,
		"password": u.Password,
		"iat":      time.Now().Unix(),
		"jti":      uuid.NewString(),
	})
	signed, _ := tok.SignedString([]byte(Secret))
	d.tokens[signed] = u.ID
	u.Authorized = true
	return signed, expires
}

func (d *DemoAPI) generateToken(w http.ResponseWriter, r *http.Request) {
	c, ok := readCredentials(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, apiError("1200", "UserName and Password required."))
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.lookup(c)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"token":   nil,
			"expires": nil,
			"status":  "Failed",
			"result":  "User authorization failed.",
		})
		return
	}
	token, expires := d.issue(u)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":   token,
		"expires": expires.Format(time.RFC3339Nano),
		"status":  "Success",
		"result":  "User authorized successfully.",
	})
}

func (d *DemoAPI) authorized(w http.ResponseWriter, r *http.Request) {
	c, ok := readCredentials(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, apiError("1200", "UserName and Password required."))
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.lookup(c)
	if !ok {
		writeJSON(w, http.StatusNotFound, apiError("1207", "User not found!"))
		return
	}
	writeJSON(w, http.StatusOK, u.Authorized)
}

func (d *DemoAPI) login(w http.ResponseWriter, r *http.Request) {
	c, ok := readCredentials(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, apiError("1200", "UserName and Password required."))
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.lookup(c)
	if !ok {
		writeJSON(w, http.StatusNotFound, apiError("1207", "User not found!"))
		return
	}
	token, expires := d.issue(u)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"userId":       u.ID,
		"username":     u.Username,
		"password":     u.Password,
		"token":        token,
		"expires":      expires.Format(time.RFC3339Nano),
		"created_date": u.Created.Format(time.RFC3339Nano),
		"isActive":     false,
	})
}

// caller must be called with d.mu held. It resolves the bearer token.
func (d *DemoAPI) caller(r *http.Request) (*fakeUser, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return nil, false
	}
	id, ok := d.tokens[strings.TrimPrefix(h, "Bearer ")]
	if !ok {
		return nil, false
	}
	u, ok := d.users[id]
	return u, ok
}

// knownToken reports whether the bearer was ever issued, even to a user
// deleted since. Must be called with d.mu held.
func (d *DemoAPI) knownToken(r *http.Request) bool {
	_, ok := d.tokens[strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")]
	return ok
}

func (d *DemoAPI) shelfBooks(u *fakeUser) []CatalogBook {
	out := []CatalogBook{}
	for _, isbn := range u.Shelf {
		if b, ok := findBook(isbn); ok {
			out = append(out, b)
		}
	}
	return out
}

func (d *DemoAPI) getUser(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.knownToken(r) {
		writeJSON(w, http.StatusUnauthorized, apiError("1200", "User not authorized!"))
		return
	}
	u, ok := d.users[r.PathValue("id")]
	if !ok {
		writeJSON(w, http.StatusUnauthorized, apiError("1207", "User not found!"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"userId":   u.ID,
		"username": u.Username,
		"books":    d.shelfBooks(u),
	})
}

func (d *DemoAPI) deleteUser(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()

	caller, ok := d.caller(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, apiError("1200", "User not authorized!"))
		return
	}
	id := r.PathValue("id")
	if id != caller.ID {
		writeJSON(w, http.StatusOK, apiError("1207", "User Id not correct!"))
		return
	}
	delete(d.users, id)
	delete(d.byName, caller.Username)
	w.WriteHeader(http.StatusNoContent)
}

func findBook(isbn string) (CatalogBook, bool) {
	for _, b := range Catalog {
		if b.ISBN == isbn {
			return b, true
		}
	}
	return CatalogBook{}, false
}

func (d *DemoAPI) listBooks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"books": Catalog})
}

func (d *DemoAPI) getBook(w http.ResponseWriter, r *http.Request) {
	b, ok := findBook(r.URL.Query().Get("ISBN"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, apiError("1205", "ISBN supplied is not available in Books Collection!"))
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// owner resolves the bearer and checks it owns userID. It writes the error
// response itself. Must be called with d.mu held.
func (d *DemoAPI) owner(w http.ResponseWriter, r *http.Request, userID string) (*fakeUser, bool) {
	caller, ok := d.caller(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, apiError("1200", "User not authorized!"))
		return nil, false
	}
	if userID != caller.ID {
		writeJSON(w, http.StatusUnauthorized, apiError("1207", "User Id not correct!"))
		return nil, false
	}
	return caller, true
}

func (d *DemoAPI) addBooks(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID      string `json:"userId"`
		Collections []struct {
			ISBN string `json:"isbn"`
		} `json:"collectionOfIsbns"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError("1200", "Invalid body"))
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.owner(w, r, body.UserID)
	if !ok {
		return
	}

	added := []map[string]string{}
	for _, c := range body.Collections {
		if _, ok := findBook(c.ISBN); !ok {
			writeJSON(w, http.StatusBadRequest, apiError("1205", "ISBN supplied is not available in Books Collection!"))
			return
		}
		if contains(u.Shelf, c.ISBN) {
			writeJSON(w, http.StatusBadRequest, apiError("1210", "ISBN already present in the User's Collection!"))
			return
		}
	}
	for _, c := range body.Collections {
		u.Shelf = append(u.Shelf, c.ISBN)
		added = append(added, map[string]string{"isbn": c.ISBN})
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"books": added})
}

func (d *DemoAPI) replaceBook(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID string `json:"userId"`
		ISBN   string `json:"isbn"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError("1200", "Invalid body"))
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.owner(w, r, body.UserID)
	if !ok {
		return
	}
	newISBN := r.PathValue("isbn")
	if _, ok := findBook(newISBN); !ok {
		writeJSON(w, http.StatusBadRequest, apiError("1205", "ISBN supplied is not available in Books Collection!"))
		return
	}
	idx := indexOf(u.Shelf, body.ISBN)
	if idx < 0 {
		writeJSON(w, http.StatusBadRequest, apiError("1206", "ISBN supplied is not available in User's Collection!"))
		return
	}
	u.Shelf[idx] = newISBN
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"userId":   u.ID,
		"username": u.Username,
		"books":    d.shelfBooks(u),
	})
}

func (d *DemoAPI) deleteBook(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ISBN   string `json:"isbn"`
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError("1200", "Invalid body"))
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.owner(w, r, body.UserID)
	if !ok {
		return
	}
	idx := indexOf(u.Shelf, body.ISBN)
	if idx < 0 {
		writeJSON(w, http.StatusBadRequest, apiError("1206", "ISBN supplied is not available in User's Collection!"))
		return
	}
	u.Shelf = append(u.Shelf[:idx], u.Shelf[idx+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (d *DemoAPI) clearBooks(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.owner(w, r, r.URL.Query().Get("UserId"))
	if !ok {
		return
	}
	u.Shelf = nil
	w.WriteHeader(http.StatusNoContent)
}

func contains(list []string, v string) bool {
	return indexOf(list, v) >= 0
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}

// BearerFor issues a token for an existing user, bypassing the API.
func (d *DemoAPI) BearerFor(id string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[id]
	if !ok {
		return "", fmt.Errorf("no user %s", id)
	}
	token, _ := d.issue(u)
	return token, nil
}
