package httpclient

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusSet(t *testing.T) {
	single := Expect(204)
	assert.True(t, single.Allows(204))
	assert.False(t, single.Allows(200))

	many := Expect(204, 200, 200)
	assert.Equal(t, []int{200, 204}, many.Codes())
	assert.Equal(t, "[200, 204]", many.String())

	var none StatusSet
	assert.True(t, none.Empty())
	assert.True(t, none.Allows(500))

	assert.Equal(t, []int{200, 201, 204}, Union(Expect(200), Expect(201, 204)).Codes())
}

func TestShorten(t *testing.T) {
	assert.Equal(t, "short", Shorten("short", 10))
	out := Shorten(strings.Repeat("a", 12), 10)
	assert.Equal(t, strings.Repeat("a", 10)+"...<truncated>", out)
}

func TestMaskHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("Authorization", "Bearer secret")
	h.Set("Proxy-Authorization", "Basic secret")
	h.Set("Accept", "application/json")

	m := MaskHeaders(h)
	assert.Equal(t, "***", m["Authorization"])
	assert.Equal(t, "***", m["Proxy-Authorization"])
	assert.Equal(t, "application/json", m["Accept"])
}

func TestCurl(t *testing.T) {
	h := http.Header{}
	h.Set("Authorization", "Bearer secret")
	h.Set("Accept", "application/json")

	out := Curl(SentRequest{Method: "POST", URL: "https://demoqa.com/Account/v1/User", Header: h}, `{"a":1}`)
	assert.Equal(t, "curl -X POST 'https://demoqa.com/Account/v1/User' \\\n"+
		"  -H 'Accept: application/json' \\\n"+
		"  -H 'Authorization: ***' \\\n"+
		"  --data-raw '{\"a\":1}'", out)
	assert.NotContains(t, out, "secret")
}

func TestIsJSONAndPretty(t *testing.T) {
	assert.True(t, IsJSON("application/json; charset=utf-8"))
	assert.True(t, IsJSON("application/problem+json"))
	assert.False(t, IsJSON("text/html"))
	assert.False(t, IsJSON(""))

	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": \"<x>\"\n}", Pretty([]byte(`{"b":"<x>","a":1}`)))
	assert.Equal(t, "not json", Pretty([]byte("not json")))
}
