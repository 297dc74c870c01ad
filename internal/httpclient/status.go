package httpclient

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// StatusSet is the set of status codes a caller accepts for a request. A
// nil or empty set accepts any status.
type StatusSet map[int]struct{}

// Expect builds a StatusSet from one or more codes.
func Expect(codes ...int) StatusSet {
	s := make(StatusSet, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

// Union merges sets.
func Union(sets ...StatusSet) StatusSet {
	out := StatusSet{}
	for _, s := range sets {
		for c := range s {
			out[c] = struct{}{}
		}
	}
	return out
}

func (s StatusSet) Empty() bool {
	return len(s) == 0
}

// Allows reports whether code is acceptable. Empty sets allow everything.
func (s StatusSet) Allows(code int) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[code]
	return ok
}

// Codes returns the codes in ascending order.
func (s StatusSet) Codes() []int {
	out := make([]int, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Ints(out)
	return out
}

func (s StatusSet) String() string {
	codes := s.Codes()
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = strconv.Itoa(c)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// StatusError describes a response whose status was not in the expected set.
// Do never returns it; callers that want hard failures build it with Check.
type StatusError struct {
	Method   string
	URL      string
	Status   int
	Expected StatusSet
	Preview  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s %s; expected=%s; body=%s",
		e.Status, e.Method, e.URL, e.Expected, e.Preview)
}

// Check returns a *StatusError when resp's status is outside expected.
func Check(resp *Response, expected StatusSet) error {
	if resp == nil || expected.Allows(resp.StatusCode) {
		return nil
	}
	return &StatusError{
		Method:   resp.Request.Method,
		URL:      resp.URL,
		Status:   resp.StatusCode,
		Expected: expected,
		Preview:  Shorten(resp.Text(), previewLen),
	}
}

const (
	previewLen    = 500
	truncatedMark = "...<truncated>"
)

// Shorten cuts s to n characters, marking the cut.
func Shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + truncatedMark
}
