// Package ui drives the demo web application through a real browser and
// exposes page objects for the screens the suite exercises.
package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// SelectorKind tells the driver how to resolve a Selector.
type SelectorKind int

const (
	CSS SelectorKind = iota
	XPath
)

// Selector locates one or more elements on the current page.
type Selector struct {
	Kind  SelectorKind
	Value string
}

// ByID is a CSS selector for an element id.
func ByID(id string) Selector { return Selector{Kind: CSS, Value: "#" + id} }

// ByCSS wraps a CSS selector.
func ByCSS(q string) Selector { return Selector{Kind: CSS, Value: q} }

// ByXPath wraps an XPath expression.
func ByXPath(q string) Selector { return Selector{Kind: XPath, Value: q} }

// ContainsText matches any element whose own text contains s.
func ContainsText(s string) Selector {
	return ByXPath(fmt.Sprintf("//*[contains(text(), %s)]", xpathLiteral(s)))
}

func (s Selector) String() string {
	if s.Kind == XPath {
		return "xpath=" + s.Value
	}
	return "css=" + s.Value
}

// jsAll is a JavaScript expression evaluating to an array of matches.
func (s Selector) jsAll() string {
	q := jsString(s.Value)
	if s.Kind == XPath {
		return "(function(){var r=document.evaluate(" + q +
			",document,null,XPathResult.ORDERED_NODE_SNAPSHOT_TYPE,null);var a=[];" +
			"for(var i=0;i<r.snapshotLength;i++){a.push(r.snapshotItem(i));}return a;})()"
	}
	return "Array.from(document.querySelectorAll(" + q + "))"
}

func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// xpathLiteral quotes s for XPath 1.0, which has no escape sequences.
func xpathLiteral(s string) string {
	switch {
	case !strings.ContainsRune(s, '\''):
		return "'" + s + "'"
	case !strings.ContainsRune(s, '"'):
		return `"` + s + `"`
	}
	chunks := strings.Split(s, "'")
	parts := make([]string, 0, 2*len(chunks))
	for i, c := range chunks {
		if i > 0 {
			parts = append(parts, `"'"`)
		}
		if c != "" {
			parts = append(parts, "'"+c+"'")
		}
	}
	return "concat(" + strings.Join(parts, ",") + ")"
}

// Cookie is a browser cookie. An empty Domain means the current page's host.
type Cookie struct {
	Name   string
	Value  string
	Domain string
	Path   string
}

//go:generate mockgen -destination=mocks/mock_driver.go -package=mocks bookqa/internal/ui Driver

// Driver is the browser surface page objects are written against.
type Driver interface {
	Navigate(ctx context.Context, url string) error
	Location(ctx context.Context) (string, error)
	WaitVisible(ctx context.Context, sel Selector) error
	WaitNotPresent(ctx context.Context, sel Selector) error
	Click(ctx context.Context, sel Selector) error
	SendKeys(ctx context.Context, sel Selector, text string) error
	Clear(ctx context.Context, sel Selector) error
	SetValue(ctx context.Context, sel Selector, value string) error
	Select(ctx context.Context, sel Selector, value string) error
	Text(ctx context.Context, sel Selector) (string, error)
	Texts(ctx context.Context, sel Selector) ([]string, error)
	Attribute(ctx context.Context, sel Selector, name string) (string, error)
	Value(ctx context.Context, sel Selector) (string, error)
	Count(ctx context.Context, sel Selector) (int, error)
	SetCookies(ctx context.Context, cookies ...Cookie) error
	ClearStorage(ctx context.Context) error
	Screenshot(ctx context.Context) ([]byte, error)
	PageSource(ctx context.Context) (string, error)
	ConsoleLogs() []string
	Close() error
}
