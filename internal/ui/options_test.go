package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindowSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{in: "1920,1080", w: 1920, h: 1080},
		{in: "1280x720", w: 1280, h: 720},
		{in: " 800 , 600 ", w: 800, h: 600},
		{in: "1920", wantErr: true},
		{in: "0,100", wantErr: true},
		{in: "abc,100", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, h, err := ParseWindowSize(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.w, w)
			assert.Equal(t, tt.h, h)
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	d := DefaultOptions()
	assert.False(t, d.Headless)
	assert.Equal(t, BrowserChrome, d.Browser)
	assert.Equal(t, "1920,1080", d.WindowSize)
	assert.Equal(t, "en-US", d.Lang)
	assert.Equal(t, 2*time.Second, d.ImplicitWait)
}

func TestAllocatorOptions(t *testing.T) {
	t.Run("chrome", func(t *testing.T) {
		opts, err := allocatorOptions(Options{Browser: "Chrome", Incognito: true})
		require.NoError(t, err)
		assert.NotEmpty(t, opts)
	})

	t.Run("firefox is not drivable", func(t *testing.T) {
		_, err := allocatorOptions(Options{Browser: BrowserFirefox})
		assert.ErrorIs(t, err, ErrUnsupportedBrowser)
	})

	t.Run("edge with explicit binary", func(t *testing.T) {
		_, err := allocatorOptions(Options{Browser: BrowserEdge, ExecPath: "/opt/msedge"})
		assert.NoError(t, err)
	})

	t.Run("bad window size", func(t *testing.T) {
		_, err := allocatorOptions(Options{WindowSize: "wide"})
		assert.Error(t, err)
	})
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, BrowserChrome, o.Browser)
	assert.Equal(t, "1920,1080", o.WindowSize)
	assert.Equal(t, "en-US", o.Lang)
	assert.Equal(t, 2*time.Second, o.ImplicitWait)
	assert.Equal(t, 10*time.Second, o.Timeout)
}

func TestSelectors(t *testing.T) {
	assert.Equal(t, "css=#login", ByID("login").String())
	assert.Equal(t, "//*[contains(text(), '978')]", ContainsText("978").Value)
	assert.Equal(t, `"it's"`, xpathLiteral("it's"))
	assert.Equal(t, `concat('a',"'",'b"c')`, xpathLiteral(`a'b"c`))
	assert.Contains(t, ByXPath("//a").jsAll(), "document.evaluate(\"//a\"")
	assert.Equal(t, `Array.from(document.querySelectorAll("#app select"))`, ByCSS("#app select").jsAll())
}
