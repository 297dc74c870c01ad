// Package datagen produces random test data accepted by the demo
// application.
package datagen

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultUserPrefix = "auto_user"
	passwordCore      = "1Aa@"
	lowerDigits       = "abcdefghijklmnopqrstuvwxyz0123456789"
	passwordTail      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_-"
)

func randomString(alphabet string, n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(alphabet[rand.IntN(len(alphabet))])
	}
	return b.String()
}

// Username returns <prefix>_<8 random lowercase/digits>_<unix millis>.
func Username(prefix string) string {
	if prefix == "" {
		prefix = DefaultUserPrefix
	}
	return prefix + "_" + randomString(lowerDigits, 8) + "_" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// Password returns a 13 character password that always satisfies the
// service's strength rule.
func Password() string {
	return passwordCore + randomString(passwordTail, 9)
}

// Credentials is a random username/password pair.
type Credentials struct {
	UserName string
	Password string
}

func NewCredentials() Credentials {
	return Credentials{UserName: Username(DefaultUserPrefix), Password: Password()}
}

// ISODatePlusDays returns base+days formatted as YYYY-MM-DD. A zero base
// means now.
func ISODatePlusDays(days int, base time.Time) string {
	if base.IsZero() {
		base = time.Now()
	}
	return base.AddDate(0, 0, days).Format("2006-01-02")
}

// AuthCookieExpiry is the "expires" cookie value the web UI writes after a
// login: tomorrow at 23:59:59, URL-encoded.
func AuthCookieExpiry(now time.Time) string {
	return ISODatePlusDays(1, now) + "T23%3A59%3A59"
}
