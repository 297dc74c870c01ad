package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid", "1Aa@abcdef", true},
		{"too short", "1Aa@", false},
		{"no upper", "1aa@abcdef", false},
		{"no lower", "1AA@ABCDEF", false},
		{"no digit", "Aaa@abcdef", false},
		{"no special", "1Aaabcdefg", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStrongPassword(tt.password))
		})
	}
}

func TestIsISBN(t *testing.T) {
	assert.True(t, IsISBN("9781449325862"))
	assert.True(t, IsISBN("978-1-4493-2586-2"))
	assert.True(t, IsISBN("144932586X"))
	assert.False(t, IsISBN("12345"))
	assert.False(t, IsISBN("97814493258AB"))
}

type sample struct {
	Name     string `validate:"required"`
	Endpoint string `validate:"required,url"`
	Password string `validate:"password_strength"`
	ISBN     string `validate:"omitempty,isbn"`
}

func TestStruct(t *testing.T) {
	err := Struct(sample{Name: "x", Endpoint: "https://demoqa.com", Password: "1Aa@abcdef"})
	assert.NoError(t, err)

	err = Struct(sample{Endpoint: "not a url", Password: "weak", ISBN: "1"})
	require.Error(t, err)

	var errs Errors
	require.ErrorAs(t, err, &errs)
	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"name", "endpoint", "password", "iSBN"}, fields)
	assert.Contains(t, err.Error(), "Name is required")
}
