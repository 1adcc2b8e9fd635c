package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+55 11 98888-7777", "+5511988887777"},
		{"(11) 98888-7777", "11988887777"},
		{"+55.11.98888.7777", "+5511988887777"},
		{"  +5511988887777  ", "+5511988887777"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhone(tt.in), "input %q", tt.in)
	}
}

func TestNormalizePhoneDedupKey(t *testing.T) {
	// Two spellings of the same number must collapse to one key
	a := NormalizePhone("+55 (11) 98888-7777")
	b := NormalizePhone("+55 11 98888 7777")
	assert.Equal(t, a, b)
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("ana.souza@example.com"))
	assert.True(t, IsValidEmail("a+b@sub.example.ie"))
	assert.False(t, IsValidEmail("ana.souza@"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("+55 11 98888-7777"))
	assert.True(t, IsValidPhone("0851234567"))
	assert.False(t, IsValidPhone("12345"))
	assert.False(t, IsValidPhone(""))
}

func TestFullName(t *testing.T) {
	u := &User{FirstName: "Ana", LastName: "Souza"}
	assert.Equal(t, "Ana Souza", u.FullName())

	u = &User{FirstName: "Ana"}
	assert.Equal(t, "Ana", u.FullName())
}
