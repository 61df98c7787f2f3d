package assistant

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestRedact(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Stage en développement web", "Stage en développement web"},
		{"email", "Écrire à jean.dupont@example.com pour info", "Écrire à " + RedactedEmail + " pour info"},
		{"two emails", "a@b.io, c.d@e-f.org", RedactedEmail + ", " + RedactedEmail},
		{"phone", "Tel 5145551234 ou poste 123", "Tel " + RedactedNumber + " ou poste 123"},
		{"exactly seven digits", "NAS 1234567", "NAS " + RedactedNumber},
		{"six digits kept", "code 123456", "code 123456"},
		{"long run is one placeholder", "12345678901234567890", RedactedNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Redact(tt.in))
		})
	}
}

func TestRedact_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"contact: marie@ecole.qc.ca, 4505551234",
		"foo@bar.com@baz.org",
		strings.Repeat("é", 450),
		strings.Repeat("x", 395) + " jane@doe.com",
		strings.Repeat("1", 399) + "a",
		strings.Repeat("ab ", 200) + "0123456789",
	}
	for _, in := range inputs {
		once := Redact(in)
		assert.Equal(t, once, Redact(once), "input %q", in)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "ab…", Truncate("abc", 2))
	assert.Equal(t, "éé…", Truncate("ééé", 2))

	long := strings.Repeat("a", 1000)
	once := Truncate(long, MaxTextLength)
	assert.Equal(t, MaxTextLength+1, utf8.RuneCountInString(once))
	assert.Equal(t, once, Truncate(once, MaxTextLength))

	exact := strings.Repeat("b", MaxTextLength)
	assert.Equal(t, exact, Truncate(exact, MaxTextLength))
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `il a dit \"oui\"\nfin`, Escape("il a dit \"oui\"\nfin"))
	assert.Equal(t, `C:\\stages`, Escape(`C:\stages`))
	assert.Equal(t, `a\rb`, Escape("a\rb"))
}
