package contact

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLine(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"  Ana  ", 100, "Ana"},
		{"Eve\r\nBcc: attacker@evil.com", 100, "Eve Bcc: attacker@evil.com"},
		{"a\n\n\nb", 100, "a b"},
		{"null\x00byte\x1bescape", 100, "nullbyteescape"},
		{"abcdef", 3, "abc"},
		{"ñandú ñandú", 5, "ñandú"},
		{"", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := SanitizeLine(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "\r")
			assert.NotContains(t, got, "\n")
		})
	}
}

func TestSanitizeMultilineKeepsLineBreaks(t *testing.T) {
	assert.Equal(t, "line one\nline two", SanitizeMultiline("\n line one\nline two \n", 3000))
	assert.Equal(t, "ab", SanitizeMultiline("abc", 2))
}

func TestSanitizeTruncatesFields(t *testing.T) {
	got := Sanitize(Submission{
		Name:    strings.Repeat("x", 500),
		Email:   strings.Repeat("e", 200) + "@test.com",
		Message: strings.Repeat("m", 5000),
	})

	assert.Len(t, []rune(got.Name), MaxNameLength)
	assert.Len(t, []rune(got.Email), MaxEmailLength)
	assert.Len(t, []rune(got.Message), MaxMessageLength)
}

func TestSafeSubjectAllowList(t *testing.T) {
	allowed := regexp.MustCompile(`^[0-9A-Za-z áéíóúÁÉÍÓÚüÜñÑ.,:;_@\-()/]*$`)

	inputs := []string{
		"New Contact Form: José Núñez - Edites Solutions",
		"New Contact Form: <b>Eve</b>; DROP TABLE - x",
		"New Contact Form: Eve\r\nBcc: attacker@evil.com",
		"emoji 🎉 and tabs\tand quotes \"'`",
		"ça va? ¿qué? 50% & co.",
	}
	for _, in := range inputs {
		got := SafeSubject(in)
		assert.Regexp(t, allowed, got)
		assert.LessOrEqual(t, len([]rune(got)), MaxSubjectLength)
	}

	assert.Equal(t, "New Contact Form: José Núñez - Edites Solutions", SafeSubject(inputs[0]))
	assert.Equal(t, "New Contact Form: bEve/b; DROP TABLE - x", SafeSubject(inputs[1]))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("ana@test.com"))
	assert.True(t, ValidEmail("a.b+c@sub.domain.io"))
	assert.False(t, ValidEmail("foo"))
	assert.False(t, ValidEmail("foo@bar"))
	assert.False(t, ValidEmail("@bar.com"))
	assert.False(t, ValidEmail("ana@test.com\n"))
	assert.False(t, ValidEmail("ana\u00a0x@test.com"))
	assert.False(t, ValidEmail("ana@test\u2028x.com"))
	assert.False(t, ValidEmail("a\vb@test.com"))
	assert.False(t, ValidEmail("ana@test.com\u00a0"))
	assert.False(t, ValidEmail("ana@te\u3000st.com"))
	assert.False(t, ValidEmail("\ufeffana@test.com"))
	assert.True(t, ValidEmail("josé@núñez.es"))
}

func TestBuildNotification(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 6000000, time.FixedZone("ART", -3*3600))
	n := BuildNotification(Sanitized{
		Name:    "Ana & Co",
		Email:   "ana@test.com",
		Message: "line one\nline <two>",
	}, "Edites Solutions", at)

	assert.Equal(t, "New Contact Form: Ana  Co - Edites Solutions", n.Subject)
	assert.Equal(t, "ana@test.com", n.ReplyTo)
	assert.Equal(t, `New Contact Form Submission - Edites Solutions

Name: Ana & Co
Email: ana@test.com
Message:
line one
line <two>

Submitted on: 2025-01-02T06:04:05.006Z`, n.TextBody)
	assert.Contains(t, n.HTMLBody, "<h2>New Contact Form Submission - Edites Solutions</h2>")
	assert.Contains(t, n.HTMLBody, "<p><strong>Name:</strong> Ana &amp; Co</p>")
	assert.Contains(t, n.HTMLBody, "<p>line one<br>line &lt;two&gt;</p>")
	assert.Contains(t, n.HTMLBody, "<p><small>Submitted on: 2025-01-02T06:04:05.006Z</small></p>")
}
