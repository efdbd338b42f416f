package contact

import (
	"regexp"
	"strings"
	"unicode"
)

// Field length caps, in characters.
const (
	MaxNameLength    = 100
	MaxEmailLength   = 120
	MaxMessageLength = 3000
	MaxSubjectLength = 120
)

var (
	emailPattern = regexp.MustCompile(`^[^\p{Z}\s\v\x{FEFF}@]+@[^\p{Z}\s\v\x{FEFF}@]+\.[^\p{Z}\s\v\x{FEFF}@]+$`)
	lineBreaks   = regexp.MustCompile(`[\r\n]+`)
	subjectDeny  = regexp.MustCompile(`[^0-9A-Za-z áéíóúÁÉÍÓÚüÜñÑ.,:;_@\-()/]`)
)

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// SanitizeLine makes s safe for single-line contexts such as mail headers:
// line breaks become a space, other control characters are dropped, and the
// result is trimmed and cut to max characters.
func SanitizeLine(s string, max int) string {
	s = lineBreaks.ReplaceAllString(s, " ")
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\t' {
			return -1
		}
		return r
	}, s)
	return truncate(strings.TrimSpace(s), max)
}

// SanitizeMultiline trims s and cuts it to max characters, keeping line breaks.
func SanitizeMultiline(s string, max int) string {
	return truncate(strings.TrimSpace(s), max)
}

// SafeSubject reduces s to the subject allow-list.
func SafeSubject(s string) string {
	return subjectDeny.ReplaceAllString(SanitizeLine(s, MaxSubjectLength), "")
}

// Sanitize applies the per-field rules to a submission.
func Sanitize(sub Submission) Sanitized {
	return Sanitized{
		Name:    SanitizeLine(sub.Name, MaxNameLength),
		Email:   SanitizeLine(sub.Email, MaxEmailLength),
		Message: SanitizeMultiline(sub.Message, MaxMessageLength),
	}
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
