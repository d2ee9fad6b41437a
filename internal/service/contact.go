package service

import (
	"regexp"
	"strings"
	"unicode"
)

// ContactKind describes which shape a contact string matched.
type ContactKind string

const (
	ContactUnknown ContactKind = "unknown"
	ContactEmail   ContactKind = "email"
	ContactPhone   ContactKind = "phone"
)

// contactSpace is every rune treated as whitespace in a contact: ASCII
// whitespace including \v, the information separators U+001C..U+001F, NEL and
// all Unicode separators. RE2's \s only covers [\t\n\f\r ].
const contactSpace = `\t\n\v\f\r\x{1c}-\x{1f}\x{85}\p{Z}`

// Shape checks only; they say nothing about deliverability.
var (
	contactEmailPattern = regexp.MustCompile(`^[^@` + contactSpace + `]+@[^@` + contactSpace + `]+\.[^@` + contactSpace + `]+$`)
	contactPhonePattern = regexp.MustCompile(`^[0-9+()\-` + contactSpace + `]{7,}$`)
)

// ClassifyContact reports whether contact looks like an email address or a
// phone number. Email wins when both patterns would match.
func ClassifyContact(contact string) ContactKind {
	switch {
	case contactEmailPattern.MatchString(contact):
		return ContactEmail
	case contactPhonePattern.MatchString(contact):
		return ContactPhone
	default:
		return ContactUnknown
	}
}

// IsValidContact is the pure predicate used by lead intake. Surrounding
// whitespace is ignored.
func IsValidContact(contact string) bool {
	return ClassifyContact(TrimContact(contact)) != ContactUnknown
}

// TrimContact strips leading and trailing contact whitespace.
func TrimContact(contact string) string {
	return strings.TrimFunc(contact, isContactSpace)
}

func isContactSpace(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\v', r == '\f', r == '\r':
		return true
	case r >= 0x1c && r <= 0x1f, r == 0x85:
		return true
	default:
		return unicode.In(r, unicode.Z)
	}
}
