package kinship

import (
	"fmt"
	"strings"
)

// Person is a canonical, lowercase person identifier. The only way to
// produce one from user input is NormalizeName.
type Person = string

const (
	minNameLen = 2
	maxNameLen = 64
)

// NormalizeName validates a raw surface token and returns its canonical
// (lowercase) form. The external form is a single capitalized word: first
// letter upper, remaining letters lower, no spaces, letters only.
func NormalizeName(raw string) (Person, error) {
	if raw == "" {
		return "", &KBError{Kind: InvalidName, Message: "a name cannot be empty."}
	}
	if strings.ContainsAny(raw, " \t\n") {
		return "", &KBError{Kind: InvalidName, Message: fmt.Sprintf("the name %q cannot contain spaces.", raw)}
	}
	runes := []rune(raw)
	if len(runes) < minNameLen {
		return "", &KBError{Kind: InvalidName, Message: fmt.Sprintf("the name %q is too short.", raw)}
	}
	if len(runes) > maxNameLen {
		return "", &KBError{Kind: InvalidName, Message: fmt.Sprintf("the name %q is too long.", raw)}
	}
	for i, r := range runes {
		switch {
		case r < 'A' || r > 'z' || (r > 'Z' && r < 'a'):
			return "", &KBError{Kind: InvalidName, Message: fmt.Sprintf("the name %q can only contain letters.", raw)}
		case i == 0 && !(r >= 'A' && r <= 'Z'):
			return "", &KBError{Kind: InvalidName, Message: fmt.Sprintf("the name %q must start with a capital letter.", raw)}
		case i > 0 && !(r >= 'a' && r <= 'z'):
			return "", &KBError{Kind: InvalidName, Message: fmt.Sprintf("the name %q must be capitalized (one upper letter, then lower).", raw)}
		}
	}
	return strings.ToLower(raw), nil
}

// Display renders a canonical identifier back to its capitalized external
// form. Placeholder identifiers are rendered as-is (an aunt/uncle
// clarification prompt can name one as the niece/nephew's parent).
func Display(p Person) string {
	if p == "" {
		return p
	}
	if isPlaceholder(p) {
		return p
	}
	return strings.ToUpper(p[:1]) + p[1:]
}

func isPlaceholder(p Person) bool {
	return strings.HasPrefix(p, "shared_mother_") || strings.HasPrefix(p, "shared_father_")
}

// placeholderName synthesizes the deterministic placeholder identifier for
// a sibling pair, sorted lexicographically, per spec.md §3 and §6.
func placeholderName(parentType Gender, a, b Person) Person {
	lo, hi := a, b
	if hi < lo {
		lo, hi = hi, lo
	}
	if parentType == Female {
		return fmt.Sprintf("shared_mother_%s_%s", lo, hi)
	}
	return fmt.Sprintf("shared_father_%s_%s", lo, hi)
}
