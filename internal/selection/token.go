package selection

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ffstrip/internal/catalog"
)

var (
	// ErrMalformedToken marks a structured token missing the scope:predicate
	// separator. The caller reports and skips it; the run continues.
	ErrMalformedToken = errors.New("malformed selection token")

	// ErrUnknownScope marks a structured token whose scope letter is neither
	// "a" nor "s". Same skip-and-continue policy as ErrMalformedToken.
	ErrUnknownScope = errors.New("unknown selection scope")

	// ErrConflictingMode is returned when both strip and keep tokens are
	// supplied. This is fatal; no output file is written.
	ErrConflictingMode = errors.New("cannot strip and keep at the same time")
)

// Token is one parsed selection criterion.
type Token struct {
	Raw       string
	Literal   int
	IsLiteral bool
	Scope     catalog.Kind // audio or subtitle when !IsLiteral
	Predicate string
}

// ParseToken classifies a raw token as a literal stream index or a scoped
// pattern. Structured tokens without a separator fail with ErrMalformedToken,
// unrecognized scope letters with ErrUnknownScope.
func ParseToken(raw string) (Token, error) {
	trimmed := strings.TrimSpace(raw)
	if isDigits(trimmed) {
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return Token{}, fmt.Errorf("%w: %q", ErrMalformedToken, raw)
		}
		return Token{Raw: raw, Literal: n, IsLiteral: true}, nil
	}

	scope, predicate, found := strings.Cut(trimmed, ":")
	if !found {
		return Token{}, fmt.Errorf("%w: %q", ErrMalformedToken, raw)
	}
	tok := Token{Raw: raw, Predicate: predicate}
	switch scope {
	case "a":
		tok.Scope = catalog.KindAudio
	case "s":
		tok.Scope = catalog.KindSubtitle
	default:
		return Token{}, fmt.Errorf("%w: %q in token %q", ErrUnknownScope, scope, raw)
	}
	return tok, nil
}

// isDigits reports whether s is a non-empty run of ASCII digits. Signed
// forms like "+3" are not literals; they fall through to pattern parsing
// and fail there.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
