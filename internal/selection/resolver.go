package selection

import (
	"sort"

	"ffstrip/internal/catalog"
)

// Mode selects between strip semantics (named tracks are removed) and keep
// semantics (named audio/subtitle tracks survive, the rest are removed).
type Mode int

const (
	ModeStrip Mode = iota
	ModeKeep
)

func (m Mode) String() string {
	if m == ModeKeep {
		return "keep"
	}
	return "strip"
}

// SkippedToken records a token that contributed no indices because it failed
// to parse. The run continues without it.
type SkippedToken struct {
	Raw string
	Err error
}

// Result is the final selection outcome for one run.
type Result struct {
	Mode Mode

	// Exclude holds the stream indices to drop, sorted ascending.
	Exclude []int

	// Skipped lists tokens rejected during parsing.
	Skipped []SkippedToken

	// Unknown lists literal indices that name no catalog track. They are
	// still passed through to the remux step unchanged.
	Unknown []int
}

// Resolve combines all tokens under the given mode into the exclusion set.
// Token-level parse failures are recorded in Result.Skipped rather than
// aborting the run. Resolution is pure set algebra, so token order never
// changes the outcome.
func Resolve(tokens []string, mode Mode, cat *catalog.Catalog) Result {
	result := Result{Mode: mode}

	named := make(map[int]struct{})
	literals := make(map[int]struct{})
	for _, raw := range tokens {
		tok, err := ParseToken(raw)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedToken{Raw: raw, Err: err})
			continue
		}
		if tok.IsLiteral {
			literals[tok.Literal] = struct{}{}
			continue
		}
		for idx := range Match(tok, cat) {
			named[idx] = struct{}{}
		}
	}

	exclude := make(map[int]struct{})
	switch mode {
	case ModeKeep:
		// Every audio/subtitle track not explicitly named gets dropped.
		// Video and other kinds are never auto-excluded.
		for _, idx := range cat.Indices(catalog.KindAudio, catalog.KindSubtitle) {
			exclude[idx] = struct{}{}
		}
		for idx := range named {
			delete(exclude, idx)
		}
		// Literal indices override last: an explicitly kept index always
		// survives, even when no pattern rescued it.
		for idx := range literals {
			delete(exclude, idx)
		}
	default:
		for idx := range named {
			exclude[idx] = struct{}{}
		}
		for idx := range literals {
			exclude[idx] = struct{}{}
		}
	}

	for idx := range literals {
		if _, ok := cat.ByIndex(idx); !ok {
			result.Unknown = append(result.Unknown, idx)
		}
	}
	sort.Ints(result.Unknown)

	result.Exclude = make([]int, 0, len(exclude))
	for idx := range exclude {
		result.Exclude = append(result.Exclude, idx)
	}
	sort.Ints(result.Exclude)
	return result
}
