package selection

import (
	"sort"
	"strconv"
	"strings"

	"ffstrip/internal/catalog"
)

// Match resolves a parsed token against the catalog and returns the matching
// stream indices. Literal tokens resolve to themselves without a membership
// check; whether the index actually exists is the resolver's concern, since
// literals may name tracks of any kind.
func Match(tok Token, cat *catalog.Catalog) map[int]struct{} {
	if tok.IsLiteral {
		return map[int]struct{}{tok.Literal: {}}
	}

	candidates := sortedBySize(cat.ByKind(tok.Scope))
	if len(candidates) == 0 {
		return nil
	}

	if tok.Scope == catalog.KindSubtitle {
		switch tok.Predicate {
		case "smaller":
			return map[int]struct{}{candidates[0].Index: {}}
		case "bigger":
			return map[int]struct{}{candidates[len(candidates)-1].Index: {}}
		}
	}

	if isDigits(tok.Predicate) {
		if rank, err := strconv.Atoi(tok.Predicate); err == nil && rank < len(candidates) {
			return map[int]struct{}{candidates[rank].Index: {}}
		}
	}

	pattern := strings.ToLower(tok.Predicate)
	matched := make(map[int]struct{})
	for _, track := range candidates {
		forced := ""
		if track.Forced {
			forced = "forced"
		}
		for _, field := range []string{strings.ToLower(track.Language), strings.ToLower(track.Title), forced} {
			if strings.Contains(field, pattern) {
				matched[track.Index] = struct{}{}
				break
			}
		}
	}
	return matched
}

// sortedBySize orders candidates ascending by byte count, ties broken by
// ascending stream index so positional predicates are deterministic.
func sortedBySize(tracks []catalog.Track) []catalog.Track {
	out := make([]catalog.Track, len(tracks))
	copy(out, tracks)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ByteCount != out[j].ByteCount {
			return out[i].ByteCount < out[j].ByteCount
		}
		return out[i].Index < out[j].Index
	})
	return out
}
