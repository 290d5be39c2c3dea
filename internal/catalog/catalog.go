package catalog

import (
	"errors"
	"sort"
)

// Kind classifies a track by the codec type reported by the inspector.
type Kind string

const (
	KindVideo    Kind = "video"
	KindAudio    Kind = "audio"
	KindSubtitle Kind = "subtitle"
	KindOther    Kind = "other"
)

// ParseKind maps an inspector codec type onto a Kind. Anything that is not
// video, audio, or subtitle collapses to KindOther.
func ParseKind(codecType string) Kind {
	switch codecType {
	case "video":
		return KindVideo
	case "audio":
		return KindAudio
	case "subtitle":
		return KindSubtitle
	default:
		return KindOther
	}
}

// Track describes a single stream in the source container. Index values are
// the inspector's stream indices and are the only identifiers ever handed to
// the remux step.
type Track struct {
	Index     int
	Kind      Kind
	Codec     string
	Language  string // lowercase, empty when untagged
	Title     string // empty when untagged
	Forced    bool
	ByteCount uint64 // 0 when the source carries no size statistics
}

// ErrEmptyCatalog is returned when inspection produced no tracks at all.
// There is nothing to select from, so the whole run must abort.
var ErrEmptyCatalog = errors.New("catalog: no tracks in source")

// Catalog is an immutable collection of tracks for one input file.
type Catalog struct {
	tracks  []Track
	byIndex map[int]Track
}

// Load wraps the raw descriptor list. It filters nothing and fails only when
// the list is empty.
func Load(tracks []Track) (*Catalog, error) {
	if len(tracks) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := &Catalog{
		tracks:  make([]Track, len(tracks)),
		byIndex: make(map[int]Track, len(tracks)),
	}
	copy(c.tracks, tracks)
	for _, t := range c.tracks {
		c.byIndex[t.Index] = t
	}
	return c, nil
}

// Len returns the number of tracks in the catalog.
func (c *Catalog) Len() int {
	return len(c.tracks)
}

// Tracks returns the tracks in inspector order.
func (c *Catalog) Tracks() []Track {
	out := make([]Track, len(c.tracks))
	copy(out, c.tracks)
	return out
}

// ByIndex looks up a track by its stream index.
func (c *Catalog) ByIndex(index int) (Track, bool) {
	t, ok := c.byIndex[index]
	return t, ok
}

// ByKind returns all tracks matching any of the given kinds, preserving
// inspector order.
func (c *Catalog) ByKind(kinds ...Kind) []Track {
	wanted := make(map[Kind]struct{}, len(kinds))
	for _, k := range kinds {
		wanted[k] = struct{}{}
	}
	var out []Track
	for _, t := range c.tracks {
		if _, ok := wanted[t.Kind]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Indices returns the sorted stream indices of all tracks matching any of
// the given kinds.
func (c *Catalog) Indices(kinds ...Kind) []int {
	tracks := c.ByKind(kinds...)
	out := make([]int, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, t.Index)
	}
	sort.Ints(out)
	return out
}
