// Package catalog provides a normalized, read-only view of the tracks
// discovered in a media container. Descriptors are populated once at the
// inspection boundary; downstream code never re-checks for missing tags.
package catalog
