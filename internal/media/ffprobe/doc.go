// Package ffprobe wraps the ffprobe command line tool for media inspection
// and converts its stream list into track descriptors for the catalog.
package ffprobe
