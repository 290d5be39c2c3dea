// Package language translates the ISO language tags found in container
// metadata into human-readable names for track listings.
package language
