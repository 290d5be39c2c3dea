// Package pipeline wires inspection, selection, and remuxing into one run:
// load the track catalog, resolve the user's selection tokens into an
// exclusion set, and drive the remux. Everything is synchronous; the only
// blocking calls are the two external tool invocations.
package pipeline
