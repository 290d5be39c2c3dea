// Package remux drives ffmpeg stream-copy remuxes that drop a set of
// stream indices. Nothing is ever re-encoded; every surviving stream is
// copied bit-for-bit into the output container.
package remux
