// Package config loads and validates the ffstrip configuration file. All
// values have working defaults, so the tool runs without any config file at
// all; the file exists to pin tool binaries, tune logging, and enable the
// probe cache.
package config
