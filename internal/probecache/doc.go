// Package probecache persists raw ffprobe results in SQLite so repeated
// inspections of an unchanged file skip the external ffprobe invocation.
// Entries are keyed by absolute path, file size, and modification time; any
// change to the file invalidates its entry naturally.
package probecache
