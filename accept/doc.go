// Package accept parses HTTP Accept headers and matches content types
// against the media ranges they list.
//
// Entries keep the header's left-to-right order. Quality values are parsed
// but callers in this module use them only as part of the entry, never to
// rank candidates. Malformed input degrades to fewer entries; Parse never
// fails.
package accept
