package accept

import (
	"strconv"
	"strings"
)

// Any is the media range that matches every content type.
const Any = "*/*"

// Entry is one media range from an Accept header.
type Entry struct {
	MediaRange string
	Quality    float64
}

// Parse splits an Accept header into entries in header order.
//
// Each comma-separated part contributes one entry. A "q" parameter sets the
// quality, clamped to [0, 1]; a missing or unparsable value means 1.0.
// Empty parts are skipped, so an empty header yields no entries.
func Parse(header string) []Entry {
	var entries []Entry
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		mediaRange, params, _ := strings.Cut(part, ";")
		mediaRange = strings.TrimSpace(mediaRange)
		if mediaRange == "" {
			continue
		}

		entries = append(entries, Entry{
			MediaRange: mediaRange,
			Quality:    quality(params),
		})
	}
	return entries
}

func quality(params string) float64 {
	for _, param := range strings.Split(params, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "q") {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 1.0
		}
		return min(max(q, 0), 1)
	}
	return 1.0
}

// Specific returns entries without the "*/*" range. A wildcard matches the
// first candidate it is compared to, which would hide a better candidate
// further down the list.
func Specific(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.MediaRange == Any {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Match reports whether mimeType falls within mediaRange. It accepts an
// exact match, "type/*", "*/*", and a bare "type" without a subtype.
// Comparison is case-insensitive and parameters on mimeType are ignored.
func Match(mimeType, mediaRange string) bool {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	vType, vSub, _ := strings.Cut(strings.ToLower(strings.TrimSpace(mimeType)), "/")
	mType, mSub, hasSub := strings.Cut(strings.ToLower(strings.TrimSpace(mediaRange)), "/")

	if mType != "*" && mType != vType {
		return false
	}
	return !hasSub || mSub == "*" || mSub == vSub
}

// MatchAny reports whether mimeType matches at least one entry.
func MatchAny(mimeType string, entries []Entry) bool {
	for _, e := range entries {
		if Match(mimeType, e.MediaRange) {
			return true
		}
	}
	return false
}
