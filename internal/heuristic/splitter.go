package heuristic

import (
	"regexp"
	"strings"
)

// MinSegmentLength is the shortest segment kept by the splitter. Anything
// shorter is a noise fragment (a dangling connective, a stray word) that
// would otherwise become a meaningless subtask.
const MinSegmentLength = 5

// boundaryPattern matches the conjunction boundaries the splitter cuts on:
// a comma followed by and/then/with/plus, or a bare " and " / " then ".
var boundaryPattern = regexp.MustCompile(`(?i),\s*(?:and|then|with|plus)\s+|\s+and\s+|\s+then\s+`)

// Split segments task text into candidate subtask phrases.
//
// Segments are trimmed and those shorter than MinSegmentLength are
// discarded. The returned order matches the left-to-right order of the
// remaining text. Empty input produces an empty (nil) result.
func Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var segments []string
	for _, part := range boundaryPattern.Split(text, -1) {
		part = strings.TrimSpace(part)
		if len(part) < MinSegmentLength {
			continue
		}
		segments = append(segments, part)
	}

	return segments
}
