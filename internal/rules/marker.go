package rules

import (
	"fmt"
	"strings"

	"github.com/rolfedh/adocfix/internal/adoc"
	"github.com/rolfedh/adocfix/internal/diag"
)

// Remediation markers are generated comments prompting manual author
// action. The format is stable and versioned by rule code: detection
// matches on the prefix plus the code, never on the message wording, so
// rewording a message does not break repeat-run recognition.
const markerPrefix = "// TODO adocfix("

// Marker renders the remediation comment for a rule code.
func Marker(code diag.Code, msg string) string {
	return fmt.Sprintf("%s%s): %s", markerPrefix, code.ID(), msg)
}

// MarkerCode extracts the rule code from a marker line.
// ok is false for ordinary comments and non-marker lines.
func MarkerCode(text string) (diag.Code, bool) {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, markerPrefix) {
		return diag.UnknownCode, false
	}
	rest := s[len(markerPrefix):]
	end := strings.IndexByte(rest, ')')
	if end < 0 {
		return diag.UnknownCode, false
	}
	return diag.ParseID(rest[:end])
}

// IsMarker reports whether text is a generated remediation comment.
func IsMarker(text string) bool {
	_, ok := MarkerCode(text)
	return ok
}

// hasMarkerAbove walks the contiguous run of comment lines directly above
// index i and reports whether one of them is a marker for code. This is
// the idempotence check for rules that flag a line from above.
func hasMarkerAbove(lines []adoc.Line, i int, code diag.Code) bool {
	for j := i - 1; j >= 0; j-- {
		if lines[j].Kind != adoc.LineComment {
			return false
		}
		if c, ok := MarkerCode(lines[j].Text); ok && c == code {
			return true
		}
	}
	return false
}

// hasMarkerBelow is the mirror check for rules that flag a line from
// below (e.g. the image alt-text prompt).
func hasMarkerBelow(lines []adoc.Line, i int, code diag.Code) bool {
	for j := i + 1; j < len(lines); j++ {
		if lines[j].Kind != adoc.LineComment {
			return false
		}
		if c, ok := MarkerCode(lines[j].Text); ok && c == code {
			return true
		}
	}
	return false
}

// hasMarkerAnywhere reports whether any line of the document carries a
// marker for code. Used by rules whose marker is anchored to the top of
// the file rather than to the offending line.
func hasMarkerAnywhere(lines []adoc.Line, code diag.Code) bool {
	for i := range lines {
		if lines[i].Kind != adoc.LineComment {
			continue
		}
		if c, ok := MarkerCode(lines[i].Text); ok && c == code {
			return true
		}
	}
	return false
}
