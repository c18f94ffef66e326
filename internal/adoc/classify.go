package adoc

import (
	"regexp"
	"strings"
)

// LineKind tags the structural role of one raw line.
type LineKind uint8

const (
	// LineText is the fall-through for everything the classifier does not
	// recognise. Classification never fails.
	LineText LineKind = iota
	LineBlank
	LineTitle0       // "= Title", a single leading marker
	LineSectionTitle // "== Title" and deeper; Depth = marker count
	LineBlockTitle   // ".Label", a period followed by non-space text
	LineAttribute    // ":name: value"
	LineID           // [id="..."]
	LineBlockAttr    // any other [...] attribute line
	LineInclude      // include::target[...]
	LineImage        // image::target[alt]
	LineCodeFence    // ---- / .... (four or more of one family)
	LineAdmonition   // ==== exactly
	LineTableFence   // |=== and longer
	LineConditional  // ifdef::/ifndef::/endif::
	LineListItem     // *, -, numbered, or dotted list markers
	LineContinuation // a lone "+"
	LineComment      // // ...
)

// FenceFamily distinguishes the two recognised listing fence characters.
// A dash fence never closes a dot fence.
type FenceFamily uint8

const (
	FenceNone FenceFamily = iota
	FenceDash
	FenceDot
)

// Line is one classified input line. Immutable once produced.
type Line struct {
	Index int // 0-based position in the document
	Text  string
	Kind  LineKind

	// Section title depth (number of '=' markers), set for LineSectionTitle.
	Depth int
	// Block title label including the leading '.', set for LineBlockTitle.
	BlockTitle string
	// Attribute name and raw value, set for LineAttribute.
	AttrName  string
	AttrValue string
	// Image fields, set for LineImage.
	ImageTarget string
	ImageAlt    string
	HasAlt      bool
	AltQuoted   bool
	// Fence family, set for LineCodeFence.
	Fence FenceFamily
	// Ordered reports a numbered or dotted marker, set for LineListItem.
	Ordered bool
}

var (
	attributeRe   = regexp.MustCompile(`^:!?([A-Za-z_][A-Za-z0-9_-]*):(.*)$`)
	idRe          = regexp.MustCompile(`^\[id="([^"]*)"\]$`)
	imageRe       = regexp.MustCompile(`^image::([^\[]+)\[([^\]]*)\]\s*$`)
	orderedListRe = regexp.MustCompile(`^\s*\d+\.\s+\S`)
	dottedListRe  = regexp.MustCompile(`^\s*\.+\s+\S`)
	unorderedRe   = regexp.MustCompile(`^\s*[*+-]+\s+\S`)
)

// Classify maps one raw line to a Line. It is a pure function: no state,
// no failure mode. Unrecognised syntax falls through to LineText.
func Classify(index int, text string) Line {
	ln := Line{Index: index, Text: text, Kind: LineText}
	stripped := strings.TrimSpace(text)

	switch {
	case stripped == "":
		ln.Kind = LineBlank

	case strings.HasPrefix(stripped, "//"):
		ln.Kind = LineComment

	case isFence(stripped, '-'):
		ln.Kind = LineCodeFence
		ln.Fence = FenceDash

	case isFence(stripped, '.'):
		ln.Kind = LineCodeFence
		ln.Fence = FenceDot

	case stripped == "====":
		ln.Kind = LineAdmonition

	case strings.HasPrefix(stripped, "|==="):
		ln.Kind = LineTableFence

	case strings.HasPrefix(stripped, "ifdef::"),
		strings.HasPrefix(stripped, "ifndef::"),
		strings.HasPrefix(stripped, "endif::"):
		ln.Kind = LineConditional

	case strings.HasPrefix(stripped, "include::"):
		ln.Kind = LineInclude

	case strings.HasPrefix(stripped, "image::"):
		classifyImage(&ln, stripped)

	case strings.HasPrefix(text, "= "):
		ln.Kind = LineTitle0

	case strings.HasPrefix(text, "=="):
		classifySectionTitle(&ln, text)

	case strings.HasPrefix(stripped, ":"):
		classifyAttribute(&ln, stripped)

	case strings.HasPrefix(stripped, "[") && strings.HasSuffix(stripped, "]"):
		if m := idRe.FindStringSubmatch(stripped); m != nil {
			ln.Kind = LineID
			ln.AttrValue = m[1]
		} else {
			ln.Kind = LineBlockAttr
		}

	case stripped == "+":
		ln.Kind = LineContinuation

	case orderedListRe.MatchString(text), unorderedRe.MatchString(text), dottedListRe.MatchString(text):
		ln.Kind = LineListItem
		ln.Ordered = !unorderedRe.MatchString(text)

	case strings.HasPrefix(stripped, ".") && len(stripped) > 1 && !isSpaceByte(stripped[1]):
		ln.Kind = LineBlockTitle
		ln.BlockTitle = stripped
	}

	return ln
}

// ClassifyAll classifies every line of a document in order.
func ClassifyAll(lines []string) []Line {
	out := make([]Line, len(lines))
	for i, text := range lines {
		out[i] = Classify(i, text)
	}
	return out
}

// isFence reports a line consisting solely of four or more repeats of ch.
func isFence(s string, ch byte) bool {
	if len(s) < 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != ch {
			return false
		}
	}
	return true
}

func classifySectionTitle(ln *Line, text string) {
	depth := 0
	for depth < len(text) && text[depth] == '=' {
		depth++
	}
	// A run of '=' with no title text is not a section title; '===='
	// alone is handled earlier as an admonition delimiter.
	rest := text[depth:]
	if !strings.HasPrefix(rest, " ") || strings.TrimSpace(rest) == "" {
		return
	}
	ln.Kind = LineSectionTitle
	ln.Depth = depth
}

func classifyAttribute(ln *Line, stripped string) {
	m := attributeRe.FindStringSubmatch(stripped)
	if m == nil {
		// Looks like an attribute but does not parse; rules report it as
		// a malformed attribute line. Classification itself never fails.
		return
	}
	ln.Kind = LineAttribute
	ln.AttrName = m[1]
	ln.AttrValue = strings.TrimSpace(m[2])
}

func classifyImage(ln *Line, stripped string) {
	m := imageRe.FindStringSubmatch(stripped)
	if m == nil {
		// image:: with no bracket pair stays plain text
		return
	}
	ln.Kind = LineImage
	ln.ImageTarget = m[1]
	alt := m[2]
	ln.ImageAlt = alt
	ln.HasAlt = strings.TrimSpace(alt) != ""
	ln.AltQuoted = len(alt) >= 2 && alt[0] == '"' && alt[len(alt)-1] == '"'
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t'
}
