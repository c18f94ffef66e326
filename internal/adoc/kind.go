package adoc

import (
	"strings"
)

// Kind is the document's content type. It is resolved once per document,
// before the rules run, and never changes afterwards.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindAssembly
	KindConcept
	KindReference
	KindProcedure
)

// AttrName is the attribute that declares a document's content type.
const AttrName = "_mod-docs-content-type"

// String returns the attribute value form (the spelling used inside
// documents), e.g. "PROCEDURE".
func (k Kind) String() string {
	switch k {
	case KindAssembly:
		return "ASSEMBLY"
	case KindConcept:
		return "CONCEPT"
	case KindReference:
		return "REFERENCE"
	case KindProcedure:
		return "PROCEDURE"
	}
	return "UNKNOWN"
}

// ParseKind maps an attribute value to a Kind. Unrecognised values,
// including the "TBD" placeholder, resolve to KindUnknown.
func ParseKind(value string) Kind {
	switch strings.TrimSpace(value) {
	case "ASSEMBLY":
		return KindAssembly
	case "CONCEPT":
		return KindConcept
	case "REFERENCE":
		return KindReference
	case "PROCEDURE":
		return KindProcedure
	}
	return KindUnknown
}

// filename prefixes in lookup order; both "_" and "-" separators count.
var kindPrefixes = []struct {
	prefix string
	kind   Kind
}{
	{"proc", KindProcedure},
	{"con", KindConcept},
	{"ref", KindReference},
	{"assembly", KindAssembly},
}

// KindFromFilename infers the kind from the file naming convention
// ("proc_", "con-", ...). Returns KindUnknown when no prefix matches.
func KindFromFilename(name string) Kind {
	for _, p := range kindPrefixes {
		if strings.HasPrefix(name, p.prefix+"_") || strings.HasPrefix(name, p.prefix+"-") {
			return p.kind
		}
	}
	return KindUnknown
}

// legacyAttrNames are older spellings of the content-type attribute that
// still occur in the wild and count as declarations.
var legacyAttrNames = map[string]bool{
	"_content-type": true,
	"_module-type":  true,
}

// ContentTypeAttr finds the first content-type attribute declaration in the
// classified lines. Legacy attribute spellings also count. Lines inside a
// code block (per ctxs) are ignored; ctxs may be nil.
func ContentTypeAttr(lines []Line, ctxs []Context) (*Line, Kind) {
	for i := range lines {
		ln := &lines[i]
		if ctxs != nil && ctxs[i].Suppressed {
			continue
		}
		if ln.Kind != LineAttribute {
			continue
		}
		if ln.AttrName == AttrName || legacyAttrNames[ln.AttrName] {
			return ln, ParseKind(ln.AttrValue)
		}
	}
	return nil, KindUnknown
}

// Resolution records how a document's kind was determined.
type Resolution struct {
	Kind Kind
	// Declared is the kind the caller passed in, if any.
	Declared bool
	// FromFilename is true when the filename prefix decided.
	FromFilename bool
	// Conflict is set when the filename prefix and an existing attribute
	// declaration disagree; the attribute line is recorded for reporting.
	Conflict     bool
	ConflictLine int
}

// ResolveKind determines the document kind exactly once. Priority:
// caller-declared kind, then filename prefix, then an existing
// content-type attribute, then Unknown. A declaration that contradicts
// the filename prefix is a structural anomaly, not an override.
func ResolveKind(filename string, lines []Line, ctxs []Context, declared Kind) Resolution {
	attrLine, attrKind := ContentTypeAttr(lines, ctxs)

	if declared != KindUnknown {
		return Resolution{Kind: declared, Declared: true}
	}

	if fromName := KindFromFilename(filename); fromName != KindUnknown {
		res := Resolution{Kind: fromName, FromFilename: true}
		if attrLine != nil && attrKind != KindUnknown && attrKind != fromName {
			res.Conflict = true
			res.ConflictLine = attrLine.Index
		}
		return res
	}

	if attrKind != KindUnknown {
		return Resolution{Kind: attrKind}
	}
	return Resolution{Kind: KindUnknown}
}
