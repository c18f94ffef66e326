package diag

import (
	"fmt"
	"sort"
)

// Code identifies a structural rule. The numeric space is partitioned per
// rule family; Code.ID gives the stable string form used in remediation
// markers and machine output.
type Code uint16

const (
	UnknownCode Code = 0

	// Structural anomalies (not tied to a single rule family).
	StrUnterminatedBlock Code = 1
	StrKindConflict      Code = 2
	StrBadAttribute      Code = 3

	// Universal rules, active for every document kind.
	UniContentType     Code = 100
	UniTopicID         Code = 101
	UniDuplicateTitle  Code = 102
	UniBlankAfterTitle Code = 103
	UniShortIntro      Code = 104
	UniImageAltMissing Code = 105
	UniImageAltQuoting Code = 106
	UniResourcesRole   Code = 107

	// Assembly rules.
	AsmTopConditional    Code = 200
	AsmBottomConditional Code = 201
	AsmContextAttr       Code = 202
	AsmIncludeSpacing    Code = 203
	AsmIllegalHeading    Code = 204
	AsmBlockTitle        Code = 205

	// Concept/reference rules.
	CnrInstructional  Code = 300
	CnrProcedureBlock Code = 301
	CnrNumberedStep   Code = 302
	CnrIllegalHeading Code = 303
	CnrBlockTitle     Code = 304

	// Procedure rules.
	PrcMissingProcedure  Code = 400
	PrcMultipleProcedure Code = 401
	PrcEmbellishedTitle  Code = 402
	PrcMissingList       Code = 403
	PrcBadTrailingTitle  Code = 404
	PrcTrailingContent   Code = 405
)

// ID returns the stable string identifier, e.g. "UNI103".
func (c Code) ID() string {
	switch {
	case c == UnknownCode:
		return "UNK000"
	case c < 100:
		return fmt.Sprintf("STR%03d", uint16(c))
	case c < 200:
		return fmt.Sprintf("UNI%03d", uint16(c))
	case c < 300:
		return fmt.Sprintf("ASM%03d", uint16(c))
	case c < 400:
		return fmt.Sprintf("CNR%03d", uint16(c))
	case c < 500:
		return fmt.Sprintf("PRC%03d", uint16(c))
	}
	return fmt.Sprintf("UNK%03d", uint16(c))
}

func (c Code) String() string {
	return c.ID()
}

// Meta describes a rule code for catalogue listings.
type Meta struct {
	Code    Code
	Summary string
}

var registry = map[Code]Meta{
	StrUnterminatedBlock: {StrUnterminatedBlock, "block delimiter opened but never closed"},
	StrKindConflict:      {StrKindConflict, "declared content type conflicts with filename prefix"},
	StrBadAttribute:      {StrBadAttribute, "malformed attribute declaration line"},

	UniContentType:     {UniContentType, "missing :_mod-docs-content-type: attribute"},
	UniTopicID:         {UniTopicID, "missing [id=\"..._{context}\"] declaration"},
	UniDuplicateTitle:  {UniDuplicateTitle, "more than one level 0 \"= \" title"},
	UniBlankAfterTitle: {UniBlankAfterTitle, "missing blank line after the level 0 title"},
	UniShortIntro:      {UniShortIntro, "missing short introduction after the title"},
	UniImageAltMissing: {UniImageAltMissing, "image without alt text"},
	UniImageAltQuoting: {UniImageAltQuoting, "image alt text not wrapped in quotation marks"},
	UniResourcesRole:   {UniResourcesRole, "Additional resources section without its role marker"},

	AsmTopConditional:    {AsmTopConditional, "missing top parent-context conditional"},
	AsmBottomConditional: {AsmBottomConditional, "missing bottom parent-context conditional pair"},
	AsmContextAttr:       {AsmContextAttr, "missing :context: attribute"},
	AsmIncludeSpacing:    {AsmIncludeSpacing, "adjacent include directives without a blank line"},
	AsmIllegalHeading:    {AsmIllegalHeading, "level 2 or deeper section title in an assembly"},
	AsmBlockTitle:        {AsmBlockTitle, "block title where a heading is expected"},

	CnrInstructional:  {CnrInstructional, "instructional content in a concept or reference module"},
	CnrProcedureBlock: {CnrProcedureBlock, ".Procedure or .Prerequisites block title in a concept or reference module"},
	CnrNumberedStep:   {CnrNumberedStep, "numbered step starting with an imperative verb"},
	CnrIllegalHeading: {CnrIllegalHeading, "level 2 or deeper section title in a concept or reference module"},
	CnrBlockTitle:     {CnrBlockTitle, "unexpected block title in a concept or reference module"},

	PrcMissingProcedure:  {PrcMissingProcedure, "no .Procedure block title in a procedure module"},
	PrcMultipleProcedure: {PrcMultipleProcedure, "more than one .Procedure block title"},
	PrcEmbellishedTitle:  {PrcEmbellishedTitle, ".Procedure block title with extra words"},
	PrcMissingList:       {PrcMissingList, ".Procedure block title not followed by a list"},
	PrcBadTrailingTitle:  {PrcBadTrailingTitle, "block title not allowed after the procedure steps"},
	PrcTrailingContent:   {PrcTrailingContent, "out of place content after the procedure's trailing sections"},
}

// Summary returns the catalogue summary for a code, or "" if unregistered.
func (c Code) Summary() string {
	return registry[c].Summary
}

// Catalogue returns all registered rule codes in ascending order.
func Catalogue() []Meta {
	out := make([]Meta, 0, len(registry))
	for _, m := range registry {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// ParseID resolves a string identifier like "UNI103" back to its Code.
func ParseID(id string) (Code, bool) {
	for c := range registry {
		if c.ID() == id {
			return c, true
		}
	}
	return UnknownCode, false
}
