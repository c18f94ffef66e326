package adoc

// FrameKind tags one entry of the block context stack.
type FrameKind uint8

const (
	FrameCode FrameKind = iota
	FrameAdmonition
	FrameSteps
	FrameSection
)

func (k FrameKind) String() string {
	switch k {
	case FrameCode:
		return "code block"
	case FrameAdmonition:
		return "admonition block"
	case FrameSteps:
		return "procedure steps"
	case FrameSection:
		return "section"
	}
	return "unknown"
}

// Frame is one open nesting context. A frame is pushed only on its
// recognised open delimiter and popped only on the matching close
// delimiter: a dash fence never closes a dot fence.
type Frame struct {
	Kind     FrameKind
	Fence    FenceFamily // FrameCode only
	Depth    int         // FrameSection only
	OpenLine int         // 0-based line that opened the frame
}

// Context is the per-line snapshot of the tracker state, captured before
// the rules look at the line.
type Context struct {
	// Suppressed is true whenever a code block frame is on top of the
	// stack, including on the fence lines themselves. No structural rule
	// fires on a suppressed line.
	Suppressed bool
	// InAdmonition is true inside an admonition block, where deeper
	// section titles are legal.
	InAdmonition bool
	// InSteps is true while a procedure step list is open.
	InSteps bool
}

// TrackResult is the output of one tracking fold over a document.
type TrackResult struct {
	// Contexts holds one snapshot per input line.
	Contexts []Context
	// Unterminated lists frames still open at end of input, a structural
	// anomaly reported as a diagnostic, never a fatal error.
	Unterminated []Frame
	// StepsEnd is the 0-based line of the last procedure step, or -1 if
	// no step list was tracked.
	StepsEnd int
}

// Track folds over classified lines and records the block context each
// line sits in. It is the single stateful component of the scan.
func Track(lines []Line) TrackResult {
	res := TrackResult{
		Contexts: make([]Context, len(lines)),
		StepsEnd: -1,
	}
	var stack []Frame

	top := func() *Frame {
		if len(stack) == 0 {
			return nil
		}
		return &stack[len(stack)-1]
	}
	inCode := func() bool {
		t := top()
		return t != nil && t.Kind == FrameCode
	}
	has := func(kind FrameKind) bool {
		for i := range stack {
			if stack[i].Kind == kind {
				return true
			}
		}
		return false
	}
	popSteps := func(at int) {
		for len(stack) > 0 && stack[len(stack)-1].Kind == FrameSteps {
			stack = stack[:len(stack)-1]
			if at > 0 {
				res.StepsEnd = lastStepBefore(lines, at)
			}
		}
	}

	for i := range lines {
		ln := &lines[i]

		// The snapshot reflects the state the line is evaluated in; fence
		// lines count as suppressed so rules skip them like the content.
		res.Contexts[i] = Context{
			Suppressed:   inCode() || (!inCode() && ln.Kind == LineCodeFence),
			InAdmonition: has(FrameAdmonition),
			InSteps:      has(FrameSteps),
		}

		switch ln.Kind {
		case LineCodeFence:
			if t := top(); t != nil && t.Kind == FrameCode {
				if t.Fence == ln.Fence {
					stack = stack[:len(stack)-1]
				}
				// A mismatched fence inside a code block is literal
				// content of that block, not a close delimiter.
				continue
			}
			stack = append(stack, Frame{Kind: FrameCode, Fence: ln.Fence, OpenLine: i})

		case LineAdmonition:
			if inCode() {
				continue
			}
			if t := top(); t != nil && t.Kind == FrameAdmonition {
				stack = stack[:len(stack)-1]
				continue
			}
			stack = append(stack, Frame{Kind: FrameAdmonition, OpenLine: i})

		case LineSectionTitle:
			if inCode() {
				continue
			}
			popSteps(i)
			for len(stack) > 0 && stack[len(stack)-1].Kind == FrameSection &&
				stack[len(stack)-1].Depth >= ln.Depth {
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, Frame{Kind: FrameSection, Depth: ln.Depth, OpenLine: i})

		case LineBlockTitle:
			if inCode() {
				continue
			}
			popSteps(i)
			if ln.BlockTitle == ".Procedure" || procedureTitle(ln.BlockTitle) {
				if followedByListItem(lines, i) {
					stack = append(stack, Frame{Kind: FrameSteps, OpenLine: i})
				}
			}

		case LineBlank, LineComment, LineListItem, LineContinuation:
			// these keep an open step list alive

		case LineBlockAttr:
			// attribute lines attach to the block that follows them

		default:
			if inCode() {
				continue
			}
			// a paragraph after a lone "+" is list continuation content
			if i > 0 && lines[i-1].Kind == LineContinuation {
				continue
			}
			popSteps(i)
		}
	}

	// Frames still open at end of input. Sections close implicitly and a
	// step list ending at EOF is well formed; only delimiter-bounded
	// frames are anomalies.
	for _, fr := range stack {
		switch fr.Kind {
		case FrameCode, FrameAdmonition:
			res.Unterminated = append(res.Unterminated, fr)
		case FrameSteps:
			res.StepsEnd = lastStepBefore(lines, len(lines))
		}
	}

	return res
}

// procedureTitle reports a ".Procedure" label, with or without trailing
// words; the embellishment itself is flagged by the procedure rule set.
func procedureTitle(title string) bool {
	return title == ".Procedure" || len(title) > len(".Procedure") &&
		title[:len(".Procedure")] == ".Procedure" && title[len(".Procedure")] == ' '
}

// followedByListItem reports whether the next non-blank, non-comment line
// after index i is a list item.
func followedByListItem(lines []Line, i int) bool {
	for j := i + 1; j < len(lines); j++ {
		switch lines[j].Kind {
		case LineBlank, LineComment:
			continue
		case LineListItem:
			return true
		default:
			return false
		}
	}
	return false
}

// lastStepBefore walks backwards from a frame-closing line to the last
// line that still belongs to the step list.
func lastStepBefore(lines []Line, end int) int {
	for j := end - 1; j >= 0; j-- {
		switch lines[j].Kind {
		case LineBlank, LineComment:
			continue
		default:
			return j
		}
	}
	return -1
}
