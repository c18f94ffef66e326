package rules

import "sort"

// Insertion priorities order edits that target the same position.
// Title-adjacent and top-of-file material sorts before body material.
const (
	prioContextTodo = iota // assembly :context: reminder, topmost
	prioTopConditional
	prioTopicID
	prioContentTypeMarker
	prioContentType
	prioBody = 100
)

type opKind uint8

const (
	opInsertBefore opKind = iota
	opInsertAfter
	opReplace
	opAppend
)

type editOp struct {
	kind  opKind
	index int // anchor into the original line slice
	prio  int
	seq   int // emission order, the final tie-breaker
	text  string
}

// EditList records insertions and replacements against the original line
// indices. Nothing is edited in place during the forward scan; Apply
// translates the recorded offsets onto a fresh copy, so inserted lines
// are never re-processed by the pass that produced them.
type EditList struct {
	ops []editOp
	seq int
}

func NewEditList() *EditList {
	return &EditList{}
}

func (e *EditList) add(kind opKind, index, prio int, text string) {
	e.ops = append(e.ops, editOp{kind: kind, index: index, prio: prio, seq: e.seq, text: text})
	e.seq++
}

// InsertBefore schedules text as a new line directly above index.
func (e *EditList) InsertBefore(index, prio int, text string) {
	e.add(opInsertBefore, index, prio, text)
}

// InsertAfter schedules text as a new line directly below index.
func (e *EditList) InsertAfter(index, prio int, text string) {
	e.add(opInsertAfter, index, prio, text)
}

// Replace schedules an in-place rewrite of the line at index.
func (e *EditList) Replace(index int, text string) {
	e.add(opReplace, index, prioBody, text)
}

// Append schedules text after the last line of the document.
func (e *EditList) Append(text string) {
	e.add(opAppend, 0, prioBody, text)
}

func (e *EditList) Len() int {
	return len(e.ops)
}

// Apply builds the rewritten line slice. The original is left untouched.
// The second result reports whether the output differs from the input.
func (e *EditList) Apply(lines []string) ([]string, bool) {
	if len(e.ops) == 0 {
		return lines, false
	}
	if len(lines) == 0 {
		// nothing to anchor to; every scheduled line lands in order
		ops := make([]editOp, len(e.ops))
		copy(ops, e.ops)
		sort.SliceStable(ops, func(i, j int) bool {
			if ops[i].prio != ops[j].prio {
				return ops[i].prio < ops[j].prio
			}
			return ops[i].seq < ops[j].seq
		})
		out := make([]string, 0, len(ops))
		for _, op := range ops {
			out = append(out, op.text)
		}
		return out, true
	}

	before := make(map[int][]editOp)
	after := make(map[int][]editOp)
	replace := make(map[int]string)
	var appends []editOp

	for _, op := range e.ops {
		switch op.kind {
		case opInsertBefore:
			before[op.index] = append(before[op.index], op)
		case opInsertAfter:
			after[op.index] = append(after[op.index], op)
		case opReplace:
			replace[op.index] = op.text
		case opAppend:
			appends = append(appends, op)
		}
	}
	for _, m := range []map[int][]editOp{before, after} {
		for _, ops := range m {
			sort.SliceStable(ops, func(i, j int) bool {
				if ops[i].prio != ops[j].prio {
					return ops[i].prio < ops[j].prio
				}
				return ops[i].seq < ops[j].seq
			})
		}
	}
	sort.SliceStable(appends, func(i, j int) bool { return appends[i].seq < appends[j].seq })

	out := make([]string, 0, len(lines)+len(e.ops))
	changed := false
	for i, line := range lines {
		for _, op := range before[i] {
			out = append(out, op.text)
			changed = true
		}
		if repl, ok := replace[i]; ok {
			out = append(out, repl)
			if repl != line {
				changed = true
			}
		} else {
			out = append(out, line)
		}
		for _, op := range after[i] {
			out = append(out, op.text)
			changed = true
		}
	}
	for _, op := range appends {
		out = append(out, op.text)
		changed = true
	}
	return out, changed
}
