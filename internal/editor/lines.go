package editor

import (
	"sort"
	"strings"

	"github.com/dshills/caret/internal/command"
	"github.com/dshills/caret/internal/engine/buffer"
	"github.com/dshills/caret/internal/engine/cursor"
)

// SelectedRows returns the rows the active selection covers, widened to
// whole folds.
func (e *Editor) SelectedRows() (first, last int) {
	return e.selectedRows(e.selection.Range())
}

func (e *Editor) selectedRows(r Range) (first, last int) {
	r = r.CollapseRows()
	return e.session.RowFoldStart(r.Start.Row), e.session.RowFoldEnd(r.End.Row)
}

// MoveLinesUp moves the selected rows up one row.
func (e *Editor) MoveLinesUp() { e.moveLines(-1, false) }

// MoveLinesDown moves the selected rows down one row.
func (e *Editor) MoveLinesDown() { e.moveLines(1, false) }

// CopyLinesUp duplicates the selected rows, keeping the selection on
// the upper copy.
func (e *Editor) CopyLinesUp() { e.moveLines(-1, true) }

// CopyLinesDown duplicates the selected rows, moving the selection to
// the lower copy.
func (e *Editor) CopyLinesDown() { e.moveLines(1, true) }

// moveLines shifts the rows under every range by dir, or duplicates them
// when copying. With several ranges, ranges whose rows touch are moved as
// one block so rows never pass each other.
func (e *Editor) moveLines(dir int, copyRows bool) {
	session := e.session
	if session == nil {
		return
	}
	moveDir := dir
	if copyRows {
		moveDir = 0
	}

	sel := e.selection
	if !e.InMultiSelectMode() || e.inVirtualSelectionMode {
		r := sel.ToOrientedRange()
		first, last := e.selectedRows(r.Range)
		moved := session.MoveLines(first, last, moveDir)
		if copyRows && dir == -1 {
			moved = 0
		}
		sel.FromOrientedRange(r.MoveBy(moved, 0))
		return
	}

	rl := sel.RangeList()
	ranges := rl.Ranges()
	rl.Detach()
	e.inVirtualSelectionMode = true
	defer func() {
		e.inVirtualSelectionMode = false
	}()

	diff, totalDiff := 0, 0
	for i := 0; i < len(ranges); i++ {
		rangeIndex := i
		ranges[i] = ranges[i].MoveBy(diff, 0)
		first, last := e.selectedRows(ranges[i].Range)
		for i+1 < len(ranges) {
			if totalDiff != 0 {
				ranges[i+1] = ranges[i+1].MoveBy(totalDiff, 0)
			}
			subFirst, subLast := e.selectedRows(ranges[i+1].Range)
			if copyRows && subFirst != last {
				break
			}
			if !copyRows && subFirst > last+1 {
				break
			}
			last = subLast
			i++
		}

		diff = session.MoveLines(first, last, moveDir)
		if copyRows && dir == -1 {
			rangeIndex = i + 1
		}
		for ; rangeIndex <= i; rangeIndex++ {
			ranges[rangeIndex] = ranges[rangeIndex].MoveBy(diff, 0)
		}
		if !copyRows {
			diff = 0
		}
		totalDiff += diff
	}

	rl.SetAll(ranges)
	sel.FromOrientedRange(ranges[0])
	rl.Attach(session.Doc())
}

// RemoveLines deletes the selected rows.
func (e *Editor) RemoveLines() {
	if e.session == nil {
		return
	}
	first, last := e.SelectedRows()
	e.session.RemoveFullLines(first, last)
	e.selection.ClearSelection()
}

// DuplicateSelection copies the selected text after itself, or the
// caret's row below it when nothing is selected.
func (e *Editor) DuplicateSelection() {
	session := e.session
	if session == nil {
		return
	}
	sel := e.selection
	r := sel.Range()
	if r.IsEmpty() {
		session.DuplicateLines(r.Start.Row, r.Start.Row)
		return
	}
	backwards := sel.IsBackwards()
	at := r.End
	if backwards {
		at = r.Start
	}
	end := session.Insert(at, session.TextRange(r))
	sel.SetRange(buffer.Range{Start: at, End: end}, backwards)
}

// SortLines sorts the selected rows case-insensitively.
func (e *Editor) SortLines() {
	session := e.session
	if session == nil {
		return
	}
	first, last := e.SelectedRows()
	lines := session.Doc().Lines(first, last)
	sort.SliceStable(lines, func(i, j int) bool {
		return strings.ToLower(lines[i]) < strings.ToLower(lines[j])
	})
	for row := first; row <= last; row++ {
		r := buffer.NewRange(row, 0, row, len(session.Line(row)))
		session.Replace(r, lines[row-first])
	}
}

// ForEachSelection runs cmd once per range of a multi-range selection,
// last range first, with the active selection standing in for each
// range in turn. byLines runs it once per group of ranges sharing a
// row. It reports whether any run returned true.
func (e *Editor) ForEachSelection(cmd *Command, args any, byLines bool) bool {
	if e.inVirtualSelectionMode || e.session == nil {
		return false
	}
	primary := e.selection
	rl := primary.RangeList()
	ranges := rl.Ranges()
	if len(ranges) == 0 {
		return cmd.Exec(e, args)
	}

	unmute := primary.Mute()
	tmp := cursor.NewSelection(e.session.Doc())
	e.inVirtualSelectionMode = true
	e.setActiveSelection(tmp)

	result := false
	for i := len(ranges) - 1; i >= 0; i-- {
		if byLines {
			for i > 0 && rl.At(i).Start.Row == rl.At(i-1).End.Row {
				i--
			}
		}
		tmp.FromOrientedRange(rl.At(i))
		if cmd.Exec(e, args) {
			result = true
		}
		rl.Set(i, tmp.ToOrientedRange())
	}

	tmp.Detach()
	e.setActiveSelection(primary)
	e.inVirtualSelectionMode = false
	unmute()

	primary.MergeOverlappingRanges()
	if primary.InMultiSelectMode() {
		primary.FromOrientedRange(rl.At(0))
	}
	return result
}

// setActiveSelection swaps the selection edits apply to.
func (e *Editor) setActiveSelection(sel *cursor.Selection) {
	e.mu.Lock()
	e.selection = sel
	e.mu.Unlock()
}

// runCommand executes cmd for every selected range as its
// MultiSelectAction asks.
func (e *Editor) runCommand(ev *CommandEvent) bool {
	cmd := ev.Command
	if !e.InMultiSelectMode() {
		return cmd.Exec(e, ev.Args)
	}
	switch cmd.MultiSelectAction {
	case command.MultiSelectForEach:
		return e.ForEachSelection(cmd, ev.Args, false)
	case command.MultiSelectForEachLine:
		return e.ForEachSelection(cmd, ev.Args, true)
	case command.MultiSelectSingle:
		e.ExitMultiSelectMode()
		return cmd.Exec(e, ev.Args)
	default:
		result := cmd.Exec(e, ev.Args)
		sel := e.session.Selection()
		sel.AddRange(sel.ToOrientedRange())
		sel.MergeOverlappingRanges()
		return result
	}
}

// ExitMultiSelectMode keeps only the primary range.
func (e *Editor) ExitMultiSelectMode() {
	if e.session == nil {
		return
	}
	sel := e.session.Selection()
	sel.ToSingleRange(sel.ToOrientedRange())
}

// AddRange adds r to the selection, entering multi-select mode.
func (e *Editor) AddRange(r cursor.OrientedRange) {
	if e.session == nil {
		return
	}
	e.session.Selection().AddRange(r)
}
