package editor

import (
	"github.com/dshills/caret/internal/command"
	"github.com/dshills/caret/internal/engine/cursor"
	"github.com/dshills/caret/internal/search"
)

// DefaultCommands returns the built-in command set. Each call returns
// fresh descriptors.
func DefaultCommands() []*Command {
	return []*Command{
		// Editing
		{
			Name:              "insertstring",
			Exec:              func(e *Editor, args any) bool { e.Insert(argString(args), false); return true },
			MultiSelectAction: command.MultiSelectForEach,
			ScrollIntoView:    command.ScrollCursor,
		},
		{
			Name:              "backspace",
			Exec:              func(e *Editor, _ any) bool { e.Remove(DirectionLeft); return true },
			MultiSelectAction: command.MultiSelectForEach,
			ScrollIntoView:    command.ScrollCursor,
		},
		{
			Name:              "del",
			Exec:              func(e *Editor, _ any) bool { e.Remove(DirectionRight); return true },
			MultiSelectAction: command.MultiSelectForEach,
			ScrollIntoView:    command.ScrollCursor,
		},
		editCommand("removewordleft", (*Editor).RemoveWordLeft),
		editCommand("removewordright", (*Editor).RemoveWordRight),
		editCommand("removetolinestart", (*Editor).RemoveToLineStart),
		editCommand("removetolineend", (*Editor).RemoveToLineEnd),
		forEachCommand("splitline", (*Editor).SplitLine),
		forEachCommand("transposeletters", (*Editor).TransposeLetters),
		forEachCommand("touppercase", (*Editor).ToUpperCase),
		forEachCommand("tolowercase", (*Editor).ToLowerCase),
		forEachCommand("duplicateSelection", (*Editor).DuplicateSelection),
		forEachCommand("indent", (*Editor).Indent),
		forEachCommand("blockindent", (*Editor).BlockIndent),
		forEachCommand("blockoutdent", (*Editor).BlockOutdent),
		forEachLineCommand("removeline", (*Editor).RemoveLines),
		forEachLineCommand("togglecomment", (*Editor).ToggleCommentLines),
		forEachLineCommand("sortlines", (*Editor).SortLines),
		{
			Name: "overwrite",
			Exec: func(e *Editor, _ any) bool {
				if e.session == nil {
					return false
				}
				e.session.ToggleOverwrite()
				return true
			},
			ReadOnly: true,
		},

		// Line moves
		lineMoveCommand("movelinesup", (*Editor).MoveLinesUp),
		lineMoveCommand("movelinesdown", (*Editor).MoveLinesDown),
		lineMoveCommand("copylinesup", (*Editor).CopyLinesUp),
		lineMoveCommand("copylinesdown", (*Editor).CopyLinesDown),

		// History
		{
			Name: "undo",
			Exec: func(e *Editor, _ any) bool { return e.Undo() },
		},
		{
			Name: "redo",
			Exec: func(e *Editor, _ any) bool { return e.Redo() },
		},

		// Navigation
		navCommand("gotoleft", func(e *Editor, n int) { e.NavigateLeft(n) }),
		navCommand("gotoright", func(e *Editor, n int) { e.NavigateRight(n) }),
		navCommand("golineup", func(e *Editor, n int) { e.NavigateUp(n) }),
		navCommand("golinedown", func(e *Editor, n int) { e.NavigateDown(n) }),
		navCommand("gotolinestart", func(e *Editor, _ int) { e.NavigateLineStart() }),
		navCommand("gotolineend", func(e *Editor, _ int) { e.NavigateLineEnd() }),
		navCommand("gotostart", func(e *Editor, _ int) { e.NavigateFileStart() }),
		navCommand("gotoend", func(e *Editor, _ int) { e.NavigateFileEnd() }),
		navCommand("gotowordleft", func(e *Editor, _ int) { e.NavigateWordLeft() }),
		navCommand("gotowordright", func(e *Editor, _ int) { e.NavigateWordRight() }),
		selectCommand("selectleft", (*cursor.Selection).SelectLeft),
		selectCommand("selectright", (*cursor.Selection).SelectRight),
		selectCommand("selectup", (*cursor.Selection).SelectUp),
		selectCommand("selectdown", (*cursor.Selection).SelectDown),
		selectCommand("selecttolinestart", (*cursor.Selection).SelectLineStart),
		selectCommand("selecttolineend", (*cursor.Selection).SelectLineEnd),
		selectCommand("selectwordleft", (*cursor.Selection).SelectWordLeft),
		selectCommand("selectwordright", (*cursor.Selection).SelectWordRight),
		{
			Name: "gotoline",
			Exec: func(e *Editor, args any) bool {
				line, ok := args.(int)
				if !ok {
					return false
				}
				e.GotoLine(line, 0)
				return true
			},
			ReadOnly: true,
		},
		{
			Name:     "selectall",
			Exec:     func(e *Editor, _ any) bool { e.SelectAll(); return true },
			ReadOnly: true,
		},

		// Brackets
		matchCommand("jumptomatching", false, false),
		matchCommand("selecttomatching", true, false),
		matchCommand("expandtomatching", true, true),

		// Search. A miss is a no-op for the operation, not a veto.
		{
			Name: "find",
			Exec: func(e *Editor, args any) bool {
				e.Find(argString(args), nil)
				return true
			},
			ReadOnly:       true,
			ScrollIntoView: command.ScrollCenterAnimate,
		},
		{
			Name: "findnext",
			Exec: func(e *Editor, _ any) bool {
				e.FindNext()
				return true
			},
			ReadOnly:          true,
			MultiSelectAction: command.MultiSelectForEach,
			ScrollIntoView:    command.ScrollCenter,
		},
		{
			Name: "findprevious",
			Exec: func(e *Editor, _ any) bool {
				e.FindPrevious()
				return true
			},
			ReadOnly:          true,
			MultiSelectAction: command.MultiSelectForEach,
			ScrollIntoView:    command.ScrollCenter,
		},
		{
			Name:              "findall",
			Exec:              func(e *Editor, args any) bool { return e.FindAll(argString(args), nil) > 0 },
			ReadOnly:          true,
			MultiSelectAction: command.MultiSelectSingle,
		},
		{
			Name: "replace",
			Exec: func(e *Editor, args any) bool {
				repl, opts := replaceArgs(args)
				return e.Replace(repl, opts) > 0
			},
			MultiSelectAction: command.MultiSelectSingle,
		},
		{
			Name: "replaceall",
			Exec: func(e *Editor, args any) bool {
				repl, opts := replaceArgs(args)
				return e.ReplaceAll(repl, opts) > 0
			},
			MultiSelectAction: command.MultiSelectSingle,
		},

		// Clipboard
		{
			Name:              "cut",
			Exec:              func(e *Editor, _ any) bool { e.cut(); return true },
			MultiSelectAction: command.MultiSelectForEach,
			ScrollIntoView:    command.ScrollCursor,
		},
		{
			Name:           "paste",
			Exec:           func(e *Editor, args any) bool { e.handlePaste(argString(args)); return true },
			ScrollIntoView: command.ScrollCursor,
		},
		{
			Name:     "copy",
			Exec:     func(e *Editor, _ any) bool { e.GetCopyText(); return true },
			ReadOnly: true,
		},
	}
}

// ReplaceArgs is the argument of the replace commands.
type ReplaceArgs struct {
	Replacement string
	Options     *search.Options
}

func replaceArgs(args any) (string, *search.Options) {
	switch a := args.(type) {
	case ReplaceArgs:
		return a.Replacement, a.Options
	case *ReplaceArgs:
		if a != nil {
			return a.Replacement, a.Options
		}
	case string:
		return a, nil
	}
	return "", nil
}

func argString(args any) string {
	s, _ := args.(string)
	return s
}

func argCount(args any) int {
	if n, ok := args.(int); ok && n > 0 {
		return n
	}
	return 1
}

func editCommand(name string, fn func(*Editor)) *Command {
	return &Command{
		Name:              name,
		Exec:              func(e *Editor, _ any) bool { fn(e); return true },
		MultiSelectAction: command.MultiSelectForEach,
		ScrollIntoView:    command.ScrollCursor,
	}
}

func forEachCommand(name string, fn func(*Editor)) *Command {
	return &Command{
		Name:              name,
		Exec:              func(e *Editor, _ any) bool { fn(e); return true },
		MultiSelectAction: command.MultiSelectForEach,
	}
}

func forEachLineCommand(name string, fn func(*Editor)) *Command {
	return &Command{
		Name:              name,
		Exec:              func(e *Editor, _ any) bool { fn(e); return true },
		MultiSelectAction: command.MultiSelectForEachLine,
	}
}

// lineMoveCommand handles every range itself, so it runs once.
func lineMoveCommand(name string, fn func(*Editor)) *Command {
	return &Command{
		Name:              name,
		Exec:              func(e *Editor, _ any) bool { fn(e); return true },
		MultiSelectAction: command.MultiSelectNone,
		ScrollIntoView:    command.ScrollCursor,
	}
}

func navCommand(name string, fn func(*Editor, int)) *Command {
	return &Command{
		Name:              name,
		Exec:              func(e *Editor, args any) bool { fn(e, argCount(args)); return true },
		ReadOnly:          true,
		MultiSelectAction: command.MultiSelectForEach,
		ScrollIntoView:    command.ScrollCursor,
	}
}

func selectCommand(name string, fn func(*cursor.Selection)) *Command {
	return &Command{
		Name: name,
		Exec: func(e *Editor, args any) bool {
			if e.session == nil {
				return false
			}
			for range argCount(args) {
				fn(e.selection)
			}
			return true
		},
		ReadOnly:          true,
		MultiSelectAction: command.MultiSelectForEach,
		ScrollIntoView:    command.ScrollCursor,
	}
}

func matchCommand(name string, selectMode, expand bool) *Command {
	return &Command{
		Name:              name,
		Exec:              func(e *Editor, _ any) bool { e.JumpToMatching(selectMode, expand); return true },
		ReadOnly:          true,
		MultiSelectAction: command.MultiSelectForEach,
		ScrollIntoView:    command.ScrollAnimate,
	}
}
