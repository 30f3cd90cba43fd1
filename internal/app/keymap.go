package app

import (
	"fmt"

	"github.com/dshills/caret/internal/renderer/backend"
)

// action is what a key does.
type action func(a *Application) error

// keyStroke identifies a non-rune key with its modifiers.
type keyStroke struct {
	key backend.Key
	mod backend.ModMask
}

// run executes an editor command without arguments.
func run(name string) action {
	return runWith(name, nil)
}

func runWith(name string, args any) action {
	return func(a *Application) error {
		_, err := a.editor.ExecCommand(name, args)
		return err
	}
}

var keymap = map[keyStroke]action{
	// Navigation
	{backend.KeyLeft, backend.ModNone}:  run("gotoleft"),
	{backend.KeyRight, backend.ModNone}: run("gotoright"),
	{backend.KeyUp, backend.ModNone}:    run("golineup"),
	{backend.KeyDown, backend.ModNone}:  run("golinedown"),
	{backend.KeyHome, backend.ModNone}:  run("gotolinestart"),
	{backend.KeyEnd, backend.ModNone}:   run("gotolineend"),
	{backend.KeyHome, backend.ModCtrl}:  run("gotostart"),
	{backend.KeyEnd, backend.ModCtrl}:   run("gotoend"),
	{backend.KeyPageUp, backend.ModNone}: func(a *Application) error {
		return runWith("golineup", max(a.viewport.Height()-2, 1))(a)
	},
	{backend.KeyPageDown, backend.ModNone}: func(a *Application) error {
		return runWith("golinedown", max(a.viewport.Height()-2, 1))(a)
	},

	// Selection
	{backend.KeyLeft, backend.ModShift}:                    run("selectleft"),
	{backend.KeyRight, backend.ModShift}:                   run("selectright"),
	{backend.KeyUp, backend.ModShift}:                      run("selectup"),
	{backend.KeyDown, backend.ModShift}:                    run("selectdown"),
	{backend.KeyHome, backend.ModShift}:                    run("selecttolinestart"),
	{backend.KeyEnd, backend.ModShift}:                     run("selecttolineend"),
	{backend.KeyLeft, backend.ModCtrl | backend.ModShift}:  run("selectwordleft"),
	{backend.KeyRight, backend.ModCtrl | backend.ModShift}: run("selectwordright"),
	{backend.KeyCtrlA, backend.ModCtrl}:                    run("selectall"),

	// Editing
	{backend.KeyEnter, backend.ModNone}:                  runWith("insertstring", "\n"),
	{backend.KeyTab, backend.ModNone}:                    run("indent"),
	{backend.KeyBackspace, backend.ModNone}:              run("backspace"),
	{backend.KeyDelete, backend.ModNone}:                 run("del"),
	{backend.KeyBackspace, backend.ModCtrl}:              run("removewordleft"),
	{backend.KeyDelete, backend.ModCtrl}:                 run("removewordright"),
	{backend.KeyInsert, backend.ModNone}:                 run("overwrite"),
	{backend.KeyUp, backend.ModAlt}:                      run("movelinesup"),
	{backend.KeyDown, backend.ModAlt}:                    run("movelinesdown"),
	{backend.KeyUp, backend.ModAlt | backend.ModShift}:   run("copylinesup"),
	{backend.KeyDown, backend.ModAlt | backend.ModShift}: run("copylinesdown"),
	{backend.KeyCtrlZ, backend.ModCtrl}:                  run("undo"),
	{backend.KeyCtrlY, backend.ModCtrl}:                  run("redo"),

	// Clipboard
	{backend.KeyCtrlC, backend.ModCtrl}: (*Application).copySelection,
	{backend.KeyCtrlX, backend.ModCtrl}: (*Application).cutSelection,
	{backend.KeyCtrlV, backend.ModCtrl}: (*Application).pasteClipboard,

	// Search and brackets
	{backend.KeyCtrlF, backend.ModCtrl}: (*Application).promptFind,
	{backend.KeyCtrlG, backend.ModCtrl}: (*Application).findNext,
	{backend.KeyCtrlR, backend.ModCtrl}: (*Application).promptReplace,
	{backend.KeyCtrlL, backend.ModCtrl}: run("jumptomatching"),

	// Application
	{backend.KeyCtrlS, backend.ModCtrl}: (*Application).Save,
	{backend.KeyCtrlQ, backend.ModCtrl}: (*Application).quit,
	{backend.KeyEscape, backend.ModNone}: func(a *Application) error {
		if a.editor.InMultiSelectMode() {
			a.editor.ExitMultiSelectMode()
		}
		a.message = ""
		return nil
	},
}

// lookup finds the action for a key. Control keys arrive with or
// without ModCtrl depending on the terminal, so both are tried.
func lookup(key backend.Key, mod backend.ModMask) (action, bool) {
	if act, ok := keymap[keyStroke{key, mod}]; ok {
		return act, true
	}
	act, ok := keymap[keyStroke{key, mod | backend.ModCtrl}]
	return act, ok
}

func (a *Application) copySelection() error {
	if text := a.editor.OnCopy(); text != "" {
		a.clipboard = text
	}
	return nil
}

func (a *Application) cutSelection() error {
	if text := a.editor.OnCut(); text != "" {
		a.clipboard = text
	}
	return nil
}

func (a *Application) pasteClipboard() error {
	if a.clipboard != "" {
		a.editor.OnPaste(a.clipboard)
	}
	return nil
}

func (a *Application) findNext() error {
	if _, ok := a.editor.FindNext(); !ok {
		a.message = "not found"
	}
	return nil
}

func (a *Application) promptFind() error {
	a.prompt = &prompt{
		label: "find: ",
		done: func(a *Application, needle string) error {
			if _, ok := a.editor.Find(needle, nil); !ok {
				a.message = fmt.Sprintf("%q not found", needle)
			}
			return nil
		},
	}
	return nil
}

func (a *Application) promptReplace() error {
	a.prompt = &prompt{
		label: "replace: ",
		done: func(a *Application, needle string) error {
			if needle == "" {
				return nil
			}
			a.prompt = &prompt{
				label: fmt.Sprintf("replace %q with: ", needle),
				done: func(a *Application, replacement string) error {
					opts := a.editor.Search().Options()
					opts.Needle = needle
					n := a.editor.ReplaceAll(replacement, &opts)
					a.message = fmt.Sprintf("replaced %d", n)
					return nil
				},
			}
			return nil
		},
	}
	return nil
}

// quit asks for confirmation once when the document is modified.
func (a *Application) quit() error {
	if a.modified && !a.quitArmed {
		a.quitArmed = true
		a.message = ErrUnsavedChanges.Error() + ", Ctrl-Q again to quit"
		return nil
	}
	return ErrQuit
}

// prompt reads a line of text on the status row.
type prompt struct {
	label string
	text  []rune
	done  func(a *Application, text string) error
}

func (p *prompt) String() string { return p.label + string(p.text) }

// handlePromptKey edits the prompt and runs it on Enter.
func (a *Application) handlePromptKey(ev backend.Event) error {
	p := a.prompt
	switch ev.Key {
	case backend.KeyRune:
		p.text = append(p.text, ev.Rune)
	case backend.KeyBackspace:
		if len(p.text) > 0 {
			p.text = p.text[:len(p.text)-1]
		}
	case backend.KeyEscape:
		a.prompt = nil
	case backend.KeyEnter:
		a.prompt = nil
		return p.done(a, string(p.text))
	}
	return nil
}
