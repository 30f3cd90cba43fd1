package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/caret/internal/editor"
	"github.com/dshills/caret/internal/engine/buffer"
	"github.com/dshills/caret/internal/renderer/backend"
)

// frameInterval paces scroll animation frames.
const frameInterval = 16 * time.Millisecond

// HandleEvent applies one terminal event. It returns ErrQuit when the
// user quits.
func (a *Application) HandleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return a.handleKey(ev)

	case backend.EventPaste:
		if ev.PasteStart {
			a.paste = new(strings.Builder)
			return nil
		}
		if a.paste != nil {
			text := a.paste.String()
			a.paste = nil
			a.editor.OnPaste(text)
		}

	case backend.EventResize:
		a.viewport.Resize(ev.Width, ev.Height-1)

	case backend.EventInterrupt:
		switch data := ev.Data.(type) {
		case optionsReloaded:
			a.applyOptions(data.opts)
		case reloadFailed:
			a.logger.Warn("reloading options: %v", data.err)
			a.message = data.err.Error()
		case quitRequested:
			return ErrQuit
		case redraw:
		}
	}
	return nil
}

func (a *Application) handleKey(ev backend.Event) error {
	if a.paste != nil {
		switch ev.Key {
		case backend.KeyRune:
			a.paste.WriteRune(ev.Rune)
		case backend.KeyEnter:
			a.paste.WriteByte('\n')
		case backend.KeyTab:
			a.paste.WriteByte('\t')
		}
		return nil
	}
	if a.prompt != nil {
		return a.handlePromptKey(ev)
	}

	if ev.Key == backend.KeyRune && !ev.Mod.Has(backend.ModCtrl) && !ev.Mod.Has(backend.ModAlt) {
		a.message = ""
		_, err := a.editor.ExecCommand("insertstring", string(ev.Rune))
		a.afterCommand()
		return err
	}
	act, ok := lookup(ev.Key, ev.Mod)
	if !ok {
		return nil
	}
	if err := act(a); err != nil {
		return err
	}
	a.afterCommand()
	return nil
}

// afterCommand asks for the redraws a command can trigger later: the
// debounced bracket highlight and scroll animation.
func (a *Application) afterCommand() {
	if a.options.HighlightBrackets {
		time.AfterFunc(editor.BracketHighlightDelay+frameInterval, func() {
			_ = a.term.Interrupt(redraw{})
		})
	}
	a.scheduleFrame()
}

func (a *Application) scheduleFrame() {
	if a.viewport.IsAnimating() {
		time.AfterFunc(frameInterval, func() { _ = a.term.Interrupt(redraw{}) })
	}
}

// Draw renders the document, selections and status line.
func (a *Application) Draw() {
	now := time.Now()
	if !a.lastTick.IsZero() && a.viewport.IsAnimating() {
		a.viewport.Update(now.Sub(a.lastTick).Seconds())
		a.scheduleFrame()
	}
	a.lastTick = now

	a.viewport.SetRowCount(a.session.Length())
	a.term.Draw(a.session, a.viewport, a.frame())
}

func (a *Application) frame() backend.Frame {
	f := backend.Frame{
		Cursor:     a.editor.CursorPosition(),
		Highlights: a.editor.SelectionHighlights(),
		Status:     a.status(),
		TabSize:    a.session.TabSize(),
	}
	for _, r := range a.editor.Selection().Ranges() {
		if !r.Range.IsEmpty() {
			f.Selections = append(f.Selections, r.Range)
		}
	}
	if r, ok := a.editor.BracketHighlight(); ok {
		f.Brackets = []buffer.Range{r}
	}
	return f
}

func (a *Application) status() string {
	if a.prompt != nil {
		return a.prompt.String()
	}
	name := a.displayName()
	if a.modified {
		name += " [+]"
	}
	if a.editor.ReadOnly() {
		name += " [ro]"
	}
	pos := a.editor.CursorPosition()
	s := fmt.Sprintf(" %s  %d:%d  %s", name, pos.Row+1, pos.Column+1, a.session.Mode().ID())
	if a.session.Overwrite() {
		s += "  OVR"
	}
	if n := a.editor.Selection().RangeCount(); a.editor.InMultiSelectMode() {
		s += fmt.Sprintf("  %d carets", n)
	}
	if a.message != "" {
		s += "  " + a.message
	}
	return s
}
