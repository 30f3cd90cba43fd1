package editor

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"
)

// SequenceTimeout bounds how long a run of merged commands may last.
const SequenceTimeout = 2000 * time.Millisecond

// MergeMode controls undo merging between consecutive commands.
type MergeMode uint8

const (
	// MergeOff records every command as its own undo group.
	MergeOff MergeMode = iota
	// MergeOn merges runs of mergeable commands within SequenceTimeout.
	MergeOn
	// MergeAlways merges runs regardless of their duration.
	MergeAlways
)

// String returns the option value for m.
func (m MergeMode) String() string {
	switch m {
	case MergeOff:
		return "off"
	case MergeAlways:
		return "always"
	default:
		return "on"
	}
}

// ParseMergeMode accepts a bool or one of "off", "on", "always".
func ParseMergeMode(v any) (MergeMode, error) {
	switch v := v.(type) {
	case bool:
		if v {
			return MergeOn, nil
		}
		return MergeOff, nil
	case MergeMode:
		return v, nil
	case string:
		switch strings.ToLower(v) {
		case "off", "false":
			return MergeOff, nil
		case "on", "true":
			return MergeOn, nil
		case "always":
			return MergeAlways, nil
		}
	}
	return MergeOff, fmt.Errorf("%w: mergeUndoDeltas %v", ErrInvalidOptionValue, v)
}

// MergeInput is everything the merge decision looks at.
type MergeInput struct {
	Mode        MergeMode
	PrevCommand string
	PrevArgs    any
	Command     string
	Args        any

	// MergeNext is the editor's merge-next flag.
	MergeNext bool

	// Elapsed is the time since the current sequence started.
	Elapsed   time.Duration
	Mergeable []string
}

// MergeDecision is the outcome of ShouldMerge.
type MergeDecision struct {
	// Merge joins the command's edits to the previous undo group.
	Merge bool
	// ResetSequence starts a new sequence at the current time.
	ResetSequence bool
	// MergeNext is the new value of the merge-next flag.
	MergeNext bool
}

// ShouldMerge decides whether a command joins the undo group of the
// command before it.
//
// Repeated insertstring commands merge while the merge-next flag is
// armed, unless the new text has whitespace and the previous text did
// not. Other commands merge with a repeat of themselves when they are
// mergeable. Outside MergeAlways a sequence older than SequenceTimeout
// never merges.
func ShouldMerge(in MergeInput) MergeDecision {
	out := MergeDecision{MergeNext: in.MergeNext}
	if in.Mode == MergeOff {
		return out
	}

	merge := in.PrevCommand != "" && in.Command == in.PrevCommand
	mergeable := slices.Contains(in.Mergeable, in.Command)
	if in.Command == "insertstring" {
		merge = merge && in.MergeNext &&
			(!hasSpace(in.Args) || hasSpace(in.PrevArgs))
		out.MergeNext = true
	} else {
		merge = merge && mergeable
	}

	if in.Mode != MergeAlways && in.Elapsed > SequenceTimeout {
		merge = false
	}

	out.Merge = merge
	out.ResetSequence = !merge && mergeable
	return out
}

func hasSpace(args any) bool {
	s, ok := args.(string)
	return ok && strings.IndexFunc(s, unicode.IsSpace) >= 0
}

// historyTracker applies ShouldMerge to each command as it starts.
func (e *Editor) historyTracker(ev *CommandEvent) {
	if e.mergeMode == MergeOff || e.session == nil {
		return
	}
	prev, _ := e.PrevOp()
	now := e.now()
	d := ShouldMerge(MergeInput{
		Mode:        e.mergeMode,
		PrevCommand: prev.CommandName(),
		PrevArgs:    prev.Args,
		Command:     ev.Command.Name,
		Args:        ev.Args,
		MergeNext:   e.mergeNextCommand,
		Elapsed:     now.Sub(e.sequenceStart),
		Mergeable:   e.mergeable,
	})
	e.mergeNextCommand = d.MergeNext
	switch {
	case d.Merge:
		e.session.SetMergeUndoDeltas(true)
	case d.ResetSequence:
		e.sequenceStart = now
	}
}
