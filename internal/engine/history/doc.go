// Package history provides undo/redo storage for a document session.
//
// The history system records document deltas in groups. Key concepts:
//
// # Groups
//
// A Group is one undo step: the deltas applied by a single user action
// plus the selection before and after it.
//
// # Merging
//
// Add takes an allowMerge flag. When it is set the delta joins the group
// on top of the undo stack instead of opening a new one. The caller
// decides when consecutive actions belong together:
//
//	um := NewUndoManager(1000)
//	um.Add(delta, false) // opens a group
//	um.Add(next, true)   // joins it
//
// # Undo and Redo
//
// Undo and Redo apply inverted or original deltas through an Applier
// (normally the document) and return the selection to restore:
//
//	snap, ok, err := um.Undo(doc)
//
// # Clean State
//
// MarkClean records the current revision; IsClean reports whether the
// history has returned to it.
package history
