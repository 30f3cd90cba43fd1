// Package engine provides the editing session behind an editor view.
//
// A Session owns a line-based document together with everything derived
// from it: the selection, the undo history, the language mode and its
// token cache, folds, markers and gutter annotations.
//
// # Architecture
//
// The session is built on several sub-packages:
//
//   - buffer: line storage, points, ranges and change deltas
//   - cursor: primary selection and multi-range selections
//   - history: grouped undo and redo of deltas
//
// Every document change flows through Session.onChange, which records
// the delta in the undo manager (unless it is being replayed by undo),
// shifts folds and invalidates tokens before emitting "change".
//
// # Undo grouping
//
// MergeUndoDeltas decides whether the next recorded change joins the
// open undo group. Each recorded change sets it back to true so the
// deltas of one command stay together; the editor clears it at the
// start of every operation.
//
//	s := engine.NewSession("hello", engine.WithTabSize(2))
//	s.SetMergeUndoDeltas(false)
//	s.Insert(engine.Point{Row: 0, Column: 5}, " world")
//	s.Undo()
//
// # Thread Safety
//
// Session state is guarded by a read-write mutex and events are emitted
// with no lock held, so handlers may call back into the session. Edits
// are expected to come from a single goroutine.
package engine
