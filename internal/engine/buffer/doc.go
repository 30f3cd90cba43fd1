// Package buffer provides the document model of the editor core: positions,
// ranges, change deltas and a line-oriented Document.
//
// Position Types:
//
//   - Point: Row and column position (0-indexed, column in bytes)
//   - Range: A span between two points, Start <= End
//   - Delta: A single insert or remove, expressed as line arrays
//
// Basic usage:
//
//	doc := buffer.NewDocument("Hello, World!")
//
//	// Insert text
//	doc.Insert(buffer.Point{Row: 0, Column: 7}, "Beautiful ")
//
//	// Remove text
//	doc.Remove(buffer.NewRange(0, 0, 0, 7))
//
// Every mutation is reported as exactly one Delta to change listeners
// registered with OnChange. Listeners are invoked synchronously after the
// document has been updated.
//
// Thread Safety:
//
// Document reads acquire a read lock and writes an exclusive lock, so
// deferred callbacks running on timer goroutines may read a document while
// the owning goroutine edits it. Change listeners run without the lock held.
package buffer
