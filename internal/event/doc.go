// Package event provides the synchronous publish/subscribe channels used by
// the editor core.
//
// Each document session, selection and editor owns its own Emitter. Events
// are keyed by name ("change", "changeSelection", "beforeEndOperation", ...)
// and delivered synchronously, in priority order, on the goroutine that
// emits them.
//
// # Subscriptions
//
// Every call to On returns a Subscription handle. Handlers are never dropped
// implicitly: the owner must Cancel the handle (or the SubscriptionSet that
// collected it) when it detaches from the emitter:
//
//	var subs event.SubscriptionSet
//	subs.Add(sess.Events().On("change", onChange))
//	subs.Add(sel.Events().On("changeCursor", onCursor))
//	...
//	subs.CancelAll() // deterministic teardown on session swap
//
// # Deferred callbacks
//
// Debouncer coalesces bursts of triggers into one deferred call. It is used
// for the bracket highlight refresh and the "input" notification.
package event
