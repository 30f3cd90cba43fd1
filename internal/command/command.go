// Package command holds editor command descriptors and the manager that
// runs them.
//
// Executing a command fires the "exec" event, runs the command unless a
// handler prevented it, then fires "afterExec" with the same Event. The
// editor hooks both events to open and close its operations.
package command

// ScrollIntoView selects how the view follows the cursor once a command's
// operation ends.
type ScrollIntoView string

// Scroll policies.
const (
	ScrollNone          ScrollIntoView = ""
	ScrollCenter        ScrollIntoView = "center"
	ScrollCenterAnimate ScrollIntoView = "center-animate"
	ScrollAnimate       ScrollIntoView = "animate"
	ScrollCursor        ScrollIntoView = "cursor"
	ScrollSelectionPart ScrollIntoView = "selectionPart"
)

// Animated reports whether the policy scrolls smoothly.
func (s ScrollIntoView) Animated() bool {
	return s == ScrollAnimate || s == ScrollCenterAnimate
}

// MultiSelectAction tells the editor how to run a command while several
// ranges are selected.
type MultiSelectAction string

// Multi-selection strategies.
const (
	// MultiSelectNone runs the command on the primary range and adds the
	// result to the range list.
	MultiSelectNone MultiSelectAction = ""

	// MultiSelectForEach runs the command once per range, last to first.
	MultiSelectForEach MultiSelectAction = "forEach"

	// MultiSelectForEachLine is like MultiSelectForEach but runs once per
	// row when several ranges share one.
	MultiSelectForEachLine MultiSelectAction = "forEachLine"

	// MultiSelectSingle drops every range but the primary one first.
	MultiSelectSingle MultiSelectAction = "single"
)

// Command describes an editor command.
type Command[E any] struct {
	Name    string
	Aliases []string

	// Exec performs the command. Returning false vetoes the operation's
	// scroll policy.
	Exec func(ed E, args any) bool

	// IsAvailable, when set, can refuse to run the command.
	IsAvailable func(ed E) bool

	ScrollIntoView    ScrollIntoView
	MultiSelectAction MultiSelectAction

	// ReadOnly marks commands allowed on read-only editors.
	ReadOnly bool
}

// Event is passed to exec and afterExec handlers.
type Event[E any] struct {
	Editor  E
	Command *Command[E]
	Args    any

	// ReturnValue is the command's result. A false value vetoes the
	// operation's scroll policy.
	ReturnValue bool

	prevented bool
}

// PreventDefault stops the command from running. AfterExec handlers
// still fire.
func (e *Event[E]) PreventDefault() { e.prevented = true }

// Prevented reports whether PreventDefault was called.
func (e *Event[E]) Prevented() bool { return e.prevented }
