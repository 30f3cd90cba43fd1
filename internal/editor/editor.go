package editor

import (
	"maps"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/caret/internal/command"
	"github.com/dshills/caret/internal/engine"
	"github.com/dshills/caret/internal/engine/buffer"
	"github.com/dshills/caret/internal/engine/cursor"
	"github.com/dshills/caret/internal/event"
	"github.com/dshills/caret/internal/mode"
	"github.com/dshills/caret/internal/search"
)

// Re-export the command types bound to the editor.
type (
	// Command is a command the editor can execute.
	Command = command.Command[*Editor]

	// CommandEvent is the payload of the command exec hooks.
	CommandEvent = command.Event[*Editor]

	// Point is a row/column position.
	Point = buffer.Point

	// Range is a span between two points.
	Range = buffer.Range
)

// Debounce delays.
const (
	InputDelay            = 31 * time.Millisecond
	BracketHighlightDelay = 50 * time.Millisecond
)

// Renderer is the view the editor drives after each operation.
// Implementations must be safe for concurrent use: deferred callbacks
// may query them from a timer goroutine.
type Renderer interface {
	ScrollTop() int
	FirstRow() int
	LastRow() int

	// ScrollCursorIntoView scrolls until cursor is visible. A non-zero
	// offset places the cursor at that fraction of the view height when
	// it has to scroll.
	ScrollCursorIntoView(cursor Point, offset float64)
	ScrollSelectionIntoView(anchor, lead Point)
	AnimateScrolling(fromScrollTop int)
}

// Logger receives debug diagnostics.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

type nopRenderer struct{}

func (nopRenderer) ScrollTop() int                       { return 0 }
func (nopRenderer) FirstRow() int                        { return 0 }
func (nopRenderer) LastRow() int                         { return 0 }
func (nopRenderer) ScrollCursorIntoView(Point, float64)  {}
func (nopRenderer) ScrollSelectionIntoView(Point, Point) {}
func (nopRenderer) AnimateScrolling(int)                 {}

// Editor is the controller between a Session, a Renderer and the
// commands users run. It owns the operation window around each command,
// the selection-aware edits, line moves, bracket jumps and search.
//
// An Editor is driven from one goroutine. Only its debounced callbacks
// run elsewhere, and they take the locks they need.
type Editor struct {
	id       string
	renderer Renderer
	logger   Logger
	emitter  *event.Emitter
	commands *command.Manager[*Editor]
	search   *search.Search
	now      func() time.Time

	// mu guards session and the operation state shared with timers.
	mu        sync.Mutex
	session   *engine.Session
	selection *cursor.Selection
	curOp     *Operation
	prevOp    *Operation

	sessionSubs event.SubscriptionSet
	commandSubs event.SubscriptionSet

	opReset         *event.Debouncer
	inputDebounce   *event.Debouncer
	bracketDebounce *event.Debouncer
	bracketMarker   int

	// Undo merge state.
	mergeMode        MergeMode
	mergeable        []string
	mergeNextCommand bool
	sequenceStart    time.Time

	inVirtualSelectionMode bool
	lineModeText           string
	selectionHighlight     string
	composition            compositionState

	settings  settings
	destroyed atomic.Bool
}

// settings holds the editor-level options.
type settings struct {
	behavioursEnabled      bool
	autoIndent             bool
	readOnly               bool
	highlightBrackets      bool
	highlightSelectedWord  bool
	copyWithEmptySelection bool
}

func defaultSettings() settings {
	return settings{
		behavioursEnabled:     true,
		autoIndent:            true,
		highlightBrackets:     true,
		highlightSelectedWord: true,
	}
}

// config collects constructor options.
type config struct {
	logger    Logger
	idGen     func() string
	mergeable []string
	options   map[string]any
	now       func() time.Time
	commands  []*Command
}

// Option configures an Editor.
type Option func(*config)

// WithLogger sets the debug logger.
func WithLogger(l Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithIDGenerator supplies editor identities. The default issues UUIDs.
func WithIDGenerator(gen func() string) Option {
	return func(c *config) {
		if gen != nil {
			c.idGen = gen
		}
	}
}

// WithMergeableCommands replaces the commands whose repeats may join one
// undo group.
func WithMergeableCommands(names ...string) Option {
	return func(c *config) {
		c.mergeable = append([]string(nil), names...)
	}
}

// WithOptions applies named options after construction. Repeated uses
// merge, later values winning.
func WithOptions(values map[string]any) Option {
	return func(c *config) {
		if c.options == nil {
			c.options = make(map[string]any, len(values))
		}
		maps.Copy(c.options, values)
	}
}

// WithClock replaces the clock used by the undo merge time gate.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithCommands registers extra commands next to the default set.
func WithCommands(cmds ...*Command) Option {
	return func(c *config) {
		c.commands = append(c.commands, cmds...)
	}
}

// DefaultMergeableCommands returns the commands merged by default.
func DefaultMergeableCommands() []string {
	return []string{"backspace", "del", "insertstring"}
}

// New creates an editor bound to session. A nil renderer is replaced by
// one that ignores scroll requests.
func New(renderer Renderer, session *engine.Session, opts ...Option) (*Editor, error) {
	cfg := config{
		logger:    nopLogger{},
		idGen:     uuid.NewString,
		mergeable: DefaultMergeableCommands(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if renderer == nil {
		renderer = nopRenderer{}
	}

	e := &Editor{
		id:               cfg.idGen(),
		renderer:         renderer,
		logger:           cfg.logger,
		emitter:          event.NewEmitter(),
		search:           search.New(search.Options{Wrap: true}),
		now:              cfg.now,
		mergeMode:        MergeOn,
		mergeable:        cfg.mergeable,
		mergeNextCommand: true,
		settings:         defaultSettings(),
	}
	e.opReset = event.NewDebouncer(0, func() { e.endOperation(nil, true) })
	e.inputDebounce = event.NewDebouncer(InputDelay, func() { e.emitter.Emit(EventInput, nil) })
	e.bracketDebounce = event.NewDebouncer(BracketHighlightDelay, e.updateBracketHighlight)

	commands, err := command.NewManager(append(DefaultCommands(), cfg.commands...)...)
	if err != nil {
		return nil, err
	}
	e.commands = commands
	e.commands.SetDefaultHandler(e.runCommand)
	e.commandSubs.Add(
		e.commands.OnExec(e.onExecStart, event.WithPriority(event.PriorityHigh)),
		e.commands.OnExec(e.historyTracker),
		e.commands.OnAfterExec(e.onExecEnd, event.WithPriority(event.PriorityHigh)),
	)

	e.SetSession(session)
	if err := e.SetOptions(cfg.options); err != nil {
		return nil, err
	}
	return e, nil
}

// ID returns the editor identity.
func (e *Editor) ID() string { return e.id }

// Renderer returns the renderer the editor scrolls.
func (e *Editor) Renderer() Renderer { return e.renderer }

// Commands returns the command manager.
func (e *Editor) Commands() *command.Manager[*Editor] { return e.commands }

// On subscribes to one of the editor events.
func (e *Editor) On(name string, h event.Handler, opts ...event.SubscriptionOption) event.Subscription {
	return e.emitter.On(name, h, opts...)
}

// Session returns the bound session, or nil.
func (e *Editor) Session() *engine.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// Selection returns the selection edits apply to. While a command runs
// once per range this is the range being processed.
func (e *Editor) Selection() *cursor.Selection { return e.selection }

// SetSession binds session, ending any operation on the previous one and
// releasing every listener attached to it. A nil session unbinds.
func (e *Editor) SetSession(session *engine.Session) {
	old := e.Session()
	if old == session && old != nil {
		return
	}
	e.endOperation(nil, false)

	e.opReset.Cancel()
	e.inputDebounce.Cancel()
	e.bracketDebounce.Cancel()
	e.sessionSubs.CancelAll()
	e.clearBracketHighlight()

	e.mu.Lock()
	e.session = session
	e.selection = nil
	if session != nil {
		e.selection = session.Selection()
	}
	e.curOp = nil
	e.mu.Unlock()

	if session != nil {
		sel := session.Selection()
		e.sessionSubs.Add(
			session.On(engine.EventChange, e.onDocumentChange),
			session.On(engine.EventChangeMode, func(any) { e.scheduleBracketHighlight() }),
			sel.On(cursor.EventChangeCursor, e.onCursorChange),
			sel.On(cursor.EventChangeSelection, e.onSelectionChange),
		)
		e.logger.Debug("editor %s bound to session (%d rows)", e.id, session.Length())
	}
	e.emitter.Emit(EventChangeSession, SessionChange{Session: session, OldSession: old})
}

// Destroy releases the editor: pending callbacks are cancelled, every
// subscription is dropped and the bound session is destroyed.
func (e *Editor) Destroy() {
	if e.destroyed.Swap(true) {
		return
	}
	session := e.Session()
	e.SetSession(nil)
	e.commandSubs.CancelAll()
	if session != nil {
		session.Destroy()
	}
	e.emitter.Emit(EventDestroy, nil)
}

// Destroyed reports whether Destroy has been called.
func (e *Editor) Destroyed() bool { return e.destroyed.Load() }

// ReadOnly reports whether edits are refused.
func (e *Editor) ReadOnly() bool { return e.settings.readOnly }

// ExecCommand runs the command registered under name. Unknown commands
// report false without error.
func (e *Editor) ExecCommand(name string, args any) (bool, error) {
	cmd := e.commands.Get(name)
	if cmd == nil {
		e.logger.Debug("unknown command %q", name)
		return false, nil
	}
	return e.commands.ExecCommand(e, cmd, args)
}

// Undo reverts the newest undo group and restores its selection.
func (e *Editor) Undo() bool {
	if e.session == nil {
		return false
	}
	snap, ok := e.session.Undo()
	if !ok {
		return false
	}
	e.selection.Restore(snap)
	e.renderer.ScrollCursorIntoView(e.selection.Cursor(), 0.5)
	return true
}

// Redo reapplies the newest undone group.
func (e *Editor) Redo() bool {
	if e.session == nil {
		return false
	}
	snap, ok := e.session.Redo()
	if !ok {
		return false
	}
	e.selection.Restore(snap)
	e.renderer.ScrollCursorIntoView(e.selection.Cursor(), 0.5)
	return true
}

// ============================================================================
// Session and selection listeners
// ============================================================================

func (e *Editor) onDocumentChange(payload any) {
	e.mu.Lock()
	if e.curOp == nil {
		e.mu.Unlock()
		e.StartOperation(nil)
		e.mu.Lock()
	}
	if e.curOp != nil {
		e.curOp.DocChanged = true
	}
	e.mu.Unlock()

	e.emitter.Emit(EventChange, payload)
	e.inputDebounce.Schedule()
}

func (e *Editor) onCursorChange(any) {
	e.emitter.Emit(EventChangeCursor, nil)
	e.scheduleBracketHighlight()
}

func (e *Editor) onSelectionChange(any) {
	e.mu.Lock()
	if e.curOp == nil {
		e.mu.Unlock()
		e.StartOperation(nil)
		e.mu.Lock()
	}
	if e.curOp != nil {
		e.curOp.SelectionChanged = true
	}
	e.mu.Unlock()

	e.updateSelectionHighlight()
	e.emitter.Emit(EventChangeSelection, nil)
}

// ============================================================================
// mode.Host
// ============================================================================

var _ mode.Host = (*Editor)(nil)

// Doc returns the bound document.
func (e *Editor) Doc() *buffer.Document { return e.session.Doc() }

// SelectionRange returns the range of the active selection.
func (e *Editor) SelectionRange() Range { return e.selection.Range() }

// CursorPosition returns the lead of the active selection.
func (e *Editor) CursorPosition() Point { return e.selection.Cursor() }

// InMultiSelectMode reports whether several ranges are selected.
func (e *Editor) InMultiSelectMode() bool {
	return e.session != nil && e.session.Selection().InMultiSelectMode()
}

// InVirtualSelectionMode reports whether a command is being applied to
// one range of a multi-range selection at a time.
func (e *Editor) InVirtualSelectionMode() bool { return e.inVirtualSelectionMode }

// TabString returns the text one indent level inserts.
func (e *Editor) TabString() string { return e.session.TabString() }

// FindMatchingBracket returns the partner of the bracket before p.
func (e *Editor) FindMatchingBracket(p Point) (Point, bool) {
	return e.session.FindMatchingBracket(p)
}
