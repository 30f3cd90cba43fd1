package command

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/caret/internal/event"
)

// Manager event names. Both carry a *Event[E].
const (
	EventExec      = "exec"
	EventAfterExec = "afterExec"
)

// readOnlyEditor is implemented by editors that can refuse edits.
type readOnlyEditor interface {
	ReadOnly() bool
}

// Manager registers commands by name and runs them.
type Manager[E any] struct {
	mu       sync.RWMutex
	commands map[string]*Command[E]
	emitter  *event.Emitter
	runner   func(*Event[E]) bool
}

// NewManager creates a manager holding cmds.
func NewManager[E any](cmds ...*Command[E]) (*Manager[E], error) {
	m := &Manager[E]{
		commands: make(map[string]*Command[E]),
		emitter:  event.NewEmitter(),
	}
	for _, c := range cmds {
		if err := m.Add(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Add registers cmd under its name and aliases, replacing any command
// already registered there.
func (m *Manager[E]) Add(cmd *Command[E]) error {
	if cmd == nil {
		return ErrNilCommand
	}
	if cmd.Name == "" {
		return ErrEmptyName
	}
	if cmd.Exec == nil {
		return fmt.Errorf("%w: %s", ErrNoExec, cmd.Name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		m.commands[alias] = cmd
	}
	return nil
}

// Remove drops the command registered under name with its aliases.
func (m *Manager[E]) Remove(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd, ok := m.commands[name]
	if !ok {
		return
	}
	for key, c := range m.commands {
		if c == cmd {
			delete(m.commands, key)
		}
	}
}

// Get returns the command registered under name, or nil.
func (m *Manager[E]) Get(name string) *Command[E] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.commands[name]
}

// Names returns the primary names of every command, sorted.
func (m *Manager[E]) Names() []string {
	m.mu.RLock()
	names := make([]string, 0, len(m.commands))
	for key, c := range m.commands {
		if key == c.Name {
			names = append(names, key)
		}
	}
	m.mu.RUnlock()
	sort.Strings(names)
	return names
}

// SetDefaultHandler replaces the step that runs a command once the exec
// handlers are done. Nil restores calling Command.Exec.
func (m *Manager[E]) SetDefaultHandler(fn func(*Event[E]) bool) {
	m.mu.Lock()
	m.runner = fn
	m.mu.Unlock()
}

// OnExec subscribes to commands about to run.
func (m *Manager[E]) OnExec(fn func(*Event[E]), opts ...event.SubscriptionOption) event.Subscription {
	return m.emitter.On(EventExec, func(p any) { fn(p.(*Event[E])) }, opts...)
}

// OnAfterExec subscribes to commands that have run.
func (m *Manager[E]) OnAfterExec(fn func(*Event[E]), opts ...event.SubscriptionOption) event.Subscription {
	return m.emitter.On(EventAfterExec, func(p any) { fn(p.(*Event[E])) }, opts...)
}

// Exec runs the command registered under name. It returns false when no
// such command exists, the editor is read-only and the command is not,
// the command is unavailable, or the command vetoed its operation.
func (m *Manager[E]) Exec(ed E, name string, args any) bool {
	cmd := m.Get(name)
	if cmd == nil {
		return false
	}
	ok, _ := m.ExecCommand(ed, cmd, args)
	return ok
}

// ExecCommand runs cmd, which need not be registered.
func (m *Manager[E]) ExecCommand(ed E, cmd *Command[E], args any) (bool, error) {
	if cmd == nil {
		return false, ErrNilCommand
	}
	if ro, ok := any(ed).(readOnlyEditor); ok && ro.ReadOnly() && !cmd.ReadOnly {
		return false, nil
	}
	if cmd.IsAvailable != nil && !cmd.IsAvailable(ed) {
		return false, nil
	}

	e := &Event[E]{Editor: ed, Command: cmd, Args: args, ReturnValue: true}
	m.emitter.Emit(EventExec, e)
	if !e.prevented {
		m.mu.RLock()
		run := m.runner
		m.mu.RUnlock()
		if run != nil {
			e.ReturnValue = run(e)
		} else {
			e.ReturnValue = cmd.Exec(ed, args)
		}
	}
	m.emitter.Emit(EventAfterExec, e)
	return e.ReturnValue, nil
}
