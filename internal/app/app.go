package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dshills/caret/internal/config"
	"github.com/dshills/caret/internal/editor"
	"github.com/dshills/caret/internal/engine"
	"github.com/dshills/caret/internal/engine/buffer"
	"github.com/dshills/caret/internal/mode"
	"github.com/dshills/caret/internal/plugin/lua"
	"github.com/dshills/caret/internal/renderer/backend"
	"github.com/dshills/caret/internal/renderer/highlight"
	"github.com/dshills/caret/internal/renderer/viewport"
)

// Config is what the command line hands to New.
type Config struct {
	// Path is the file to edit. It need not exist yet.
	Path string

	// ConfigPath is a TOML or YAML options file, reloaded on change.
	ConfigPath string

	// The fields below override the options file when set.
	LogLevel string
	ReadOnly bool
	Mode     string

	// LogOutput receives log lines. Nil discards them, since stderr
	// shares the terminal with the editor.
	LogOutput io.Writer
}

// Application is one editor session on a terminal.
type Application struct {
	logger   *Logger
	cfg      Config
	options  config.Options
	term     *backend.Terminal
	viewport *viewport.Viewport
	session  *engine.Session
	editor   *editor.Editor
	watcher  *config.Watcher
	closers  []io.Closer

	clipboard string
	paste     *strings.Builder
	prompt    *prompt
	message   string
	modified  bool
	quitArmed bool
	lastTick  time.Time
}

// Interrupt payloads delivered through the terminal's event queue.
type (
	optionsReloaded struct{ opts config.Options }
	reloadFailed    struct{ err error }
	redraw          struct{}
	quitRequested   struct{}
)

// New opens cfg.Path on the process terminal.
func New(cfg Config) (*Application, error) {
	term, err := backend.NewTerminal()
	if err != nil {
		return nil, NewOperationError("open", "terminal", err)
	}
	return NewWithTerminal(cfg, term)
}

// NewWithTerminal opens cfg.Path on term and initializes the screen.
func NewWithTerminal(cfg Config, term *backend.Terminal) (*Application, error) {
	opts, err := loadOptions(cfg)
	if err != nil {
		return nil, err
	}

	out := cfg.LogOutput
	if out == nil {
		out = io.Discard
	}
	logger := NewLogger(LoggerConfig{Level: ParseLogLevel(opts.LogLevel), Output: out, Prefix: "caret"})

	text, err := readDocument(cfg.Path)
	if err != nil {
		return nil, err
	}

	a := &Application{logger: logger, cfg: cfg, options: opts, term: term}

	m, closer, err := ModeFor(opts.Mode, cfg.Path)
	if err != nil {
		return nil, NewOperationError("load mode", opts.Mode, err)
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}
	a.session = engine.NewSession(text,
		engine.WithMode(m),
		engine.WithTabSize(opts.TabSize),
		engine.WithSoftTabs(opts.UseSoftTabs),
		engine.WithLineEnding(detectLineEnding(text)),
	)

	styles, err := stylesFor(opts.Theme)
	if err != nil {
		_ = a.closeAll()
		return nil, NewOperationError("load theme", opts.Theme, err)
	}
	term.SetStyles(styles)

	if err := term.Init(); err != nil {
		_ = a.closeAll()
		return nil, NewOperationError("init", "terminal", err)
	}
	w, h := term.Size()
	a.viewport = viewport.New(w, h-1)
	a.viewport.SetRowCount(a.session.Length())

	a.editor, err = editor.New(a.viewport, a.session,
		editor.WithLogger(logger.WithComponent("editor")),
		editor.WithOptions(opts.Map()),
	)
	if err != nil {
		term.Shutdown()
		_ = a.closeAll()
		return nil, err
	}
	a.editor.On(editor.EventChange, func(any) {
		a.modified = true
		a.quitArmed = false
	})

	if cfg.ConfigPath != "" {
		a.watchConfig(cfg.ConfigPath)
	}
	logger.Info("opened %s (%d rows, mode %s)", a.displayName(), a.session.Length(), m.ID())
	return a, nil
}

// loadOptions reads the options file and applies the command line
// overrides. A missing file is not an error.
func loadOptions(cfg Config) (config.Options, error) {
	opts := config.Default()
	if cfg.ConfigPath != "" {
		loaded, err := config.Load(cfg.ConfigPath)
		switch {
		case err == nil:
			opts = loaded
		case errors.Is(err, os.ErrNotExist):
		default:
			return opts, NewOperationError("load config", cfg.ConfigPath, err)
		}
	}
	if cfg.LogLevel != "" {
		opts.LogLevel = cfg.LogLevel
	}
	if cfg.ReadOnly {
		opts.ReadOnly = true
	}
	if cfg.Mode != "" {
		opts.Mode = cfg.Mode
	}
	return opts, nil
}

func readDocument(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", NewOperationError("open", path, err)
	}
	return string(data), nil
}

func detectLineEnding(text string) buffer.LineEnding {
	i := strings.IndexAny(text, "\r\n")
	switch {
	case i < 0 || text[i] == '\n':
		return buffer.LineEndingLF
	case i+1 < len(text) && text[i+1] == '\n':
		return buffer.LineEndingCRLF
	default:
		return buffer.LineEndingCR
	}
}

// stylesFor returns the styles of a named theme. An empty name keeps the
// terminal's own colors.
func stylesFor(theme string) (backend.Styles, error) {
	if theme == "" {
		return backend.DefaultStyles(), nil
	}
	t, err := highlight.Lookup(theme)
	if err != nil {
		return backend.Styles{}, err
	}
	return backend.ThemeStyles(t), nil
}

// ModeFor resolves a mode name. "auto" picks by file name and
// "lua:<script>" loads a script mode over the file's built-in mode.
// The closer, when not nil, must be closed with the session.
func ModeFor(name, filename string) (mode.Mode, io.Closer, error) {
	if script, ok := strings.CutPrefix(name, "lua:"); ok {
		fallback := mode.ForFilename(filename)
		id := strings.TrimSuffix(filepath.Base(script), filepath.Ext(script))
		m, err := lua.LoadScriptMode(id, script, fallback)
		if err != nil {
			return nil, nil, err
		}
		return m, m, nil
	}
	if name == "auto" {
		return mode.ForFilename(filename), nil, nil
	}
	m, err := mode.New(name)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownMode, name)
	}
	return m, nil, nil
}

// watchConfig reloads options on change. Results come back through the
// terminal so they are applied on the event loop.
func (a *Application) watchConfig(path string) {
	w, err := config.NewWatcher(path,
		func(o config.Options) { _ = a.term.Interrupt(optionsReloaded{o}) },
		config.WithErrorHandler(func(err error) { _ = a.term.Interrupt(reloadFailed{err}) }),
	)
	if err != nil {
		a.logger.Warn("not watching %s: %v", path, err)
		return
	}
	a.watcher = w
}

// applyOptions installs reloaded options. Command line overrides keep
// their values.
func (a *Application) applyOptions(opts config.Options) {
	if a.cfg.ReadOnly {
		opts.ReadOnly = true
	}
	if a.cfg.LogLevel != "" {
		opts.LogLevel = a.cfg.LogLevel
	}
	a.logger.SetLevel(ParseLogLevel(opts.LogLevel))
	styles, err := stylesFor(opts.Theme)
	if err != nil {
		a.logger.Warn("applying theme: %v", err)
		a.message = err.Error()
		return
	}
	if err := a.editor.SetOptions(opts.Map()); err != nil {
		a.logger.Warn("applying options: %v", err)
		a.message = err.Error()
		return
	}
	a.term.SetStyles(styles)
	a.options = opts
	a.message = "options reloaded"
	a.logger.Info("options reloaded")
}

// Editor returns the editor.
func (a *Application) Editor() *editor.Editor { return a.editor }

// Session returns the edited session.
func (a *Application) Session() *engine.Session { return a.session }

// Options returns the options in force.
func (a *Application) Options() config.Options { return a.options }

// Modified reports whether the document changed since it was opened or
// last saved.
func (a *Application) Modified() bool { return a.modified }

// Message returns the status message.
func (a *Application) Message() string { return a.message }

// Run draws and handles events until the user quits.
func (a *Application) Run() error {
	a.lastTick = time.Now()
	for {
		a.Draw()
		if err := a.HandleEvent(a.term.PollEvent()); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			a.logger.Error("%v", err)
			a.message = err.Error()
		}
	}
}

// RequestQuit makes Run return, discarding unsaved changes. It is safe
// to call from any goroutine.
func (a *Application) RequestQuit() {
	_ = a.term.Interrupt(quitRequested{})
}

// Save writes the document to its file.
func (a *Application) Save() error {
	if a.cfg.Path == "" {
		return ErrNoPath
	}
	if err := os.WriteFile(a.cfg.Path, []byte(a.session.Text()), 0o644); err != nil {
		return NewOperationError("save", a.cfg.Path, err)
	}
	a.modified = false
	a.message = "saved " + a.displayName()
	a.logger.Info("saved %s", a.cfg.Path)
	return nil
}

// Close stops watching, releases the editor and restores the terminal.
func (a *Application) Close() error {
	var errs []error
	if a.watcher != nil {
		errs = append(errs, a.watcher.Close())
	}
	a.editor.Destroy()
	errs = append(errs, a.closeAll())
	a.term.Shutdown()
	return errors.Join(errs...)
}

func (a *Application) closeAll() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *Application) displayName() string {
	if a.cfg.Path == "" {
		return "[scratch]"
	}
	return filepath.Base(a.cfg.Path)
}
