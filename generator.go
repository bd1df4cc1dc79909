package benchtab

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Labels of the two diagnostic dumps.
const (
	LabelDocument = "Suite document"
	LabelResult   = "Table result"
)

var generatorStyles = []struct {
	name  string
	style Style
}{
	{"title", Style{Foreground: "white", Bold: true}},
	{"description", Style{}},
}

// Generator renders suite documents as tables on one [Console].
type Generator struct {
	console    *Console
	tabulator  Tabulator
	backend    tableBackend
	kind       Backend
	diag       DiagnosticSink
	diagFormat Format
	logger     *slog.Logger
}

// Option configures a [Generator].
type Option func(*options)

type options struct {
	tabulator  Tabulator
	backend    Backend
	border     BorderStyle
	maxWidth   int
	diag       DiagnosticSink
	diagFormat Format
	logger     *slog.Logger
	probe      func(io.Writer) bool
}

// WithTabulator replaces the default jq/JSONPath tabulator.
func WithTabulator(t Tabulator) Option {
	return func(o *options) { o.tabulator = t }
}

// WithBackend selects the table renderer. Default: [BackendAuto].
func WithBackend(b Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithBorder sets the border of the legacy renderer. Default:
// [BorderRounded].
func WithBorder(b BorderStyle) Option {
	return func(o *options) { o.border = b }
}

// WithMaxWidth caps the column width of the legacy renderer.
func WithMaxWidth(n int) Option {
	return func(o *options) { o.maxWidth = n }
}

// WithDiagnostics sets the sink for debug dumps. Default: a [ConsoleSink]
// on os.Stderr.
func WithDiagnostics(s DiagnosticSink) Option {
	return func(o *options) { o.diag = s }
}

// WithDiagnosticFormat sets the serialization of debug dumps. Default:
// [JSON].
func WithDiagnosticFormat(f Format) Option {
	return func(o *options) { o.diagFormat = f }
}

// WithLogger sets the logger. Default: a logger that discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// NewGenerator registers the title and description styles on console and
// resolves the table backend. A nil console writes to os.Stdout.
func NewGenerator(console *Console, opts ...Option) (*Generator, error) {
	if console == nil {
		console = NewConsole(os.Stdout)
	}
	o := options{
		backend:    BackendAuto,
		border:     BorderRounded,
		diagFormat: JSON,
		probe:      isTerminal,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.tabulator == nil {
		o.tabulator = NewTabulator()
	}
	if o.diag == nil {
		o.diag = NewConsoleSink(os.Stderr)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.diagFormat != JSON && o.diagFormat != YAML {
		return nil, fmt.Errorf("%w: diagnostics %q", ErrUnsupportedFormat, o.diagFormat)
	}

	for _, s := range generatorStyles {
		if err := console.SetStyle(s.name, s.style); err != nil {
			return nil, err
		}
	}

	kind, err := resolveBackend(o.backend, console.Writer(), o.probe)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("table backend resolved", "requested", o.backend, "backend", kind)

	return &Generator{
		console:    console,
		tabulator:  o.tabulator,
		backend:    newTableBackend(kind, console.Writer(), o.border, o.maxWidth),
		kind:       kind,
		diag:       o.diag,
		diagFormat: o.diagFormat,
		logger:     o.logger,
	}, nil
}

// Backend returns the resolved table backend, never [BackendAuto].
func (g *Generator) Backend() Backend { return g.kind }

// Generate tabulates doc with def and params and renders the result.
//
// With cfg.Debug set, the document is dumped before tabulation and the
// result after it. Title and description lines precede the table, and one
// blank line follows it.
func (g *Generator) Generate(doc *SuiteDocument, def *Definition, cfg RenderConfig, params Parameters) error {
	if cfg.Debug {
		if err := g.emit(StagePreTabulation, LabelDocument, doc, ""); err != nil {
			return err
		}
	}

	result, err := g.tabulator.Tabulate(doc, def, params)
	if err != nil {
		return err
	}
	g.logger.Debug("tabulated", "definition", definitionName(def), "rows", len(result.Rows))

	if cfg.Debug {
		if err := g.emit(StagePostTabulation, LabelResult, result, "  "); err != nil {
			return err
		}
	}

	if cfg.Title != "" {
		if err := g.console.Writeln(fmt.Sprintf("<title>%s</title>", cfg.Title)); err != nil {
			return err
		}
	}
	if cfg.Description != "" {
		if err := g.console.Writeln(fmt.Sprintf("<description>%s</description>", cfg.Description)); err != nil {
			return err
		}
	}

	return g.render(result, cfg.Exclude)
}

func (g *Generator) render(result *TabularResult, exclude []string) error {
	header, rows := ExtractRows(result, exclude)
	cells := Align(header, rows)
	if colCount(header, cells) > 0 {
		if err := g.backend.draw(header, cells); err != nil {
			return err
		}
	}
	g.logger.Debug("rendered", "backend", g.kind, "columns", len(header), "rows", len(cells))
	return g.console.Writeln("")
}

func (g *Generator) emit(stage Stage, label string, v any, indent string) error {
	body, err := marshal(g.diagFormat, v, indent)
	if err != nil {
		return fmt.Errorf("diagnostics: %w", err)
	}
	return g.diag.Emit(DiagnosticEvent{Stage: stage, Label: label, Format: g.diagFormat, Body: body})
}

func definitionName(def *Definition) string {
	if def == nil {
		return ""
	}
	return def.Name
}
