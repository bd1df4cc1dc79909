package benchtab

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"
)

// Backend selects the table renderer. Both renderers draw the same cells;
// they differ in how they are bound to their destination.
type Backend string

const (
	// BackendAuto picks [BackendModern] for terminals and [BackendLegacy]
	// otherwise.
	BackendAuto Backend = "auto"
	// BackendModern uses tablewriter, which is bound to its destination when
	// it is created.
	BackendModern Backend = "modern"
	// BackendLegacy uses [Table], which receives its destination at draw
	// time.
	BackendLegacy Backend = "legacy"
)

var backends = []Backend{BackendAuto, BackendModern, BackendLegacy}

// String returns the backend name.
func (b Backend) String() string { return string(b) }

// Backends returns all backend names.
func Backends() []Backend {
	out := make([]Backend, len(backends))
	copy(out, backends)
	return out
}

// ParseBackend parses a backend name. The empty string selects
// [BackendAuto].
func ParseBackend(s string) (Backend, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return BackendAuto, nil
	}
	for _, b := range backends {
		if string(b) == name {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedBackend, s)
}

type tableBackend interface {
	draw(header []string, rows [][]string) error
}

// resolveBackend turns kind into a concrete backend for w. probe reports
// whether w supports the modern renderer and is only consulted for
// BackendAuto.
func resolveBackend(kind Backend, w io.Writer, probe func(io.Writer) bool) (Backend, error) {
	switch kind {
	case BackendModern, BackendLegacy:
		return kind, nil
	case BackendAuto, "":
		if probe != nil && probe(w) {
			return BackendModern, nil
		}
		return BackendLegacy, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedBackend, kind)
	}
}

func newTableBackend(kind Backend, w io.Writer, border BorderStyle, maxWidth int) tableBackend {
	if kind == BackendModern {
		return &modernBackend{dest: &captureWriter{w: w}}
	}
	return &legacyBackend{dest: w, border: border, maxWidth: maxWidth}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// modernBackend renders through tablewriter. tablewriter does not report
// write errors, so the destination records the first one.
type modernBackend struct {
	dest *captureWriter
}

func (b *modernBackend) draw(header []string, rows [][]string) error {
	b.dest.err = nil
	tw := tablewriter.NewWriter(b.dest)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	if len(header) > 0 {
		tw.SetHeader(header)
	}
	tw.AppendBulk(rows)
	tw.Render()
	return b.dest.err
}

type captureWriter struct {
	w   io.Writer
	err error
}

func (c *captureWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	if err != nil {
		c.err = err
	}
	return n, err
}

type legacyBackend struct {
	dest     io.Writer
	border   BorderStyle
	maxWidth int
}

func (b *legacyBackend) draw(header []string, rows [][]string) error {
	t := &Table{Header: header, Rows: rows, Border: b.border, MaxWidth: b.maxWidth}
	return t.Render(b.dest)
}
