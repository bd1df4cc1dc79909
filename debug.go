package benchtab

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Stage identifies when a diagnostic event was produced.
type Stage int

const (
	StagePreTabulation Stage = iota
	StagePostTabulation
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StagePreTabulation:
		return "pre-tabulation"
	case StagePostTabulation:
		return "post-tabulation"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// DiagnosticEvent carries one serialized dump.
type DiagnosticEvent struct {
	Stage  Stage
	Label  string
	Format Format
	Body   []byte
}

// DiagnosticSink receives diagnostic events. It is kept apart from the
// [Console] so dumps never interleave with the rendered table.
type DiagnosticSink interface {
	Emit(ev DiagnosticEvent) error
}

// SinkFunc adapts a function to [DiagnosticSink].
type SinkFunc func(ev DiagnosticEvent) error

// Emit calls f(ev).
func (f SinkFunc) Emit(ev DiagnosticEvent) error { return f(ev) }

// ConsoleSink writes each event as a block framed by marker lines:
//
//	>>> Suite document (json)
//	{...}
//	<<< Suite document
type ConsoleSink struct {
	w io.Writer
}

// NewConsoleSink returns a sink writing to w. A nil w writes to os.Stderr.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	if w == nil {
		w = os.Stderr
	}
	return &ConsoleSink{w: w}
}

// Emit writes the framed block.
func (s *ConsoleSink) Emit(ev DiagnosticEvent) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, ">>> %s (%s)\n", ev.Label, ev.Format)
	buf.Write(ev.Body)
	if len(ev.Body) > 0 && ev.Body[len(ev.Body)-1] != '\n' {
		buf.WriteByte('\n')
	}
	fmt.Fprintf(&buf, "<<< %s\n", ev.Label)
	_, err := s.w.Write(buf.Bytes())
	return err
}

// LogSink records each event as a debug-level slog record.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink returns a sink logging to logger. A nil logger uses
// slog.Default().
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// Emit logs the event. It never fails.
func (s *LogSink) Emit(ev DiagnosticEvent) error {
	s.logger.Debug("diagnostic",
		slog.String("stage", ev.Stage.String()),
		slog.String("label", ev.Label),
		slog.String("format", ev.Format.String()),
		slog.String("body", string(bytes.TrimRight(ev.Body, "\n"))),
	)
	return nil
}
