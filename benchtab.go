package benchtab

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Sentinel errors for programmatic error handling.
var (
	ErrInvalidDefinition  = errors.New("invalid definition")
	ErrMissingParameter   = errors.New("missing parameter")
	ErrInvalidStyle       = errors.New("invalid style")
	ErrUnsupportedBackend = errors.New("unsupported backend")
	ErrUnsupportedFormat  = errors.New("unsupported format")
)

// TabulationError reports a definition that could not be applied to a
// document. Column and Expr identify the failing part when known.
type TabulationError struct {
	Column string
	Expr   string
	Err    error
}

func (e *TabulationError) Error() string {
	switch {
	case e.Column != "" && e.Expr != "":
		return fmt.Sprintf("tabulate column %q (%s): %v", e.Column, e.Expr, e.Err)
	case e.Column != "":
		return fmt.Sprintf("tabulate column %q: %v", e.Column, e.Err)
	case e.Expr != "":
		return fmt.Sprintf("tabulate rows (%s): %v", e.Expr, e.Err)
	default:
		return fmt.Sprintf("tabulate: %v", e.Err)
	}
}

func (e *TabulationError) Unwrap() error { return e.Err }

// StyleError reports a named style that could not be registered on a
// [Console].
type StyleError struct {
	Name string
	Err  error
}

func (e *StyleError) Error() string {
	return fmt.Sprintf("register style %q: %v", e.Name, e.Err)
}

func (e *StyleError) Unwrap() error { return e.Err }

// Format is a serialization format for documents, definitions and
// diagnostic dumps.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

var formats = []Format{JSON, YAML}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format string. "yml" is accepted as YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

func formatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// Parameters are substituted into a [Definition] during tabulation. Values
// should be scalars: strings, numbers or booleans.
type Parameters map[string]any

// RenderConfig holds the per-call options of [Generator.Generate].
type RenderConfig struct {
	// Exclude names columns dropped from every row.
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	// Debug emits the document and the tabular result to the diagnostic sink.
	Debug       bool   `json:"debug,omitempty" yaml:"debug,omitempty"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}
