package benchtab

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// ColorMode determines when styled output uses ANSI sequences.
type ColorMode int

const (
	// ColorAuto detects color support from the destination and environment.
	ColorAuto ColorMode = iota
	// ColorAlways forces colored output.
	ColorAlways
	// ColorNever strips all styling.
	ColorNever
)

// ParseColorMode parses "auto", "always" or "never". The empty string
// selects [ColorAuto].
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return 0, fmt.Errorf("%w: color mode %q", ErrUnsupportedFormat, s)
	}
}

// Style is a named inline text style. Colors are ANSI names ("white",
// "bright-red"), ANSI numbers ("0"-"255") or hex ("#ff8800"). Empty colors
// leave the terminal default.
type Style struct {
	Foreground string
	Background string
	Bold       bool
	Italic     bool
	Underline  bool
}

var ansiNames = map[string]int{
	"black": 0, "red": 1, "green": 2, "yellow": 3,
	"blue": 4, "magenta": 5, "cyan": 6, "white": 7,
	"bright-black": 8, "bright-red": 9, "bright-green": 10, "bright-yellow": 11,
	"bright-blue": 12, "bright-magenta": 13, "bright-cyan": 14, "bright-white": 15,
}

// Console is an output stream together with the named styles registered on
// it. Markup of the form <name>text</name> is expanded for registered names
// and passed through literally otherwise.
//
// A Console is not safe for concurrent use.
type Console struct {
	w      io.Writer
	out    *termenv.Output
	styles map[string]Style
}

// ConsoleOption configures a [Console].
type ConsoleOption func(*consoleOptions)

type consoleOptions struct {
	mode    ColorMode
	profile *termenv.Profile
}

// WithColorMode sets the color mode. NO_COLOR in the environment always
// wins.
func WithColorMode(mode ColorMode) ConsoleOption {
	return func(o *consoleOptions) { o.mode = mode }
}

// WithProfile pins the termenv color profile, bypassing detection.
func WithProfile(p termenv.Profile) ConsoleOption {
	return func(o *consoleOptions) { o.profile = &p }
}

// NewConsole wraps w. A nil w writes to os.Stdout.
func NewConsole(w io.Writer, opts ...ConsoleOption) *Console {
	if w == nil {
		w = os.Stdout
	}
	var o consoleOptions
	for _, opt := range opts {
		opt(&o)
	}
	if os.Getenv("NO_COLOR") != "" {
		o.mode = ColorNever
	}

	var profile termenv.Profile
	switch {
	case o.profile != nil:
		profile = *o.profile
	case o.mode == ColorNever:
		profile = termenv.Ascii
	default:
		profile = termenv.NewOutput(w).EnvColorProfile()
		if o.mode == ColorAlways && profile == termenv.Ascii {
			profile = termenv.ANSI256
		}
	}

	return &Console{
		w:      w,
		out:    termenv.NewOutput(w, termenv.WithProfile(profile)),
		styles: make(map[string]Style),
	}
}

// Writer returns the underlying stream.
func (c *Console) Writer() io.Writer { return c.w }

// Profile returns the color profile in use.
func (c *Console) Profile() termenv.Profile { return c.out.Profile }

// SetStyle registers s under name, replacing any previous style of that
// name.
func (c *Console) SetStyle(name string, s Style) error {
	if !validStyleName(name) {
		return &StyleError{Name: name, Err: fmt.Errorf("%w: name must match [a-z][a-z0-9_-]*", ErrInvalidStyle)}
	}
	for _, color := range []string{s.Foreground, s.Background} {
		if _, ok := colorCode(color); !ok {
			return &StyleError{Name: name, Err: fmt.Errorf("%w: unknown color %q", ErrInvalidStyle, color)}
		}
	}
	c.styles[name] = s
	return nil
}

// HasStyle reports whether name is registered.
func (c *Console) HasStyle(name string) bool {
	_, ok := c.styles[name]
	return ok
}

// Format expands style markup in s.
func (c *Console) Format(s string) string {
	var sb strings.Builder
	rest := s
	for {
		open := strings.IndexByte(rest, '<')
		if open < 0 {
			sb.WriteString(rest)
			return sb.String()
		}
		end := strings.IndexByte(rest[open:], '>')
		if end < 0 {
			sb.WriteString(rest)
			return sb.String()
		}
		name := rest[open+1 : open+end]
		style, ok := c.styles[name]
		closing := "</" + name + ">"
		body := rest[open+end+1:]
		stop := strings.Index(body, closing)
		if !ok || stop < 0 {
			sb.WriteString(rest[:open+1])
			rest = rest[open+1:]
			continue
		}
		sb.WriteString(rest[:open])
		sb.WriteString(c.apply(style, body[:stop]))
		rest = body[stop+len(closing):]
	}
}

// Writeln expands markup in s and writes it followed by a newline.
func (c *Console) Writeln(s string) error {
	_, err := io.WriteString(c.w, c.Format(s)+"\n")
	return err
}

func (c *Console) apply(s Style, text string) string {
	if c.out.Profile == termenv.Ascii || s == (Style{}) {
		return text
	}
	st := c.out.String(text)
	if code, _ := colorCode(s.Foreground); code != "" {
		st = st.Foreground(c.out.Color(code))
	}
	if code, _ := colorCode(s.Background); code != "" {
		st = st.Background(c.out.Color(code))
	}
	if s.Bold {
		st = st.Bold()
	}
	if s.Italic {
		st = st.Italic()
	}
	if s.Underline {
		st = st.Underline()
	}
	return st.String()
}

// colorCode converts a color name to the form termenv parses. The empty
// color is valid and yields "".
func colorCode(color string) (string, bool) {
	color = strings.ToLower(strings.TrimSpace(color))
	if color == "" {
		return "", true
	}
	if n, ok := ansiNames[color]; ok {
		return strconv.Itoa(n), true
	}
	if strings.HasPrefix(color, "#") {
		if len(color) != 7 {
			return "", false
		}
		if _, err := strconv.ParseUint(color[1:], 16, 32); err != nil {
			return "", false
		}
		return color, true
	}
	if n, err := strconv.Atoi(color); err == nil && n >= 0 && n <= 255 {
		return color, true
	}
	return "", false
}

func validStyleName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case i > 0 && (r >= '0' && r <= '9' || r == '_' || r == '-'):
		default:
			return false
		}
	}
	return true
}
