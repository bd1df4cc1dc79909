package benchtab

import (
	"bytes"
	"fmt"
	"io"
)

// marshal serializes v in format f. An empty indent keeps JSON compact; YAML
// is always block style and uses len(indent) spaces when indent is set.
func marshal(f Format, v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch f {
	case JSON:
		err = writeJSON(&buf, v, indent)
	case YAML:
		err = writeYAML(&buf, v, len(indent))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func unmarshal(f Format, r io.Reader, v any) error {
	switch f {
	case JSON:
		return readJSON(r, v)
	case YAML:
		return readYAML(r, v)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}
