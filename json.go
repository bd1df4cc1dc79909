package benchtab

import (
	"encoding/json"
	"io"
)

func writeJSON(w io.Writer, v any, indent string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(v)
}

func readJSON(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}
