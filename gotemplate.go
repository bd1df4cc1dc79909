package benchtab

import (
	"fmt"
	"strings"
	"text/template"
)

// expandParams substitutes {{ .name }} placeholders in s with parameter
// values. Strings without "{{" are returned unchanged.
func expandParams(s string, params Parameters) (string, error) {
	if !strings.Contains(s, "{{") {
		return s, nil
	}
	tmpl, err := template.New("").Option("missingkey=error").Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidDefinition, err)
	}
	data := map[string]any(params)
	if data == nil {
		data = map[string]any{}
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("%w: %s", ErrMissingParameter, err)
	}
	return sb.String(), nil
}
