package benchtab

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Definition maps a suite document onto named columns.
//
// Rows is a jq expression evaluated against the whole document; each value
// it yields becomes the context of one row. Each [Column] is then evaluated
// against that context. Strings may reference parameters as {{ .name }};
// jq expressions may also use them as $name.
type Definition struct {
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Rows    string   `json:"rows,omitempty" yaml:"rows,omitempty"`
	Columns []Column `json:"columns" yaml:"columns"`
}

// Column produces one cell per row. Exactly one of Expr (jq) or Path
// (JSONPath) must be set. Format, when set, is a fmt verb string applied to
// the raw value.
//
// A Path that fails to evaluate against a row, such as an unknown key or an
// out of range index, is a miss and the cell is omitted. Only a Path that
// fails to compile is an error.
type Column struct {
	Name   string `json:"name" yaml:"name"`
	Expr   string `json:"expr,omitempty" yaml:"expr,omitempty"`
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

const defaultRowsExpr = "."

// Validate checks the structure of the definition without evaluating any
// expression.
func (d *Definition) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: nil definition", ErrInvalidDefinition)
	}
	seen := make(map[string]struct{}, len(d.Columns))
	for i, c := range d.Columns {
		if c.Name == "" {
			return fmt.Errorf("%w: column %d has no name", ErrInvalidDefinition, i)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("%w: duplicate column %q", ErrInvalidDefinition, c.Name)
		}
		seen[c.Name] = struct{}{}
		switch {
		case c.Expr == "" && c.Path == "":
			return fmt.Errorf("%w: column %q needs expr or path", ErrInvalidDefinition, c.Name)
		case c.Expr != "" && c.Path != "":
			return fmt.Errorf("%w: column %q sets both expr and path", ErrInvalidDefinition, c.Name)
		}
	}
	return nil
}

// resolve returns a copy with every placeholder expanded.
func (d *Definition) resolve(params Parameters) (*Definition, error) {
	rows := d.Rows
	if strings.TrimSpace(rows) == "" {
		rows = defaultRowsExpr
	}
	rows, err := expandParams(rows, params)
	if err != nil {
		return nil, &TabulationError{Expr: d.Rows, Err: err}
	}
	out := &Definition{Name: d.Name, Rows: rows, Columns: make([]Column, len(d.Columns))}
	for i, c := range d.Columns {
		for _, field := range []*string{&c.Expr, &c.Path, &c.Format} {
			expanded, err := expandParams(*field, params)
			if err != nil {
				return nil, &TabulationError{Column: c.Name, Expr: *field, Err: err}
			}
			*field = expanded
		}
		out.Columns[i] = c
	}
	return out, nil
}

// LoadDefinition reads a definition from a .yaml, .yml, .json or .hcl file.
// Parameters are only consulted for HCL, where they are available to
// expressions as param.<name>; other formats expand placeholders during
// tabulation.
func LoadDefinition(path string, params Parameters) (*Definition, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDefinition(src, path, params)
}

// ParseDefinition parses definition source. The filename extension selects
// the syntax.
func ParseDefinition(src []byte, filename string, params Parameters) (*Definition, error) {
	var def *Definition
	var err error
	if strings.EqualFold(filepath.Ext(filename), ".hcl") {
		def, err = parseHCLDefinition(src, filename, params)
	} else {
		var f Format
		if f, err = formatFromPath(filename); err != nil {
			return nil, err
		}
		def = &Definition{}
		if err = unmarshal(f, bytes.NewReader(src), def); err != nil {
			err = fmt.Errorf("%w: %s: %w", ErrInvalidDefinition, filename, err)
		}
	}
	if err != nil {
		return nil, err
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return def, nil
}

type hclDefinition struct {
	Name    string      `hcl:"name,optional"`
	Rows    string      `hcl:"rows,optional"`
	Columns []hclColumn `hcl:"column,block"`
}

type hclColumn struct {
	Name   string `hcl:"name,label"`
	Expr   string `hcl:"expr,optional"`
	Path   string `hcl:"path,optional"`
	Format string `hcl:"format,optional"`
}

func parseHCLDefinition(src []byte, filename string, params Parameters) (*Definition, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", ErrInvalidDefinition, filename, diags)
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{"param": paramObject(params)},
	}
	var parsed hclDefinition
	if diags := gohcl.DecodeBody(file.Body, evalCtx, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to decode %s: %w", ErrInvalidDefinition, filename, diags)
	}

	def := &Definition{Name: parsed.Name, Rows: parsed.Rows, Columns: make([]Column, len(parsed.Columns))}
	for i, c := range parsed.Columns {
		def.Columns[i] = Column(c)
	}
	return def, nil
}

func paramObject(params Parameters) cty.Value {
	if len(params) == 0 {
		return cty.EmptyObjectVal
	}
	attrs := make(map[string]cty.Value, len(params))
	for name, v := range params {
		attrs[name] = ctyScalar(v)
	}
	return cty.ObjectVal(attrs)
}

func ctyScalar(v any) cty.Value {
	switch x := v.(type) {
	case string:
		return cty.StringVal(x)
	case bool:
		return cty.BoolVal(x)
	case int:
		return cty.NumberIntVal(int64(x))
	case int64:
		return cty.NumberIntVal(x)
	case float64:
		return cty.NumberFloatVal(x)
	case nil:
		return cty.NullVal(cty.String)
	default:
		return cty.StringVal(fmt.Sprint(x))
	}
}
