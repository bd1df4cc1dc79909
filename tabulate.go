package benchtab

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/PaesslerAG/jsonpath"
	"github.com/itchyny/gojq"
)

// Cell is one named value of a [Row].
type Cell struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Row is an ordered sequence of cells. Names are unique within a row, but
// rows of the same result may carry different column sets.
type Row struct {
	Cells []Cell `json:"cells" yaml:"cells"`
}

// Names returns the cell names in stored order.
func (r Row) Names() []string {
	names := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		names[i] = c.Name
	}
	return names
}

// Get returns the value of the named cell.
func (r Row) Get(name string) (string, bool) {
	for _, c := range r.Cells {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// TabularResult is the flat projection of a document.
type TabularResult struct {
	Rows []Row `json:"rows" yaml:"rows"`
}

// Tabulator turns a document into a [TabularResult] according to a
// [Definition].
type Tabulator interface {
	Tabulate(doc *SuiteDocument, def *Definition, params Parameters) (*TabularResult, error)
}

type pathEval func(ctx context.Context, value any) (any, error)

type tabulator struct {
	mu    sync.Mutex
	jq    map[string]*gojq.Code
	paths map[string]pathEval
}

// NewTabulator returns the default [Tabulator]. Compiled jq programs and
// JSONPath expressions are cached for the lifetime of the tabulator, which
// is safe to share.
func NewTabulator() Tabulator {
	return &tabulator{
		jq:    make(map[string]*gojq.Code),
		paths: make(map[string]pathEval),
	}
}

type compiledColumn struct {
	Column
	jq   *gojq.Code
	path pathEval
}

func (c compiledColumn) expr() string {
	if c.jq != nil {
		return c.Expr
	}
	return c.Path
}

func (t *tabulator) Tabulate(doc *SuiteDocument, def *Definition, params Parameters) (*TabularResult, error) {
	if err := def.Validate(); err != nil {
		return nil, &TabulationError{Err: err}
	}
	resolved, err := def.resolve(params)
	if err != nil {
		return nil, err
	}

	names, values := jqVariables(params)
	rowsCode, err := t.compileJQ(resolved.Rows, names)
	if err != nil {
		return nil, &TabulationError{Expr: resolved.Rows, Err: err}
	}
	columns := make([]compiledColumn, len(resolved.Columns))
	for i, c := range resolved.Columns {
		cc := compiledColumn{Column: c}
		if c.Expr != "" {
			cc.jq, err = t.compileJQ(c.Expr, names)
		} else {
			cc.path, err = t.compilePath(c.Path)
		}
		if err != nil {
			return nil, &TabulationError{Column: c.Name, Expr: cc.expr(), Err: err}
		}
		columns[i] = cc
	}

	input, err := doc.tree()
	if err != nil {
		return nil, &TabulationError{Err: err}
	}
	contexts, err := runAll(rowsCode, input, values)
	if err != nil {
		return nil, &TabulationError{Expr: resolved.Rows, Err: err}
	}

	result := &TabularResult{Rows: make([]Row, 0, len(contexts))}
	for _, rowCtx := range contexts {
		row := Row{Cells: make([]Cell, 0, len(columns))}
		for _, c := range columns {
			v, ok, err := c.eval(rowCtx, values)
			if err != nil {
				return nil, &TabulationError{Column: c.Name, Expr: c.expr(), Err: err}
			}
			if !ok {
				continue
			}
			row.Cells = append(row.Cells, Cell{Name: c.Name, Value: cellText(v, c.Format)})
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

func (t *tabulator) compileJQ(expr string, vars []string) (*gojq.Code, error) {
	key := expr + "\x00" + strings.Join(vars, ",")
	t.mu.Lock()
	defer t.mu.Unlock()
	if code, ok := t.jq[key]; ok {
		return code, nil
	}
	parsed, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: parse jq: %w", ErrInvalidDefinition, err)
	}
	code, err := gojq.Compile(parsed, gojq.WithVariables(vars))
	if err != nil {
		return nil, fmt.Errorf("%w: compile jq: %w", ErrInvalidDefinition, err)
	}
	t.jq[key] = code
	return code, nil
}

func (t *tabulator) compilePath(path string) (pathEval, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if eval, ok := t.paths[path]; ok {
		return eval, nil
	}
	compiled, err := jsonpath.New(normalizePath(path))
	if err != nil {
		return nil, fmt.Errorf("%w: jsonpath: %w", ErrInvalidDefinition, err)
	}
	eval := pathEval(compiled)
	t.paths[path] = eval
	return eval, nil
}

// normalizePath accepts "subject.name" as shorthand for "$.subject.name".
func normalizePath(path string) string {
	p := strings.TrimSpace(path)
	switch {
	case strings.HasPrefix(p, "$"), strings.HasPrefix(p, "@"):
		return p
	case strings.HasPrefix(p, "["), strings.HasPrefix(p, "."):
		return "$" + p
	default:
		return "$." + p
	}
}

// eval returns the first value of the column expression. ok is false when
// the expression produced nothing: no output, null, or a JSONPath miss.
// Every JSONPath evaluation error counts as a miss.
func (c compiledColumn) eval(input any, values []any) (any, bool, error) {
	if c.jq != nil {
		iter := c.jq.Run(input, values...)
		out, more := iter.Next()
		if !more || out == nil {
			return nil, false, nil
		}
		if e, isErr := out.(error); isErr {
			if halt, isHalt := e.(*gojq.HaltError); isHalt && halt.Value() == nil {
				return nil, false, nil
			}
			return nil, false, e
		}
		return out, true, nil
	}
	out, err := c.path(context.Background(), input)
	if err != nil || out == nil {
		return nil, false, nil
	}
	if list, isList := out.([]any); isList && len(list) == 0 {
		return nil, false, nil
	}
	return out, true, nil
}

func runAll(code *gojq.Code, input any, values []any) ([]any, error) {
	var out []any
	iter := code.Run(input, values...)
	for {
		v, ok := iter.Next()
		if !ok {
			return out, nil
		}
		if err, isErr := v.(error); isErr {
			if halt, isHalt := err.(*gojq.HaltError); isHalt && halt.Value() == nil {
				return out, nil
			}
			return nil, err
		}
		out = append(out, v)
	}
}

// jqVariables binds every parameter with an identifier name as $name. Names
// are sorted so compiled programs can be cached.
func jqVariables(params Parameters) ([]string, []any) {
	names := make([]string, 0, len(params))
	for name := range params {
		if isIdent(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	vars := make([]string, len(names))
	values := make([]any, len(names))
	for i, name := range names {
		vars[i] = "$" + name
		values[i] = jqValue(params[name])
	}
	return vars, values
}

// jqValue converts Go integers to the int form gojq expects.
func jqValue(v any) any {
	switch x := v.(type) {
	case int64:
		return int(x)
	case int32:
		return int(x)
	case float32:
		return float64(x)
	default:
		return v
	}
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func cellText(v any, format string) string {
	if format != "" {
		return fmt.Sprintf(format, v)
	}
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	default:
		buf, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(buf)
	}
}
