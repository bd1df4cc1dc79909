package benchtab

// OrderedRow maps column names to values and remembers the order in which
// names were first set.
type OrderedRow struct {
	keys   []string
	values map[string]string
}

func newOrderedRow(size int) OrderedRow {
	return OrderedRow{keys: make([]string, 0, size), values: make(map[string]string, size)}
}

// Set stores value under name. Setting an existing name keeps its position.
func (r *OrderedRow) Set(name, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.values[name] = value
}

// Get returns the value stored under name.
func (r OrderedRow) Get(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Keys returns the names in insertion order.
func (r OrderedRow) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Values returns the values in insertion order.
func (r OrderedRow) Values() []string {
	out := make([]string, len(r.keys))
	for i, k := range r.keys {
		out[i] = r.values[k]
	}
	return out
}

// Len returns the number of names in the row.
func (r OrderedRow) Len() int { return len(r.keys) }

// ExtractRows converts a result into ordered rows, dropping every cell whose
// name is in exclude.
//
// The returned header is the key set of the last row, not the union of all
// rows. Columns that only appear in earlier rows are therefore not labelled.
func ExtractRows(result *TabularResult, exclude []string) ([]string, []OrderedRow) {
	if result == nil || len(result.Rows) == 0 {
		return nil, nil
	}
	excluded := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		excluded[name] = struct{}{}
	}

	rows := make([]OrderedRow, len(result.Rows))
	for i, r := range result.Rows {
		row := newOrderedRow(len(r.Cells))
		for _, c := range r.Cells {
			if _, skip := excluded[c.Name]; skip {
				continue
			}
			row.Set(c.Name, c.Value)
		}
		rows[i] = row
	}
	return rows[len(rows)-1].Keys(), rows
}

// Align lays rows out in header order. A name missing from a row yields an
// empty cell. With an empty header each row contributes its own values
// positionally, padded to the widest row.
func Align(header []string, rows []OrderedRow) [][]string {
	out := make([][]string, len(rows))
	if len(header) == 0 {
		width := 0
		for _, r := range rows {
			width = max(width, r.Len())
		}
		for i, r := range rows {
			cells := make([]string, width)
			copy(cells, r.Values())
			out[i] = cells
		}
		return out
	}
	for i, r := range rows {
		cells := make([]string, len(header))
		for j, name := range header {
			cells[j], _ = r.Get(name)
		}
		out[i] = cells
	}
	return out
}
