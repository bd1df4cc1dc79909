package benchtab_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"

	"github.com/bjaus/benchtab"
)

func result(rows ...[]benchtab.Cell) *benchtab.TabularResult {
	r := &benchtab.TabularResult{}
	for _, cells := range rows {
		r.Rows = append(r.Rows, benchtab.Row{Cells: cells})
	}
	return r
}

func cells(kv ...string) []benchtab.Cell {
	out := make([]benchtab.Cell, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, benchtab.Cell{Name: kv[i], Value: kv[i+1]})
	}
	return out
}

func TestOrderedRowKeepsInsertionOrder(t *testing.T) {
	t.Parallel()
	var r benchtab.OrderedRow
	r.Set("b", "1")
	r.Set("a", "2")
	r.Set("b", "3")

	assert.Equal(t, []string{"b", "a"}, r.Keys())
	assert.Equal(t, []string{"3", "2"}, r.Values())
	assert.Equal(t, 2, r.Len())
	v, ok := r.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
	_, ok = r.Get("c")
	assert.False(t, ok)
}

func TestExtractRows(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		result     *benchtab.TabularResult
		exclude    []string
		wantHeader []string
		wantCells  [][]string
	}{
		"header from last row": {
			result:     result(cells("a", "1", "b", "2"), cells("a", "3", "c", "4")),
			wantHeader: []string{"a", "c"},
			wantCells:  [][]string{{"1", ""}, {"3", "4"}},
		},
		"exclude": {
			result:     result(cells("a", "1", "b", "2")),
			exclude:    []string{"b"},
			wantHeader: []string{"a"},
			wantCells:  [][]string{{"1"}},
		},
		"exclude unknown name": {
			result:     result(cells("a", "1")),
			exclude:    []string{"zzz"},
			wantHeader: []string{"a"},
			wantCells:  [][]string{{"1"}},
		},
		"exclude everything": {
			result:    result(cells("a", "1"), cells("a", "2")),
			exclude:   []string{"a"},
			wantCells: [][]string{{}, {}},
		},
		"empty last row is positional": {
			result:    result(cells("a", "1", "b", "2"), cells()),
			wantCells: [][]string{{"1", "2"}, {"", ""}},
		},
		"no rows": {
			result: &benchtab.TabularResult{},
		},
		"nil result": {},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			header, rows := benchtab.ExtractRows(tt.result, tt.exclude)
			if diff := cmp.Diff(tt.wantHeader, header, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("header mismatch (-want +got):\n%s", diff)
			}
			got := benchtab.Align(header, rows)
			if len(tt.wantCells) == 0 {
				assert.Empty(t, got)
				return
			}
			if diff := cmp.Diff(tt.wantCells, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("cells mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractRowsNeverKeepsExcluded(t *testing.T) {
	t.Parallel()
	res := result(
		cells("subject", "md5", "mean", "3", "revs", "100"),
		cells("subject", "sha1", "revs", "100"),
		cells("revs", "200", "mean", "5"),
	)
	header, rows := benchtab.ExtractRows(res, []string{"revs"})
	assert.NotContains(t, header, "revs")
	for _, r := range rows {
		assert.NotContains(t, r.Keys(), "revs")
	}
	assert.Equal(t, []string{"mean"}, header)
}
