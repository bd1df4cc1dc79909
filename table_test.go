package benchtab_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/benchtab"
)

func people(border benchtab.BorderStyle) *benchtab.Table {
	return &benchtab.Table{
		Header: []string{"Name", "Age"},
		Rows:   [][]string{{"Alice", "30"}, {"Bob", "25"}},
		Border: border,
	}
}

func lines(ls ...string) string {
	return strings.Join(ls, "\n") + "\n"
}

// --- Borders ---

func TestTableBorderRounded(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, people(benchtab.BorderRounded).Render(&buf))
	assert.Equal(t, lines(
		"╭───────┬─────╮",
		"│ Name  │ Age │",
		"├───────┼─────┤",
		"│ Alice │  30 │",
		"│ Bob   │  25 │",
		"╰───────┴─────╯",
	), buf.String())
}

func TestTableBorderASCII(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, people(benchtab.BorderASCII).Render(&buf))
	assert.Equal(t, lines(
		"+-------+-----+",
		"| Name  | Age |",
		"+-------+-----+",
		"| Alice |  30 |",
		"| Bob   |  25 |",
		"+-------+-----+",
	), buf.String())
}

func TestTableBorderNone(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, people(benchtab.BorderNone).Render(&buf))
	assert.Equal(t, lines(
		"Name   Age",
		"-----  ---",
		"Alice   30",
		"Bob     25",
	), buf.String())
}

func TestTableBorderHeavy(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, people(benchtab.BorderHeavy).Render(&buf))
	out := buf.String()
	assert.Contains(t, out, "┏")
	assert.Contains(t, out, "┃")
	assert.Contains(t, out, "━")
	assert.Contains(t, out, "╋")
}

func TestTableBorderDouble(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, people(benchtab.BorderDouble).Render(&buf))
	out := buf.String()
	assert.Contains(t, out, "╔")
	assert.Contains(t, out, "║")
	assert.Contains(t, out, "═")
	assert.Contains(t, out, "╬")
}

func TestTableUnknownBorder(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := people(benchtab.BorderStyle(99)).Render(&buf)
	require.ErrorIs(t, err, benchtab.ErrUnsupportedFormat)
	assert.Empty(t, buf.String())
}

func TestParseBorder(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    benchtab.BorderStyle
		wantErr bool
	}{
		"empty":   {input: "", want: benchtab.BorderRounded},
		"rounded": {input: "rounded", want: benchtab.BorderRounded},
		"none":    {input: "none", want: benchtab.BorderNone},
		"ascii":   {input: "ASCII", want: benchtab.BorderASCII},
		"heavy":   {input: " heavy ", want: benchtab.BorderHeavy},
		"double":  {input: "double", want: benchtab.BorderDouble},
		"unknown": {input: "dotted", wantErr: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := benchtab.ParseBorder(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, benchtab.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, must(benchtab.ParseBorder(got.String())))
		})
	}
}

func TestBorderStyleStringUnknown(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "BorderStyle(42)", benchtab.BorderStyle(42).String())
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// --- Layout ---

func TestTableNoHeader(t *testing.T) {
	t.Parallel()
	tbl := &benchtab.Table{Rows: [][]string{{"Alice", "30"}}, Border: benchtab.BorderASCII}
	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))
	assert.Equal(t, lines(
		"+-------+----+",
		"| Alice | 30 |",
		"+-------+----+",
	), buf.String())
}

func TestTableRaggedRows(t *testing.T) {
	t.Parallel()
	tbl := &benchtab.Table{
		Header: []string{"a"},
		Rows:   [][]string{{"x"}, {"y", "z"}},
		Border: benchtab.BorderASCII,
	}
	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))
	assert.Equal(t, lines(
		"+---+---+",
		"| a |   |",
		"+---+---+",
		"| x |   |",
		"| y | z |",
		"+---+---+",
	), buf.String())
}

func TestTableEmpty(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, (&benchtab.Table{}).Render(&buf))
	assert.Empty(t, buf.String())
}

func TestTableNumericColumnsRightAligned(t *testing.T) {
	t.Parallel()
	tbl := &benchtab.Table{
		Header: []string{"mixed", "num"},
		Rows:   [][]string{{"1", "1.5"}, {"abc", ""}, {"22", "-10"}},
		Border: benchtab.BorderNone,
	}
	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))
	assert.Equal(t, lines(
		"mixed  num",
		"-----  ---",
		"1      1.5",
		"abc",
		"22     -10",
	), buf.String())
}

func TestTableWideCharacters(t *testing.T) {
	t.Parallel()
	tbl := &benchtab.Table{
		Header: []string{"name"},
		Rows:   [][]string{{"你好"}, {"ab"}},
		Border: benchtab.BorderASCII,
	}
	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))
	assert.Contains(t, buf.String(), "| 你好 |")
	assert.Contains(t, buf.String(), "| ab   |")
}

// --- Truncation ---

func TestTableTruncated(t *testing.T) {
	t.Parallel()
	tbl := &benchtab.Table{
		Header:   []string{"Name", "Age"},
		Rows:     [][]string{{"Alexander", "30"}},
		Border:   benchtab.BorderASCII,
		MaxWidth: 4,
	}
	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))
	out := buf.String()
	assert.Contains(t, out, "A...")
	assert.Contains(t, out, "30")
	assert.NotContains(t, out, "Alexander")
}

func TestTableTruncatedTinyWidth(t *testing.T) {
	t.Parallel()
	tbl := &benchtab.Table{
		Rows:     [][]string{{"Hello"}},
		Border:   benchtab.BorderNone,
		MaxWidth: 2,
	}
	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))
	assert.Equal(t, "He\n", buf.String())
}

// --- Write errors ---

func TestTableWriteErrorPlain(t *testing.T) {
	t.Parallel()
	// Header, separator and two rows.
	for n := range 4 {
		err := people(benchtab.BorderNone).Render(&failAfterN{n: n})
		require.ErrorIs(t, err, errWrite, "expected error at n=%d", n)
	}
}

func TestTableWriteErrorBordered(t *testing.T) {
	t.Parallel()
	// Top, header, separator, two rows and bottom.
	for n := range 6 {
		err := people(benchtab.BorderRounded).Render(&failAfterN{n: n})
		require.ErrorIs(t, err, errWrite, "expected error at n=%d", n)
	}
}
