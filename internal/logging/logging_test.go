package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    Format
		wantErr require.ErrorAssertionFunc
	}{
		"empty": {input: "", want: FormatText, wantErr: require.NoError},
		"text":  {input: "text", want: FormatText, wantErr: require.NoError},
		"json":  {input: " JSON ", want: FormatJSON, wantErr: require.NoError},
		"xml":   {input: "xml", want: "", wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseFormat(tt.input)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLevels(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := New(false, &buf, FormatText)
	logger.Debug("hidden")
	logger.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")

	buf.Reset()
	logger = New(true, &buf, FormatText)
	logger.Debug("visible")
	assert.Contains(t, buf.String(), "level=DEBUG")
}

func TestNewJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	New(false, &buf, FormatJSON).Info("hello", "rows", 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, float64(2), rec["rows"])
}

func TestSetupInstallsDefault(t *testing.T) {
	orig := slog.Default()
	t.Cleanup(func() { slog.SetDefault(orig) })

	var buf bytes.Buffer
	logger := Setup(false, &buf, FormatText)
	slog.Info("via default")
	assert.Same(t, logger, slog.Default())
	assert.Contains(t, buf.String(), "via default")
}
