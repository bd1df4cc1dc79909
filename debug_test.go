package benchtab_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/benchtab"
)

func TestConsoleSinkFraming(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		body string
		want string
	}{
		"trailing newline": {
			body: "{\"a\":1}\n",
			want: ">>> Table result (json)\n{\"a\":1}\n<<< Table result\n",
		},
		"no trailing newline": {
			body: "{\"a\":1}",
			want: ">>> Table result (json)\n{\"a\":1}\n<<< Table result\n",
		},
		"empty body": {
			want: ">>> Table result (json)\n<<< Table result\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			sink := benchtab.NewConsoleSink(&buf)
			err := sink.Emit(benchtab.DiagnosticEvent{
				Stage:  benchtab.StagePostTabulation,
				Label:  benchtab.LabelResult,
				Format: benchtab.JSON,
				Body:   []byte(tt.body),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestConsoleSinkWriteError(t *testing.T) {
	t.Parallel()
	sink := benchtab.NewConsoleSink(errWriter{})
	err := sink.Emit(benchtab.DiagnosticEvent{Label: "x", Format: benchtab.YAML})
	require.ErrorIs(t, err, errWrite)
}

func TestLogSink(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sink := benchtab.NewLogSink(logger)

	err := sink.Emit(benchtab.DiagnosticEvent{
		Stage:  benchtab.StagePreTabulation,
		Label:  benchtab.LabelDocument,
		Format: benchtab.YAML,
		Body:   []byte("tag: v1\n"),
	})
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "diagnostic", rec["msg"])
	assert.Equal(t, "pre-tabulation", rec["stage"])
	assert.Equal(t, benchtab.LabelDocument, rec["label"])
	assert.Equal(t, "yaml", rec["format"])
	assert.Equal(t, "tag: v1", rec["body"])
}

func TestLogSinkBelowLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	require.NoError(t, benchtab.NewLogSink(logger).Emit(benchtab.DiagnosticEvent{Label: "x"}))
	assert.Empty(t, buf.String())
}

func TestSinkFunc(t *testing.T) {
	t.Parallel()
	var got []string
	sink := benchtab.SinkFunc(func(ev benchtab.DiagnosticEvent) error {
		got = append(got, ev.Stage.String()+":"+ev.Label)
		return nil
	})
	require.NoError(t, sink.Emit(benchtab.DiagnosticEvent{Stage: benchtab.StagePostTabulation, Label: "r"}))
	assert.Equal(t, []string{"post-tabulation:r"}, got)
}

func TestStageString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "pre-tabulation", benchtab.StagePreTabulation.String())
	assert.Equal(t, "post-tabulation", benchtab.StagePostTabulation.String())
	assert.Equal(t, "Stage(7)", benchtab.Stage(7).String())
}
