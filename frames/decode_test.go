package frames_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/stache/frames"
	"github.com/byte4ever/stache/mustache"
)

// writeTemp creates a temporary file with content and
// returns its path.
func writeTemp(
	tb testing.TB,
	dir string,
	name string,
	content string,
) string {
	tb.Helper()

	pa := filepath.Join(dir, name)
	require.NoError(
		tb,
		os.WriteFile(pa, []byte(content), 0o600),
	)

	return pa
}

// renderWith renders src against a single frame.
func renderWith(
	tb testing.TB,
	src string,
	frame map[string]any,
) string {
	tb.Helper()

	tpl, err := mustache.Compile(src)
	require.NoError(tb, err)

	out, err := tpl.Render(frame)
	require.NoError(tb, err)

	return out
}

func TestLoadJSON_nested_values(t *testing.T) {
	t.Parallel()

	frame, err := frames.LoadJSON(strings.NewReader(
		`{"timeline":[{"date":"20130101","event_type":"signup"}],` +
			`"count":2,"ratio":0.5,"active":true}`,
	))
	require.NoError(t, err)

	got := renderWith(
		t,
		"{{#timeline}}{{date}}/{{event_type}}{{/timeline}} "+
			"{{count}} {{ratio}} {{active}}",
		frame,
	)
	assert.Equal(t, "20130101/signup 2 0.5 true", got)
}

func TestLoadJSON_invalid(t *testing.T) {
	t.Parallel()

	_, err := frames.LoadJSON(strings.NewReader(`{"a":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading json frame")
}

func TestLoadYAML_nested_values(t *testing.T) {
	t.Parallel()

	frame, err := frames.LoadYAML(strings.NewReader(
		"properties:\n" +
			"  - propertyName: plan\n" +
			"    propertyValue: pro\n" +
			"  - propertyName: seats\n" +
			"    propertyValue: 12\n" +
			"timeline: []\n",
	))
	require.NoError(t, err)

	got := renderWith(
		t,
		"{{#properties}}{{propertyName}}={{propertyValue}};{{/properties}}"+
			"{{^timeline}}none{{/timeline}}",
		frame,
	)
	assert.Equal(t, "plan=pro;seats=12;none", got)
}

func TestLoadYAML_empty_input(t *testing.T) {
	t.Parallel()

	frame, err := frames.LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.NotNil(t, frame)
	assert.Empty(t, frame)
}

func TestLoadYAML_not_a_mapping(t *testing.T) {
	t.Parallel()

	_, err := frames.LoadYAML(strings.NewReader("- a\n- b\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading yaml frame")
}

func TestLoadDotenv(t *testing.T) {
	t.Parallel()

	frame, err := frames.LoadDotenv(strings.NewReader(
		"# comment\nAPP=web\nQUOTED=\"a b\"\n",
	))
	require.NoError(t, err)
	assert.Equal(
		t,
		map[string]any{"APP": "web", "QUOTED": "a b"},
		frame,
	)
}

func TestLoadFile_dispatches_on_extension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{name: "data.json", content: `{"k":"json"}`},
		{name: "data.yaml", content: "k: yaml\n"},
		{name: "data.YML", content: "k: yml\n"},
		{name: "data.env", content: "k=env\n"},
	}

	for _, tt := range tests {
		pa := writeTemp(t, dir, tt.name, tt.content)

		frame, err := frames.LoadFile(pa)
		require.NoError(t, err, tt.name)
		assert.NotEmpty(t, frame["k"], tt.name)
	}
}

func TestLoadFile_unknown_extension(t *testing.T) {
	t.Parallel()

	pa := writeTemp(t, t.TempDir(), "data.toml", "k = 1\n")

	_, err := frames.LoadFile(pa)
	require.Error(t, err)
	assert.True(t, errors.Is(err, frames.ErrUnknownFormat))
}

func TestLoadFile_missing_file(t *testing.T) {
	t.Parallel()

	_, err := frames.LoadFile("/nonexistent/data.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading data file")
}

func TestLoadFile_reports_path_on_decode_error(t *testing.T) {
	t.Parallel()

	pa := writeTemp(t, t.TempDir(), "bad.json", "{")

	_, err := frames.LoadFile(pa)
	require.Error(t, err)
	assert.Contains(t, err.Error(), pa)
}
