package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	f, err := Parse([]byte(`
name: pair
description: one unit, one token
markers:
  - open: "1:1"
  - token: "1:2-1:5"
  - close: "1:9"
`))
	require.NoError(t, err)
	assert.Equal(t, "pair", f.Name)
	assert.Equal(t, "one unit, one token", f.Description)
	require.NotNil(t, f.Sequence)
	assert.Equal(t, 3, f.Sequence.Len())
	assert.Empty(t, f.Checks)
}

func TestParse_Checks(t *testing.T) {
	f, err := Parse([]byte(`
markers:
  - open: "1:1"
  - token: "1:2-1:5"
  - close: "1:9"
checks:
  - query: "1:3"
    want: ["1:1-1:9"]
  - query: "1:1-1:9"
    back: true
    want: ["1:2-1:5"]
`))
	require.NoError(t, err)
	require.Len(t, f.Checks, 2)

	assert.False(t, f.Checks[0].Back)
	assert.Equal(t, "1:3-1:3", f.Checks[0].Query.String())
	require.Len(t, f.Checks[0].Want, 1)
	assert.Equal(t, "1:1-1:9", f.Checks[0].Want[0].String())

	assert.True(t, f.Checks[1].Back)
	assert.Equal(t, "1:2-1:5", f.Checks[1].Want[0].String())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "not yaml",
			yaml:    "markers: [",
			wantErr: "yaml",
		},
		{
			name:    "no markers",
			yaml:    "name: empty",
			wantErr: "no markers",
		},
		{
			name: "marker with two fields",
			yaml: `
markers:
  - open: "1:1"
    close: "1:2"
`,
			wantErr: "marker 0: need exactly one",
		},
		{
			name: "marker with no fields",
			yaml: `
markers:
  - {}
`,
			wantErr: "marker 0: need exactly one",
		},
		{
			name: "bad token region",
			yaml: `
markers:
  - token: "nope"
`,
			wantErr: "marker 0: token",
		},
		{
			name: "bad boundary location",
			yaml: `
markers:
  - open: "one:two"
`,
			wantErr: "marker 0: open",
		},
		{
			name: "sequence does not validate",
			yaml: `
markers:
  - token: "1:1-1:2"
`,
			wantErr: "must start with an open",
		},
		{
			name: "negative gap depth",
			yaml: `
markers:
  - open: "1:1"
  - open: "1:2"
  - token: "1:1-1:2"
  - close: "1:3"
  - gap: -1
  - open: "1:4"
  - token: "1:3-1:4"
  - close: "1:5"
  - close: "1:6"
`,
			wantErr: "negative gap depth",
		},
		{
			name: "check without query",
			yaml: `
markers:
  - open: "1:1"
  - token: "1:2-1:5"
  - close: "1:9"
checks:
  - want: ["1:1-1:9"]
`,
			wantErr: "check 0: query is required",
		},
		{
			name: "check without want",
			yaml: `
markers:
  - open: "1:1"
  - token: "1:2-1:5"
  - close: "1:9"
checks:
  - query: "1:3"
`,
			wantErr: "check 0: want is required",
		},
		{
			name: "check with bad want region",
			yaml: `
markers:
  - open: "1:1"
  - token: "1:2-1:5"
  - close: "1:9"
checks:
  - query: "1:3"
    want: ["backwards"]
`,
			wantErr: "check 0: want 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "straddle.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
markers:
  - open: "1:1"
  - token: "1:2-1:5"
  - close: "1:9"
`), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "straddle", f.Name, "nameless fixture takes the file name")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "read fixture")
}

func TestLoad_ParseErrorNamesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: broken"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "broken.yaml")
}

func TestDemo(t *testing.T) {
	f := Demo()

	assert.Equal(t, "chunks", f.Name)
	assert.NotEmpty(t, f.Source)
	assert.NotEmpty(t, f.Derived)
	require.NotNil(t, f.Sequence)
	require.Len(t, f.Checks, 3)

	// The embedded checks hold against the embedded sequence.
	for _, c := range f.Checks {
		if c.Back {
			assert.Equal(t, c.Want, f.Sequence.MapBack(c.Query), "back query %s", c.Query)
		} else {
			assert.Equal(t, c.Want, f.Sequence.Map(c.Query), "query %s", c.Query)
		}
	}
}
