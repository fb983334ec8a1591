package scenario

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkcmr/evreg"
)

func invoked(ems []Emission) map[string][]string {
	out := map[string][]string{}
	for _, em := range ems {
		out[em.Event] = em.Invoked
	}
	return out
}

func TestLoadExample(t *testing.T) {
	for _, file := range []string{"example.toml", "example.yaml"} {
		t.Run(file, func(t *testing.T) {
			sc, err := Load(filepath.Join("testdata", file))
			require.NoError(t, err)

			ems := sc.Run(context.Background())
			require.Len(t, ems, 4)
			require.False(t, Failed(ems))
			require.Equal(t, map[string][]string{
				"eventOne":   {"functionOne", "functionTwo"},
				"eventTwo":   {"functionThree"},
				"eventThree": {"functionOne", "functionThree"},
				"eventFour":  nil,
			}, invoked(ems))
		})
	}
}

func TestBuildRegistry(t *testing.T) {
	sc, err := Load(filepath.Join("testdata", "example.yaml"))
	require.NoError(t, err)

	reg := sc.Build()
	require.Equal(t, []string{"eventOne", "eventTwo", "eventThree"}, reg.Events())
	// the duplicate eventOne registration in the file is absorbed
	require.Equal(t, 2, reg.Len("eventOne"))
}

func TestRunContinuesPastFailures(t *testing.T) {
	sc, err := Load(filepath.Join("testdata", "failing.toml"))
	require.NoError(t, err)

	ems := sc.Run(context.Background(), evreg.WithLogger(slog.New(slog.DiscardHandler)))
	require.Len(t, ems, 2)
	require.True(t, Failed(ems))
	for _, em := range ems {
		assert.Equal(t, []string{"validate", "write", "explode", "notify"}, em.Invoked)
		require.Error(t, em.Err)
		assert.ErrorContains(t, em.Err, "disk full")

		var perr *evreg.PanicError
		assert.ErrorAs(t, em.Err, &perr)
	}
}

func TestRunStopOnError(t *testing.T) {
	sc, err := Load(filepath.Join("testdata", "failing.toml"))
	require.NoError(t, err)

	ems := sc.Run(context.Background(), evreg.WithFailurePolicy(evreg.StopOnError))
	require.Len(t, ems, 2)
	for _, em := range ems {
		assert.Equal(t, []string{"validate", "write"}, em.Invoked)
		var cerr *evreg.CallbackError
		require.ErrorAs(t, em.Err, &cerr)
		assert.Equal(t, "write", cerr.Callback)
		assert.Equal(t, 1, cerr.Index)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := map[string]struct {
		format Format
		data   string
		want   string
	}{
		"undeclared callback": {
			format: FormatTOML,
			data: `
[[register]]
event = "a"
callbacks = ["ghost"]
`,
			want: `undeclared callback "ghost"`,
		},
		"duplicate callback": {
			format: FormatYAML,
			data: `
callbacks:
  - name: a
  - name: a
`,
			want: `callback "a" declared twice`,
		},
		"missing name": {
			format: FormatYAML,
			data:   "callbacks:\n  - fail: x\n",
			want:   "callback #0 has no name",
		},
		"missing event": {
			format: FormatTOML,
			data:   "[[register]]\ncallbacks = []\n",
			want:   "registration #0 has no event",
		},
		"empty emit": {
			format: FormatTOML,
			data:   `emit = [""]`,
			want:   "emit #0 is empty",
		},
		"unknown toml key": {
			format: FormatTOML,
			data:   `emitt = ["a"]`,
			want:   "unknown key",
		},
		"unknown yaml key": {
			format: FormatYAML,
			data:   "emitt: [a]\n",
			want:   "decode yaml",
		},
		"bad toml": {
			format: FormatTOML,
			data:   "emit = [",
			want:   "decode toml",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data), tc.format)
			require.Error(t, err)
			require.ErrorContains(t, err, tc.want)
		})
	}
}

func TestValidationErrorsAreInvalid(t *testing.T) {
	_, err := Parse([]byte(`emit = [""]`), FormatTOML)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]Format{
		"a.toml":  FormatTOML,
		"a.TOML":  FormatTOML,
		"b.yaml":  FormatYAML,
		"c/d.yml": FormatYAML,
	} {
		got, err := FormatFromPath(path)
		require.NoError(t, err)
		assert.Equal(t, want, got, path)
	}
	_, err := FormatFromPath("scenario.json")
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.toml"))
	require.ErrorContains(t, err, "read scenario")
}
