package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/scopegraph/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Chdir(t.TempDir())

	testCases := []struct {
		name     string
		args     []string
		want     *app.Config
		wantExit bool
		wantCode int
	}{
		{
			name: "positional paths with defaults",
			args: []string{"a.hcl", "lib"},
			want: &app.Config{DeclPaths: []string{"a.hcl", "lib"}, LogFormat: "text", LogLevel: "warn", Workers: 4, Format: "tree"},
		},
		{
			name: "shorthand flag and options",
			args: []string{"-d", "decls", "--log-level", "DEBUG", "--log-format", "json", "--workers", "1", "--format", "defects"},
			want: &app.Config{DeclPaths: []string{"decls"}, LogFormat: "json", LogLevel: "debug", Workers: 1, Format: "defects"},
		},
		{
			name:     "help",
			args:     []string{"-h"},
			wantExit: true,
		},
		{
			name:     "no path prints usage",
			args:     nil,
			wantExit: true,
		},
		{
			name:     "unknown flag",
			args:     []string{"--nope"},
			wantCode: ExitUsage,
		},
		{
			name:     "bad log level",
			args:     []string{"--log-level", "loud", "x"},
			wantCode: ExitUsage,
		},
		{
			name:     "bad format",
			args:     []string{"--format", "dot", "x"},
			wantCode: ExitUsage,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			cfg, exit, err := Parse(tc.args, out)

			if tc.wantCode != 0 {
				var exitErr *ExitError
				require.True(t, errors.As(err, &exitErr), "expected ExitError, got %v", err)
				assert.Equal(t, tc.wantCode, exitErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantExit, exit)
			if tc.wantExit {
				assert.Contains(t, out.String(), "Usage:")
				return
			}
			if diff := cmp.Diff(tc.want, cfg); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "scopegraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("decls: [from-file]\nlog_level: info\nworkers: 3\nformat: defects\n"), 0o644))

	cfg, exit, err := Parse([]string{"--config", path, "--workers", "6"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)

	want := &app.Config{DeclPaths: []string{"from-file"}, LogFormat: "text", LogLevel: "info", Workers: 6, Format: "defects"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}

	_, _, err = Parse([]string{"--config", filepath.Join(dir, "missing.yaml"), "x"}, &bytes.Buffer{})
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, ExitUsage, exitErr.Code)
}
