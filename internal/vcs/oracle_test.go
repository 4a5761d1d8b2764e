package vcs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/cratepub/internal/testutil"
	"github.com/mesh-intelligence/cratepub/pkg/types"
)

const describe = "git describe --abbrev=0"

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag, prefix, want string
	}{
		{"v1.2.0\n", "v", "1.2.0"},
		{"  v0.3.1  \n", "v", "0.3.1"},
		{"1.2.0\n", "v", "1.2.0"},
		{"vv1.0.0", "v", "v1.0.0"},
		{"release-2.0.0\n", "release-", "2.0.0"},
		{"v1.2.0", "", "v1.2.0"},
		{"\n", "v", ""},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTag(tt.tag, tt.prefix))
		})
	}
}

func TestResolve(t *testing.T) {
	t.Run("strips prefix and whitespace", func(t *testing.T) {
		r := testutil.NewFakeRunner().OnStdout(describe, "v1.2.0\n")
		got, err := NewOracle(r, "git", "v", testutil.NewTestLogger(t)).Resolve()
		require.NoError(t, err)
		assert.Equal(t, types.ReleaseVersion("1.2.0"), got)
		assert.Equal(t, []string{describe}, r.Lines())
	})

	t.Run("uses configured git binary", func(t *testing.T) {
		r := testutil.NewFakeRunner().OnStdout("/usr/bin/git describe --abbrev=0", "v0.1.0")
		got, err := NewOracle(r, "/usr/bin/git", "v", nil).Resolve()
		require.NoError(t, err)
		assert.Equal(t, types.ReleaseVersion("0.1.0"), got)
	})

	t.Run("no tags is an external tool error", func(t *testing.T) {
		r := testutil.NewFakeRunner().OnExit(describe, 128, "fatal: No names found, cannot describe anything.\n")
		_, err := NewOracle(r, "git", "v", nil).Resolve()
		require.Error(t, err)
		assert.ErrorIs(t, err, types.ErrExternalTool)

		var toolErr *types.ExternalToolError
		require.ErrorAs(t, err, &toolErr)
		assert.Equal(t, 128, toolErr.ExitCode)
		assert.Len(t, r.Calls(), 1, "resolve must not retry")
	})

	t.Run("git missing is an external tool error", func(t *testing.T) {
		r := testutil.NewFakeRunner().OnStartError(describe, errors.New("executable file not found"))
		_, err := NewOracle(r, "git", "v", nil).Resolve()
		assert.ErrorIs(t, err, types.ErrExternalTool)
	})

	t.Run("empty tag output is rejected", func(t *testing.T) {
		r := testutil.NewFakeRunner().OnStdout(describe, "v\n")
		_, err := NewOracle(r, "git", "v", nil).Resolve()
		assert.ErrorIs(t, err, types.ErrNoReleaseTag)
		assert.ErrorIs(t, err, types.ErrExternalTool)
	})
}
