package journal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/cratepub/pkg/types"
)

func openTemp(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpen_createsDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	j, err := Open(dir)
	require.NoError(t, err)
	defer j.Close()

	_, err = os.Stat(filepath.Join(dir, FileName))
	assert.NoError(t, err)
}

func TestOpen_reopenKeepsEntries(t *testing.T) {
	dir := t.TempDir()
	j, err := Open(dir)
	require.NoError(t, err)
	j.Begin().Published(types.Package{Name: "kelk", Version: "0.3.0"}, false)
	require.NoError(t, j.Close())

	j, err = Open(dir)
	require.NoError(t, err)
	defer j.Close()
	entries, err := j.Entries(0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRun_recordsOutcomes(t *testing.T) {
	j := openTemp(t)
	fixed := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return fixed }

	run := j.Begin()
	run.Published(types.Package{Name: "kelk-env", Version: "0.3.0"}, false)
	run.Published(types.Package{Name: "kelk-lib", Version: "0.3.0"}, true)
	run.Failed(types.Package{Name: "kelk", Version: "0.3.0"}, false, errors.New("cargo publish -p kelk: exit status 101"))
	require.NoError(t, run.Err())

	entries, err := j.Entries(0)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first.
	assert.Equal(t, "kelk", entries[0].Package)
	assert.Equal(t, OutcomeFailed, entries[0].Outcome)
	assert.Equal(t, "cargo publish -p kelk: exit status 101", entries[0].Error)

	assert.Equal(t, OutcomeDryRun, entries[1].Outcome)
	assert.True(t, entries[1].DryRun)

	assert.Equal(t, OutcomePublished, entries[2].Outcome)
	assert.Empty(t, entries[2].Error)
	assert.True(t, fixed.Equal(entries[2].RecordedAt))

	for _, e := range entries {
		assert.Equal(t, run.ID, e.RunID)
	}
}

func TestEntries_limit(t *testing.T) {
	j := openTemp(t)
	run := j.Begin()
	for _, name := range []string{"a", "b", "c"} {
		run.Published(types.Package{Name: name, Version: "1.0.0"}, false)
	}

	entries, err := j.Entries(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "c", entries[0].Package)
	assert.Equal(t, "b", entries[1].Package)
}

func TestBegin_distinctRunIDs(t *testing.T) {
	j := openTemp(t)
	assert.NotEqual(t, j.Begin().ID, j.Begin().ID)
}

func TestClosed(t *testing.T) {
	j, err := Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, j.Close())
	require.NoError(t, j.Close(), "Close is idempotent")

	_, err = j.Entries(0)
	assert.ErrorIs(t, err, ErrClosed)

	run := j.Begin()
	run.Published(types.Package{Name: "a", Version: "1"}, false)
	assert.ErrorIs(t, run.Err(), ErrClosed)
}

func TestEntries_malformedTimestamp(t *testing.T) {
	j := openTemp(t)
	j.Begin().Published(types.Package{Name: "kelk", Version: "0.3.0"}, false)
	_, err := j.db.Exec(
		`INSERT INTO publish_events (run_id, package, version, dry_run, outcome, recorded_at)
		 VALUES ('r1', 'kelk-env', '0.3.0', 0, 'published', 'yesterday')`)
	require.NoError(t, err)

	_, err = j.Entries(0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recorded_at")
	assert.Contains(t, err.Error(), "r1")
}
