package state

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testshift/core/pkg/domain"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBeginAndFinishRun(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	run, err := s.BeginRun(ctx, "/repo", domain.DialectCypress, domain.DialectPlaywright)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)

	require.NoError(t, s.FinishRun(ctx, run.ID, 10, 2, 5, 3))

	got, err := s.LastRun(ctx, "/repo")
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, domain.DialectCypress, got.Source)
	assert.Equal(t, domain.DialectPlaywright, got.Target)
	assert.Equal(t, 10, got.FilesConverted)
	assert.Equal(t, 2, got.FilesFailed)
	assert.Equal(t, 5, got.Todos)
	assert.Equal(t, 3, got.Warnings)
	assert.False(t, got.FinishedAt.IsZero())
}

func TestFinishUnknownRunFails(t *testing.T) {
	s := openStore(t)

	err := s.FinishRun(context.Background(), "no-such-run", 0, 0, 0, 0)
	assert.Error(t, err)
}

func TestLastRunNoHistory(t *testing.T) {
	s := openStore(t)

	_, err := s.LastRun(context.Background(), "/never-seen")
	assert.ErrorIs(t, err, ErrNoRuns)
}

func TestLastRunPicksNewest(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	_, err := s.BeginRun(ctx, "/repo", domain.DialectJest, domain.DialectVitest)
	require.NoError(t, err)
	second, err := s.BeginRun(ctx, "/repo", domain.DialectJest, domain.DialectVitest)
	require.NoError(t, err)

	got, err := s.LastRun(ctx, "/repo")
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
}

func TestFileHashesExcludeFailures(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	run, err := s.BeginRun(ctx, "/repo", domain.DialectJest, domain.DialectVitest)
	require.NoError(t, err)

	require.NoError(t, s.RecordFile(ctx, FileRecord{
		RunID:       run.ID,
		Path:        "a.test.js",
		ContentHash: HashContent([]byte("aaa")),
		Source:      domain.DialectJest,
		Status:      StatusConverted,
		Todos:       1,
	}))
	require.NoError(t, s.RecordFile(ctx, FileRecord{
		RunID:       run.ID,
		Path:        "b.test.js",
		ContentHash: HashContent([]byte("bbb")),
		Source:      domain.DialectJest,
		Status:      StatusFailed,
	}))

	hashes, err := s.FileHashes(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a.test.js": HashContent([]byte("aaa"))}, hashes)
}

func TestRecordFileUpserts(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	run, err := s.BeginRun(ctx, "/repo", domain.DialectJest, domain.DialectVitest)
	require.NoError(t, err)

	rec := FileRecord{
		RunID:       run.ID,
		Path:        "a.test.js",
		ContentHash: HashContent([]byte("v1")),
		Source:      domain.DialectJest,
		Status:      StatusFailed,
	}
	require.NoError(t, s.RecordFile(ctx, rec))

	rec.ContentHash = HashContent([]byte("v2"))
	rec.Status = StatusConverted
	require.NoError(t, s.RecordFile(ctx, rec))

	hashes, err := s.FileHashes(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, HashContent([]byte("v2")), hashes["a.test.js"])
}

func TestChanged(t *testing.T) {
	previous := map[string]string{
		"same.test.js":    "h1",
		"changed.test.js": "h2",
	}
	current := map[string]string{
		"same.test.js":    "h1",
		"changed.test.js": "h2-modified",
		"new.test.js":     "h3",
	}

	changed := Changed(previous, current)
	assert.ElementsMatch(t, []string{"changed.test.js", "new.test.js"}, changed)
}

func TestHashContentStable(t *testing.T) {
	a := HashContent([]byte("describe('x', () => {});"))
	b := HashContent([]byte("describe('x', () => {});"))
	c := HashContent([]byte("describe('y', () => {});"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
