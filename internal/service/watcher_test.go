package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	path := filepath.Join(t.TempDir(), "kb.csv")
	require.NoError(t, os.WriteFile(path, []byte(policyCSV), 0o644))

	s := NewSummaryService(SummaryOptions{}, testLogger())
	_, err := s.Load(context.Background(), &FileSource{Path: path})
	require.NoError(t, err)

	w, err := NewKnowledgeWatcher(path, s, testLogger())
	require.NoError(t, err)
	w.SetDebounce(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte(secondCSV), 0o644))

	assert.Eventually(t, func() bool {
		return len(s.Snapshot().IssueTypes()) == 1 && s.Snapshot().IssueTypes()[0] == "Late Delivery"
	}, 3*time.Second, 20*time.Millisecond)
	assert.GreaterOrEqual(t, w.Reloads(), 1)
}

func TestWatcherIgnoresOtherFilesAndBadWrites(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "kb.csv")
	require.NoError(t, os.WriteFile(path, []byte(policyCSV), 0o644))

	s := NewSummaryService(SummaryOptions{}, testLogger())
	_, err := s.Load(context.Background(), &FileSource{Path: path})
	require.NoError(t, err)
	before := s.Snapshot()

	w, err := NewKnowledgeWatcher(path, s, testLogger())
	require.NoError(t, err)
	w.SetDebounce(50 * time.Millisecond)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.csv"), []byte(secondCSV), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 0, w.Reloads())

	require.NoError(t, os.WriteFile(path, []byte("not,a,sheet\n"), 0o644))
	assert.Eventually(t, func() bool { return w.Reloads() >= 1 }, 3*time.Second, 20*time.Millisecond)
	assert.Same(t, before, s.Snapshot())
}

func TestWatcherStopWithoutStart(t *testing.T) {
	w, err := NewKnowledgeWatcher(filepath.Join(t.TempDir(), "kb.csv"), NewSummaryService(SummaryOptions{}, testLogger()), testLogger())
	require.NoError(t, err)
	w.Stop()
}
