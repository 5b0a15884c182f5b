package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir_UsesXDGRuntimeDirWhenSet(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	got, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, td, got)
}

func TestDir_FallbacksWhenXDGRuntimeDirMissing(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")

	got, err := Dir()
	require.NoError(t, err)

	wantRun := fmt.Sprintf("/run/user/%d", os.Getuid())
	wantTmp := fmt.Sprintf("/tmp/topglass-runtime-%d", os.Getuid())
	assert.Contains(t, []string{wantRun, wantTmp}, got)
}

func TestLockPath_PerDisplay(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", td)

	def, err := LockPath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(td, "topglass.lock"), def)

	got, err := LockPath("localhost:1.0")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(got, "/topglass-localhost_1.0.lock"), got)
}

func TestLock_SecondHolderRefused(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topglass.lock")

	first, err := Lock(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), strings.TrimSpace(string(data)))

	_, err = Lock(path)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, first.Release())
	again, err := Lock(path)
	require.NoError(t, err)
	assert.NoError(t, again.Release())
}

func TestRelease_RemovesFileBeforeUnlocking(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topglass.lock")
	held, err := Lock(path)
	require.NoError(t, err)

	// An opener that raced the release still has the old inode.
	stale, err := os.Open(path)
	require.NoError(t, err)
	defer stale.Close()

	require.NoError(t, held.Release())
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, isCurrentFile(stale, path), "unlinked inode must not count as the lock file")

	next, err := Lock(path)
	require.NoError(t, err)
	defer next.Release()
	assert.False(t, isCurrentFile(stale, path), "replacement file is a different inode")

	_, err = Lock(path)
	assert.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestRelease_NilAndTwice(t *testing.T) {
	var l *InstanceLock
	assert.NoError(t, l.Release())

	lock, err := Lock(filepath.Join(t.TempDir(), "topglass.lock"))
	require.NoError(t, err)
	assert.NoError(t, lock.Release())
	assert.NoError(t, lock.Release())
}
