package pidfile

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireAndRelease(t *testing.T) {
	pf := New(filepath.Join(t.TempDir(), "daemon.pid"))

	require.NoError(t, pf.Acquire())
	assert.Equal(t, os.Getpid(), pf.Read())

	require.NoError(t, pf.Release())
	assert.Equal(t, 0, pf.Read())
	assert.NoError(t, pf.Release())
}

func TestAcquire_ReplacesGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid"), 0644))

	pf := New(path)
	require.NoError(t, pf.Acquire())
	assert.Equal(t, os.Getpid(), pf.Read())
}

func TestAcquire_RejectsLiveProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")
	// PID 1 is always alive
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(1)), 0644))

	err := New(path).Acquire()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyRunning))
}
