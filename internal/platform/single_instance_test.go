package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortFromNameIsStableAndInRange(t *testing.T) {
	first := PortFromName("focusloop:/tmp/a")
	assert.Equal(t, first, PortFromName("focusloop:/tmp/a"))
	assert.GreaterOrEqual(t, first, 20000)
	assert.LessOrEqual(t, first, 39999)
}

func TestAcquireSingleInstance(t *testing.T) {
	name := "focusloop-test:" + t.Name()
	lock, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	assert.Equal(t, name, lock.Name())
	assert.Contains(t, lock.Address(), "127.0.0.1:")

	_, err = AcquireSingleInstance(name)
	require.ErrorIs(t, err, ErrAlreadyRunning)
	assert.Contains(t, err.Error(), name)

	require.NoError(t, lock.Release())
	require.NoError(t, lock.Release())
	assert.Empty(t, lock.Address())

	again, err := AcquireSingleInstance(name)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir, err := ConfigDir("focusloop")
	require.NoError(t, err)
	assert.Contains(t, dir, "focusloop")

	_, err = ConfigDir("")
	require.Error(t, err)
}
