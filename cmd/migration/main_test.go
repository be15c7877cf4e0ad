package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/riskibarqy/matchday-feed/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	calls   []string
	steps   int
	target  uint
	forced  int
	err     error
	version uint
	dirty   bool
}

func (f *fakeMigrator) Up() error { f.calls = append(f.calls, "up"); return f.err }

func (f *fakeMigrator) Steps(n int) error {
	f.calls = append(f.calls, "steps")
	f.steps = n
	return f.err
}

func (f *fakeMigrator) Migrate(v uint) error {
	f.calls = append(f.calls, "migrate")
	f.target = v
	return f.err
}

func (f *fakeMigrator) Force(v int) error {
	f.calls = append(f.calls, "force")
	f.forced = v
	return f.err
}

func (f *fakeMigrator) Version() (uint, bool, error) { return f.version, f.dirty, f.err }

func TestRun_Commands(t *testing.T) {
	logger := logging.NewNop()

	m := &fakeMigrator{}
	require.NoError(t, run([]string{"UP"}, m, nil, logger))
	require.NoError(t, run([]string{"down"}, m, nil, logger))
	assert.Equal(t, -1, m.steps)
	require.NoError(t, run([]string{"down", "3"}, m, nil, logger))
	assert.Equal(t, -3, m.steps)
	require.NoError(t, run([]string{"goto", "1760000004"}, m, nil, logger))
	assert.EqualValues(t, 1760000004, m.target)
	require.NoError(t, run([]string{"force", "2"}, m, nil, logger))
	assert.Equal(t, 2, m.forced)
	assert.Equal(t, []string{"up", "steps", "steps", "migrate", "force"}, m.calls)
}

func TestRun_NoChangeIsNotAnError(t *testing.T) {
	m := &fakeMigrator{err: migrate.ErrNoChange}
	assert.NoError(t, run([]string{"up"}, m, nil, logging.NewNop()))
}

func TestRun_Rejects(t *testing.T) {
	logger := logging.NewNop()
	m := &fakeMigrator{}

	assert.ErrorIs(t, run(nil, m, nil, logger), errUsage)
	assert.ErrorIs(t, run([]string{"sideways"}, m, nil, logger), errUsage)
	assert.Error(t, run([]string{"down", "0"}, m, nil, logger))
	assert.Error(t, run([]string{"goto"}, m, nil, logger))
	assert.Error(t, run([]string{"force", "abc"}, m, nil, logger))
	assert.Empty(t, m.calls)

	boom := errors.New("dirty database")
	assert.ErrorIs(t, run([]string{"up"}, &fakeMigrator{err: boom}, nil, logger), boom)
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"version"}, &fakeMigrator{version: 7, dirty: true}, &out, logging.NewNop()))
	assert.Equal(t, "version: 7\ndirty: true\n", out.String())

	out.Reset()
	require.NoError(t, run([]string{"version"}, &fakeMigrator{err: migrate.ErrNilVersion}, &out, logging.NewNop()))
	assert.Equal(t, "version: none\ndirty: false\n", out.String())
}
