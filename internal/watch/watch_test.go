package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietdv277/awsprof/internal/aws"
)

type countingReloader struct {
	paths   aws.Paths
	reloads atomic.Int32
	err     error
}

func (c *countingReloader) Paths() aws.Paths { return c.paths }

func (c *countingReloader) Reload() error {
	c.reloads.Add(1)
	return c.err
}

func startWatch(t *testing.T, r Reloader, onReload func(error)) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, r, Options{Delay: 20 * time.Millisecond, OnReload: onReload})
	}()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop")
		}
	})

	// Let the watcher register its directories
	time.Sleep(50 * time.Millisecond)
}

func TestRun_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config")
	require.NoError(t, os.WriteFile(configPath, []byte("[default]\n"), 0o600))

	r := &countingReloader{paths: aws.Paths{
		ConfigFile:      configPath,
		CredentialsFile: filepath.Join(dir, "credentials"),
	}}
	var results atomic.Int32
	startWatch(t, r, func(err error) {
		assert.NoError(t, err)
		results.Add(1)
	})

	require.NoError(t, os.WriteFile(configPath, []byte("[default]\nregion = us-east-1\n"), 0o600))
	assert.Eventually(t, func() bool { return r.reloads.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	// A credentials file that did not exist at start is picked up too
	require.NoError(t, os.WriteFile(r.paths.CredentialsFile, []byte("[x]\n"), 0o600))
	assert.Eventually(t, func() bool { return r.reloads.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return results.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestRun_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	r := &countingReloader{paths: aws.Paths{
		ConfigFile:      filepath.Join(dir, "config"),
		CredentialsFile: filepath.Join(dir, "credentials"),
	}}
	startWatch(t, r, nil)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "cli-cache.json"), []byte("{}"), 0o600))
	time.Sleep(200 * time.Millisecond)

	assert.Zero(t, r.reloads.Load())
}

func TestRun_ReportsReloadError(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config")
	reloadErr := errors.New("permission denied")
	r := &countingReloader{paths: aws.Paths{ConfigFile: configPath}, err: reloadErr}

	errs := make(chan error, 4)
	startWatch(t, r, func(err error) { errs <- err })

	require.NoError(t, os.WriteFile(configPath, []byte("[default]\n"), 0o600))

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, reloadErr)
	case <-time.After(2 * time.Second):
		t.Fatal("reload was not reported")
	}
}

func TestRun_MissingDirectory(t *testing.T) {
	r := &countingReloader{paths: aws.Paths{
		ConfigFile: filepath.Join(t.TempDir(), "missing", "config"),
	}}

	err := Run(context.Background(), r, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}
