// toolup_test.go
package toolup_test

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	toolup "github.com/toolup-dev/toolup"
	"github.com/toolup-dev/toolup/pkg/config"
	"github.com/toolup-dev/toolup/pkg/platform"
)

func newTestManager(t *testing.T, distRoot string) *toolup.Manager {
	t.Helper()
	cfg := &config.Config{
		Home:     t.TempDir(),
		DistRoot: distRoot,
		Profile:  "default",
	}
	mgr, err := toolup.NewManager(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { mgr.Close() })
	return mgr
}

// publishChannel writes a single-component channel under a local dist root
// and returns its file:// URL.
func publishChannel(t *testing.T, channel, version, date string) string {
	t.Helper()
	root := t.TempDir()

	target, err := platform.Detect()
	require.NoError(t, err)

	var tarBuf bytes.Buffer
	tw := tar.NewWriter(&tarBuf)
	writeEntry := func(name, content string) {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Typeflag: tar.TypeReg,
			Mode:     0644,
			Size:     int64(len(content)),
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	writeEntry("components", "core\n")
	writeEntry("core/bin/tool", "exe-"+version)
	require.NoError(t, tw.Close())

	var gzBuf bytes.Buffer
	gzw := gzip.NewWriter(&gzBuf)
	_, err = gzw.Write(tarBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, gzw.Close())

	require.NoError(t, os.MkdirAll(filepath.Join(root, "dist"), 0755))
	artifactRel := fmt.Sprintf("dist/core-%s.tar.gz", version)
	require.NoError(t, os.WriteFile(filepath.Join(root, artifactRel), gzBuf.Bytes(), 0644))

	sum := sha256.Sum256(gzBuf.Bytes())
	manifest := fmt.Sprintf(`date = %q
version = %q

[profiles]
minimal = ["core"]
default = ["core"]
full = ["core"]

[[component]]
name = "core"
target = %q
url = %q
hash = %q
`, date, version, target, artifactRel, hex.EncodeToString(sum[:]))

	require.NoError(t, os.WriteFile(filepath.Join(root, "channel-"+channel+".toml"), []byte(manifest), 0644))
	return "file://" + root
}

func TestManagerCopyInstallAndList(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "bin"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "bin", "tool"), []byte("exe"), 0755))

	mgr := newTestManager(t, "file:///nowhere")

	status, err := mgr.InstallCopy(context.Background(), "local", src)
	require.NoError(t, err)
	assert.Equal(t, toolup.StatusInstalled, status.Kind)

	installed, err := mgr.List()
	require.NoError(t, err)
	require.Len(t, installed, 1)
	assert.Equal(t, "local", installed[0].Name)

	require.NoError(t, mgr.Uninstall("local"))

	installed, err = mgr.List()
	require.NoError(t, err)
	assert.Empty(t, installed)
}

func TestManagerDistInstallUpdateCycle(t *testing.T) {
	distRoot := publishChannel(t, "stable", "1.44.0", "2026-08-01")
	mgr := newTestManager(t, distRoot)

	ctx := context.Background()

	status, err := mgr.InstallDist(ctx, "stable", toolup.DistOptions{})
	require.NoError(t, err)
	assert.Equal(t, toolup.StatusInstalled, status.Kind)

	// Second run resolves the identical manifest: unchanged.
	status, err = mgr.InstallDist(ctx, "stable", toolup.DistOptions{})
	require.NoError(t, err)
	assert.Equal(t, toolup.StatusUnchanged, status.Kind)

	// Forced update changes state even though the hash still matches.
	status, err = mgr.Update(ctx, "stable", toolup.DistOptions{Force: true})
	require.NoError(t, err)
	assert.Equal(t, toolup.StatusUpdated, status.Kind)
	assert.Equal(t, "1.44.0", status.PriorVersion)
}

func TestManagerUpdateMissingToolchain(t *testing.T) {
	mgr := newTestManager(t, "file:///nowhere")

	_, err := mgr.Update(context.Background(), "stable", toolup.DistOptions{})
	assert.ErrorIs(t, err, toolup.ErrToolchainNotFound)
}

func TestManagerUpdateLocalToolchain(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "tool"), []byte("exe"), 0755))

	mgr := newTestManager(t, "file:///nowhere")

	_, err := mgr.InstallCopy(context.Background(), "local", src)
	require.NoError(t, err)

	_, err = mgr.Update(context.Background(), "local", toolup.DistOptions{})
	assert.ErrorIs(t, err, toolup.ErrNotDistributable)
}

func TestManagerUninstallMissingToolchain(t *testing.T) {
	mgr := newTestManager(t, "file:///nowhere")

	err := mgr.Uninstall("nope")
	assert.ErrorIs(t, err, toolup.ErrToolchainNotFound)
}

func TestManagerRejectsInvalidNames(t *testing.T) {
	mgr := newTestManager(t, "file:///nowhere")

	for _, name := range []string{"", "..", "a/b", `a\b`} {
		_, err := mgr.InstallCopy(context.Background(), name, t.TempDir())
		assert.ErrorIs(t, err, toolup.ErrInvalidToolchainName, name)
	}
}
