// pkg/download/download_test.go
package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolup-dev/toolup/pkg/notify"
)

func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func TestFileDownloadsAndVerifies(t *testing.T) {
	payload := []byte("artifact contents")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	var progressEvents int
	cfg := &Config{
		Client: NewClient(),
		Notify: func(e notify.Event) {
			if e.Kind == notify.KindDownloadProgress {
				progressEvents++
			}
		},
	}

	dest := filepath.Join(t.TempDir(), "artifact")
	err := cfg.File(context.Background(), srv.URL, dest, sha256Hex(payload))
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Greater(t, progressEvents, 0)
}

func TestFileChecksumMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("contents"))
	}))
	defer srv.Close()

	cfg := &Config{Client: NewClient(), Notify: nil}
	dest := filepath.Join(t.TempDir(), "artifact")

	err := cfg.File(context.Background(), srv.URL, dest, sha256Hex([]byte("different")))
	assert.ErrorContains(t, err, "hash mismatch")
}

func TestFileHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	cfg := &Config{Client: NewClient(), Notify: nil}
	err := cfg.File(context.Background(), srv.URL, filepath.Join(t.TempDir(), "artifact"), "")
	assert.ErrorContains(t, err, "unexpected status 404")
}

func TestFetchLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = \"1.0\""), 0644))

	cfg := &Config{Client: NewClient(), Notify: nil}
	data, err := cfg.Fetch(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Equal(t, "version = \"1.0\"", string(data))
}

func TestFetchMissingLocalFile(t *testing.T) {
	cfg := &Config{Client: NewClient(), Notify: nil}
	_, err := cfg.Fetch(context.Background(), "file://"+filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestFileLocalSource(t *testing.T) {
	src := filepath.Join(t.TempDir(), "artifact")
	payload := []byte("local artifact")
	require.NoError(t, os.WriteFile(src, payload, 0644))

	cfg := &Config{Client: NewClient(), Notify: nil}
	dest := filepath.Join(t.TempDir(), "copy")
	require.NoError(t, cfg.File(context.Background(), "file://"+src, dest, sha256Hex(payload)))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestVerifyFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))

	assert.NoError(t, VerifyFileHash(path, sha256Hex([]byte("data")), nil))
	assert.Error(t, VerifyFileHash(path, sha256Hex([]byte("other")), nil))
}
