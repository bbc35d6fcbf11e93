// pkg/download/download.go
package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/toolup-dev/toolup/pkg/notify"
)

// Config bundles everything a download needs: the HTTP client and the
// notification sink progress is reported through. URLs with a file:// scheme
// resolve against the local filesystem, which is how local distribution
// roots work.
type Config struct {
	Client *Client
	Notify notify.Sink
}

// Fetch retrieves the full contents at url into memory. Intended for small
// payloads such as channel manifests.
func (c *Config) Fetch(ctx context.Context, url string) ([]byte, error) {
	if path, ok := localPath(url); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return data, nil
	}

	resp, err := c.Client.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return data, nil
}

// File downloads url to destPath, streaming progress through the sink and
// verifying the SHA256 checksum when one is given.
func (c *Config) File(ctx context.Context, url, destPath, sha256Hex string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	var body io.ReadCloser
	var total int64
	if path, ok := localPath(url); ok {
		f, err := os.Open(path)
		if err != nil {
			out.Close()
			return fmt.Errorf("opening %s: %w", path, err)
		}
		if info, err := f.Stat(); err == nil {
			total = info.Size()
		}
		body = f
	} else {
		resp, err := c.Client.Get(ctx, url)
		if err != nil {
			out.Close()
			return err
		}
		total = resp.ContentLength
		body = resp.Body
	}
	defer body.Close()

	c.Notify.Send(notify.Downloading(url, total))

	pr := &progressReader{r: body, url: url, total: total, notify: c.Notify}
	if _, err := io.Copy(out, pr); err != nil {
		out.Close()
		return fmt.Errorf("downloading %s: %w", url, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	if sha256Hex != "" {
		if err := VerifyFileHash(destPath, sha256Hex, c.Notify); err != nil {
			return err
		}
	}
	return nil
}

// VerifyFileHash checks the SHA256 hash of a file against an expected hex
// digest.
func VerifyFileHash(path, expectedHex string, n notify.Sink) error {
	n.Send(notify.Verifying(path))

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return fmt.Errorf("computing hash: %w", err)
	}

	actual := hex.EncodeToString(hasher.Sum(nil))
	if !strings.EqualFold(actual, expectedHex) {
		return fmt.Errorf("hash mismatch for %s: expected %s, got %s", path, expectedHex, actual)
	}
	return nil
}

// localPath extracts a filesystem path from a file:// URL.
func localPath(url string) (string, bool) {
	if strings.HasPrefix(url, "file://") {
		return strings.TrimPrefix(url, "file://"), true
	}
	return "", false
}

// progressReader reports bytes read through the notification sink.
type progressReader struct {
	r       io.Reader
	url     string
	total   int64
	written int64
	notify  notify.Sink
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.written += int64(n)
		p.notify.Send(notify.DownloadProgress(p.url, p.written, p.total))
	}
	return n, err
}
