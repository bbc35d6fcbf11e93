// pkg/fsutil/fsutil.go
package fsutil

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/toolup-dev/toolup/pkg/notify"
)

// Exists reports whether the path exists at all, file or directory.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Remove recursively deletes the path. Removing a path that does not exist
// is a no-op.
func Remove(path string, n notify.Sink) error {
	n.Send(notify.Removing(path))
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// CopyTree recursively copies the source directory to dst. dst must not
// already exist. Symlinks inside the tree are recreated, not followed.
func CopyTree(src, dst string, n notify.Sink) error {
	n.Send(notify.Copying(src, dst))

	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("reading source directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("copying %s: not a directory", src)
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return fmt.Errorf("reading symlink %s: %w", path, err)
			}
			if err := os.Symlink(link, target); err != nil {
				return fmt.Errorf("creating symlink %s: %w", target, err)
			}
		case d.IsDir():
			info, err := d.Info()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(target, info.Mode().Perm()); err != nil {
				return fmt.Errorf("creating directory %s: %w", target, err)
			}
		default:
			info, err := d.Info()
			if err != nil {
				return err
			}
			if err := CopyFile(path, target, info.Mode().Perm()); err != nil {
				return err
			}
		}
		return nil
	})
}

// CopyFile copies a single regular file, creating parent directories as
// needed.
func CopyFile(src, dst string, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	return out.Close()
}

// Symlink creates dst as a symbolic link pointing at src.
func Symlink(src, dst string, n notify.Sink) error {
	n.Send(notify.Linking(src, dst))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}
	if err := os.Symlink(src, dst); err != nil {
		return fmt.Errorf("creating symlink %s: %w", dst, err)
	}
	return nil
}

// WriteFile writes a small file such as an update hash, staging through a
// sibling temp file so readers never observe a partial write. desc names the
// file's purpose for error messages.
func WriteFile(desc, path, contents string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("writing %s: %w", desc, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(contents), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", desc, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", desc, err)
	}
	return nil
}

// ReadFile reads a small file, returning an empty string when it does not
// exist. desc names the file's purpose for error messages.
func ReadFile(desc, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading %s: %w", desc, err)
	}
	return string(data), nil
}
