// pkg/archive/tar.go
package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/toolup-dev/toolup/pkg/components"
	"github.com/toolup-dev/toolup/pkg/notify"
	"github.com/toolup-dev/toolup/pkg/temp"
	"github.com/toolup-dev/toolup/pkg/transaction"
)

// componentsFile is the optional root-level file naming components in
// install order, one per line.
const componentsFile = "components"

// TarPackage is a package backed by an unpacked tarball. The unpacked tree
// lives in a disposable workspace; Close releases it.
type TarPackage struct {
	dir    *temp.Dir
	comps  []string
	notify notify.Sink
}

// OpenPackage opens a tarball installer from disk, decompressing by file
// extension: .tar.xz and .txz through xz, anything else through gzip.
func OpenPackage(path string, tmp *temp.Cfg, n notify.Sink) (*TarPackage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening installer: %w", err)
	}
	defer f.Close()

	var r io.Reader
	if strings.HasSuffix(path, ".tar.xz") || strings.HasSuffix(path, ".txz") {
		r, err = xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("creating xz reader: %w", err)
		}
	} else {
		gzr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		defer gzr.Close()
		r = gzr
	}

	return NewTarPackage(r, tmp, n)
}

// NewTarPackage unpacks an uncompressed tar stream into a fresh workspace
// and reads its component list.
func NewTarPackage(r io.Reader, tmp *temp.Cfg, n notify.Sink) (*TarPackage, error) {
	dir, err := tmp.NewDirectory("pkg")
	if err != nil {
		return nil, err
	}

	if err := unpack(r, dir.Path); err != nil {
		dir.Close()
		return nil, err
	}

	comps, err := readComponents(dir.Path)
	if err != nil {
		dir.Close()
		return nil, err
	}

	return &TarPackage{dir: dir, comps: comps, notify: n}, nil
}

// Components returns the component names in install order.
func (p *TarPackage) Components() []string {
	return p.comps
}

// Install stages the named component's files into the transaction and
// records it in the ledger. An already-installed component is replaced: its
// old files are staged for removal before the new tree is staged.
func (p *TarPackage) Install(c *components.Components, name string, tx *transaction.Transaction) (*transaction.Transaction, error) {
	root := filepath.Join(p.dir.Path, name)
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("component %s not found in package: %w", name, err)
	}

	p.notify.Send(notify.InstallingComponent(name, tx.Prefix()))

	if c.IsInstalled(name) {
		if err := c.Remove(name, tx); err != nil {
			return nil, fmt.Errorf("replacing component %s: %w", name, err)
		}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return fmt.Errorf("reading symlink %s: %w", path, err)
			}
			if err := tx.AddSymlink(rel, link); err != nil {
				return err
			}
			files = append(files, rel)
		case d.IsDir():
			return tx.AddDir(rel)
		default:
			info, err := d.Info()
			if err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			werr := tx.WriteFile(rel, info.Mode().Perm(), f)
			f.Close()
			if werr != nil {
				return werr
			}
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("installing component %s: %w", name, err)
	}

	if err := c.Add(name, files, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Close releases the workspace backing the package.
func (p *TarPackage) Close() error {
	return p.dir.Close()
}

// unpack extracts a tar stream under dest, rejecting entries that would
// escape it.
func unpack(r io.Reader, dest string) error {
	tr := tar.NewReader(r)

	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading tar entry: %w", err)
		}

		name := filepath.Clean(header.Name)
		if name == ".." || strings.HasPrefix(name, ".."+string(filepath.Separator)) {
			return fmt.Errorf("tar entry escapes package root: %s", header.Name)
		}
		target := filepath.Join(dest, name)

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("creating directory %s: %w", target, err)
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("creating parent directory: %w", err)
			}
			if err := os.Symlink(header.Linkname, target); err != nil && !os.IsExist(err) {
				return fmt.Errorf("creating symlink %s: %w", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf("creating parent directory: %w", err)
			}
			out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode))
			if err != nil {
				return fmt.Errorf("creating file %s: %w", target, err)
			}
			written, err := io.Copy(out, tr)
			out.Close()
			if err != nil {
				return fmt.Errorf("writing file %s: %w", target, err)
			}
			if written != header.Size {
				return fmt.Errorf("file size mismatch for %s: expected %d, got %d", target, header.Size, written)
			}
		}
	}
	return nil
}

// readComponents determines install order: the root-level components file
// when present, otherwise the top-level directories sorted by name.
func readComponents(dir string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(dir, componentsFile))
	if err == nil {
		var comps []string
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				comps = append(comps, line)
			}
		}
		if len(comps) == 0 {
			return nil, fmt.Errorf("package components file is empty")
		}
		return comps, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading package components file: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading package: %w", err)
	}
	var comps []string
	for _, e := range entries {
		if e.IsDir() {
			comps = append(comps, e.Name())
		}
	}
	if len(comps) == 0 {
		return nil, fmt.Errorf("package contains no components")
	}
	sort.Strings(comps)
	return comps, nil
}
