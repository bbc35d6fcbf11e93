// pkg/temp/temp.go
package temp

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/toolup-dev/toolup/pkg/notify"
)

// Cfg hands out disposable workspaces under a single root directory. Every
// directory it creates is scoped to one operation and removed when that
// operation finishes, success or failure.
type Cfg struct {
	root   string
	notify notify.Sink
}

// NewCfg creates a workspace factory rooted at the given directory.
func NewCfg(root string, n notify.Sink) (*Cfg, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating temp root: %w", err)
	}
	return &Cfg{root: root, notify: n}, nil
}

// Root returns the directory workspaces are created under.
func (c *Cfg) Root() string {
	return c.root
}

// NewDirectory creates a fresh workspace directory.
func (c *Cfg) NewDirectory(prefix string) (*Dir, error) {
	path, err := os.MkdirTemp(c.root, prefix+"-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}
	return &Dir{Path: path}, nil
}

// NewFile creates an empty file inside a fresh workspace directory and
// returns its path together with the owning workspace.
func (c *Cfg) NewFile(prefix, name string) (*Dir, string, error) {
	dir, err := c.NewDirectory(prefix)
	if err != nil {
		return nil, "", err
	}
	path := filepath.Join(dir.Path, name)
	f, err := os.Create(path)
	if err != nil {
		dir.Close()
		return nil, "", fmt.Errorf("creating temp file: %w", err)
	}
	f.Close()
	return dir, path, nil
}

// Clean removes the entire temp root.
func (c *Cfg) Clean() error {
	c.notify.Send(notify.Removing(c.root))
	if err := os.RemoveAll(c.root); err != nil {
		return fmt.Errorf("cleaning temp root: %w", err)
	}
	return nil
}

// Dir is a single disposable workspace.
type Dir struct {
	Path string
}

// Close removes the workspace and everything in it. Safe to call more than
// once.
func (d *Dir) Close() error {
	if d.Path == "" {
		return nil
	}
	path := d.Path
	d.Path = ""
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("removing temp directory: %w", err)
	}
	return nil
}
