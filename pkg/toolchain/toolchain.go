// pkg/toolchain/toolchain.go
package toolchain

import (
	"os"
	"path/filepath"
	"strings"
)

// Toolchain identifies one named toolchain and the path it installs to.
// Distributable toolchains are the ones whose state a distribution channel
// manages; custom ones come from local copy, link or installer sources.
type Toolchain struct {
	Name          string
	Path          string
	Distributable bool
}

// New creates a handle for a toolchain under the given home directory.
func New(home, name string, distributable bool) *Toolchain {
	return &Toolchain{
		Name:          name,
		Path:          filepath.Join(home, "toolchains", name),
		Distributable: distributable,
	}
}

// Exists reports whether anything is installed at the toolchain path.
func (t *Toolchain) Exists() bool {
	_, err := os.Lstat(t.Path)
	return err == nil
}

// Version returns the installed version, or empty when unknown. Dist
// installs record it; copy and link installs usually have none.
func (t *Toolchain) Version() string {
	return t.readMeta("version")
}

// Date returns the installed release date, or empty when unknown.
func (t *Toolchain) Date() string {
	return t.readMeta("date")
}

func (t *Toolchain) readMeta(name string) string {
	data, err := os.ReadFile(filepath.Join(t.Path, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
