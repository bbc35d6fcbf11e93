// pkg/install/method.go
package install

import (
	"github.com/toolup-dev/toolup/pkg/dist"
	"github.com/toolup-dev/toolup/pkg/temp"
)

// Method is a closed set of acquisition strategies. Exactly one variant
// drives an install call, dispatched exhaustively in Run.
type Method interface {
	method()
}

// Copy installs by recursively copying a local directory.
type Copy struct {
	Source string
}

// Link installs by symlinking the target path to a local directory.
type Link struct {
	Source string
}

// Installer installs by unpacking a local tarball through a transaction.
type Installer struct {
	Source string
	Temp   *temp.Cfg
}

// Dist installs by resolving a distribution channel. The updater owns the
// force/downgrade/date policy; this variant only carries the flags through.
type Dist struct {
	Desc           dist.Descriptor
	Profile        dist.Profile
	UpdateHashFile string // path the update hash persists to, empty to skip
	Updater        dist.Updater
	ForceUpdate    bool
	AllowDowngrade bool
	Exists         bool   // toolchain already exists
	OldDate        string // currently installed release date
	Components     []string
	Targets        []string
}

func (Copy) method()      {}
func (Link) method()      {}
func (Installer) method() {}
func (Dist) method()      {}
