// pkg/install/install.go
//
// Installation and upgrade of both distribution-managed and local
// toolchains.
package install

import (
	"context"
	"fmt"
	"strings"

	"github.com/toolup-dev/toolup/pkg/archive"
	"github.com/toolup-dev/toolup/pkg/components"
	"github.com/toolup-dev/toolup/pkg/dist"
	"github.com/toolup-dev/toolup/pkg/fsutil"
	"github.com/toolup-dev/toolup/pkg/notify"
	"github.com/toolup-dev/toolup/pkg/temp"
	"github.com/toolup-dev/toolup/pkg/toolchain"
	"github.com/toolup-dev/toolup/pkg/transaction"
)

// StatusKind classifies what an install call did.
type StatusKind int

const (
	// StatusInstalled means state changed and nothing was there before.
	StatusInstalled StatusKind = iota
	// StatusUpdated means state changed over an existing install.
	StatusUpdated
	// StatusUnchanged means the requested state was already present.
	StatusUnchanged
)

// Status is the outcome of an install call. PriorVersion is set for
// StatusUpdated when the replaced install recorded one.
type Status struct {
	Kind         StatusKind
	PriorVersion string
}

func (s Status) String() string {
	switch s.Kind {
	case StatusInstalled:
		return "installed"
	case StatusUpdated:
		if s.PriorVersion != "" {
			return fmt.Sprintf("updated from %s", s.PriorVersion)
		}
		return "updated"
	default:
		return "unchanged"
	}
}

// Install converges the toolchain to the state the method describes. Callers
// must serialize installs per target path; this package takes no locks.
func Install(ctx context.Context, m Method, tc *toolchain.Toolchain, n notify.Sink) (Status, error) {
	exists := tc.Exists()
	priorVersion := ""
	if exists {
		priorVersion = tc.Version()
	}

	if exists {
		n.Send(notify.UpdatingToolchain(tc.Name))
	} else {
		n.Send(notify.InstallingToolchain(tc.Name))
	}
	n.Send(notify.ToolchainDirectory(tc.Name, tc.Path))

	changed, err := Run(ctx, m, tc.Path, n)
	if err != nil {
		return Status{}, err
	}

	if !changed {
		n.Send(notify.UpdateHashMatches(tc.Name))
	} else {
		n.Send(notify.InstalledToolchain(tc.Name))
	}

	switch {
	case changed && !exists:
		return Status{Kind: StatusInstalled}, nil
	case changed && exists:
		return Status{Kind: StatusUpdated, PriorVersion: priorVersion}, nil
	default:
		return Status{Kind: StatusUnchanged}, nil
	}
}

// Run executes one method against a target path and reports whether it
// changed anything. An existing target is cleared first for every variant
// except Dist and Installer, which manage their own transition.
func Run(ctx context.Context, m Method, path string, n notify.Sink) (bool, error) {
	if fsutil.Exists(path) {
		switch m.(type) {
		case Dist, Installer:
		default:
			if err := Uninstall(path, n); err != nil {
				return false, err
			}
		}
	}

	switch m := m.(type) {
	case Copy:
		if err := fsutil.CopyTree(m.Source, path, n); err != nil {
			return false, err
		}
		return true, nil

	case Link:
		if err := fsutil.Symlink(m.Source, path, n); err != nil {
			return false, err
		}
		return true, nil

	case Installer:
		if err := tarInstall(m.Source, path, m.Temp, n); err != nil {
			return false, err
		}
		return true, nil

	case Dist:
		profile := m.Profile
		if m.Exists {
			// Profiles only shape fresh installs; re-resolves converge the
			// components already present.
			profile = ""
		}
		newHash, err := m.Updater.Update(ctx, dist.UpdateOptions{
			Desc:           m.Desc,
			Profile:        profile,
			UpdateHash:     priorHash(m.UpdateHashFile),
			Prefix:         path,
			ForceUpdate:    m.ForceUpdate,
			AllowDowngrade: m.AllowDowngrade,
			OldDate:        m.OldDate,
			Components:     m.Components,
			Targets:        m.Targets,
		})
		if err != nil {
			return false, err
		}
		if newHash == "" {
			return false, nil
		}
		if m.UpdateHashFile != "" {
			n.Send(notify.WritingHash(m.UpdateHashFile))
			if err := fsutil.WriteFile("update hash", m.UpdateHashFile, newHash); err != nil {
				return false, err
			}
		}
		return true, nil

	default:
		return false, fmt.Errorf("unsupported install method %T", m)
	}
}

// tarInstall unpacks a tarball installer into the target path through a
// single transaction: every component stages first, then one commit makes
// them all visible.
func tarInstall(src, path string, tmp *temp.Cfg, n notify.Sink) error {
	n.Send(notify.Extracting(src, path))

	ledger, err := components.Open(path)
	if err != nil {
		return err
	}

	pkg, err := archive.OpenPackage(src, tmp, n)
	if err != nil {
		return err
	}
	defer pkg.Close()

	tx, err := transaction.New(path, tmp, n)
	if err != nil {
		return err
	}
	defer tx.Close()

	for _, component := range pkg.Components() {
		if tx, err = pkg.Install(ledger, component, tx); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Uninstall removes the target path recursively. Removing a path that does
// not exist is a no-op.
func Uninstall(path string, n notify.Sink) error {
	return fsutil.Remove(path, n)
}

// priorHash reads a previously persisted update hash. A missing or
// unreadable hash file just means no prior state is recorded.
func priorHash(path string) string {
	if path == "" {
		return ""
	}
	contents, err := fsutil.ReadFile("update hash", path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(contents)
}
