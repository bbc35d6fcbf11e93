// pkg/dist/update.go
package dist

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/toolup-dev/toolup/pkg/archive"
	"github.com/toolup-dev/toolup/pkg/components"
	"github.com/toolup-dev/toolup/pkg/download"
	"github.com/toolup-dev/toolup/pkg/notify"
	"github.com/toolup-dev/toolup/pkg/platform"
	"github.com/toolup-dev/toolup/pkg/temp"
	"github.com/toolup-dev/toolup/pkg/transaction"
)

// VersionFile and DateFile record, inside an install prefix, which manifest
// release the prefix currently reflects.
const (
	VersionFile = "version"
	DateFile    = "date"
)

// UpdateOptions carries everything one resolve-and-apply run needs.
type UpdateOptions struct {
	Desc           Descriptor
	Profile        Profile // empty when the toolchain already exists
	UpdateHash     string  // prior fingerprint, empty when none recorded
	Prefix         string
	ForceUpdate    bool
	AllowDowngrade bool
	OldDate        string // currently installed release date, empty when unknown
	Components     []string
	Targets        []string
}

// Updater resolves a channel and converges an install prefix to it. It
// returns the new update hash when anything was installed, and an empty
// string when the prefix already matches the resolved state.
type Updater interface {
	Update(ctx context.Context, opts UpdateOptions) (string, error)
}

// ChannelUpdater is the standard Updater: it fetches TOML channel manifests
// from a distribution root and applies releases through a filesystem
// transaction.
type ChannelUpdater struct {
	root   string
	dl     *download.Config
	tmp    *temp.Cfg
	notify notify.Sink
}

// NewUpdater creates a ChannelUpdater for a distribution root URL. file://
// roots resolve against the local filesystem.
func NewUpdater(root string, dl *download.Config, tmp *temp.Cfg, n notify.Sink) *ChannelUpdater {
	return &ChannelUpdater{
		root:   strings.TrimRight(root, "/"),
		dl:     dl,
		tmp:    tmp,
		notify: n,
	}
}

// Update implements Updater. The force, downgrade and date comparisons all
// live here; callers only pass flags through.
func (u *ChannelUpdater) Update(ctx context.Context, opts UpdateOptions) (string, error) {
	manifestURL := opts.Desc.ManifestURL(u.root)
	u.notify.Send(notify.ResolvingChannel(manifestURL))

	data, err := u.dl.Fetch(ctx, manifestURL)
	if err != nil {
		return "", fmt.Errorf("resolving channel %s: %w", opts.Desc.Channel, err)
	}

	fingerprint := Fingerprint(data)
	if fingerprint == opts.UpdateHash && !opts.ForceUpdate {
		return "", nil
	}

	manifest, err := ParseManifest(data)
	if err != nil {
		return "", err
	}

	// Release dates are ISO 8601, so ordering is lexicographic.
	if opts.OldDate != "" && manifest.Date != "" && manifest.Date < opts.OldDate && !opts.AllowDowngrade {
		return "", nil
	}

	ledger, err := components.Open(opts.Prefix)
	if err != nil {
		return "", err
	}

	selected, err := u.selectComponents(manifest, ledger, opts)
	if err != nil {
		return "", err
	}

	tx, err := transaction.New(opts.Prefix, u.tmp, u.notify)
	if err != nil {
		return "", err
	}
	defer tx.Close()

	for _, entry := range selected {
		if tx, err = u.installArtifact(ctx, entry, ledger, tx); err != nil {
			return "", err
		}
	}

	if err := tx.WriteFile(VersionFile, 0644, strings.NewReader(manifest.Version+"\n")); err != nil {
		return "", err
	}
	if err := tx.WriteFile(DateFile, 0644, strings.NewReader(manifest.Date+"\n")); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return fingerprint, nil
}

// selectComponents expands profile, prior state and explicit requests into
// the artifact list to install.
func (u *ChannelUpdater) selectComponents(m *Manifest, ledger *components.Components, opts UpdateOptions) ([]ManifestComponent, error) {
	var names []string
	switch {
	case opts.Profile != "":
		profileNames, err := m.ProfileComponents(opts.Profile)
		if err != nil {
			return nil, err
		}
		names = profileNames
	case len(ledger.List()) > 0:
		// Re-resolve of an existing install: converge what is already there.
		names = ledger.List()
	default:
		profileNames, err := m.ProfileComponents(ProfileDefault)
		if err != nil {
			return nil, err
		}
		names = profileNames
	}

	seen := make(map[string]bool)
	var ordered []string
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			ordered = append(ordered, n)
		}
	}
	for _, n := range opts.Components {
		if !seen[n] {
			seen[n] = true
			ordered = append(ordered, n)
		}
	}

	var selected []ManifestComponent
	for _, name := range ordered {
		entry, ok := m.Lookup(name, opts.Desc.Target)
		if !ok {
			return nil, fmt.Errorf("component %s is not available for target %s", name, opts.Desc.Target)
		}
		selected = append(selected, entry)

		for _, t := range opts.Targets {
			if t == string(opts.Desc.Target) {
				continue
			}
			if extra, ok := m.Lookup(name, platform.Triple(t)); ok {
				selected = append(selected, extra)
			}
		}
	}

	// An explicitly requested target must exist for at least one component.
	for _, t := range opts.Targets {
		if t == string(opts.Desc.Target) {
			continue
		}
		found := false
		for _, entry := range selected {
			if entry.Target == t {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("target %s is not available in channel %s", t, opts.Desc.Channel)
		}
	}

	return selected, nil
}

// installArtifact downloads one artifact, verifies it and stages its
// components into the transaction.
func (u *ChannelUpdater) installArtifact(ctx context.Context, entry ManifestComponent, ledger *components.Components, tx *transaction.Transaction) (*transaction.Transaction, error) {
	workspace, err := u.tmp.NewDirectory("dl")
	if err != nil {
		return nil, err
	}
	defer workspace.Close()

	dest := filepath.Join(workspace.Path, filepath.Base(entry.URL))
	if err := u.dl.File(ctx, ResolveURL(u.root, entry.URL), dest, entry.Hash); err != nil {
		return nil, fmt.Errorf("downloading component %s: %w", entry.Name, err)
	}

	pkg, err := archive.OpenPackage(dest, u.tmp, u.notify)
	if err != nil {
		return nil, fmt.Errorf("opening component %s: %w", entry.Name, err)
	}
	defer pkg.Close()

	for _, comp := range pkg.Components() {
		if tx, err = pkg.Install(ledger, comp, tx); err != nil {
			return nil, err
		}
	}
	return tx, nil
}
