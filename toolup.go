// toolup.go
package toolup

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/toolup-dev/toolup/pkg/config"
	"github.com/toolup-dev/toolup/pkg/dist"
	"github.com/toolup-dev/toolup/pkg/download"
	"github.com/toolup-dev/toolup/pkg/install"
	"github.com/toolup-dev/toolup/pkg/notify"
	"github.com/toolup-dev/toolup/pkg/platform"
	"github.com/toolup-dev/toolup/pkg/temp"
	"github.com/toolup-dev/toolup/pkg/toolchain"
)

// Re-export install types for convenience
type (
	Status     = install.Status
	StatusKind = install.StatusKind
	Config     = config.Config
)

// Re-export status constants
const (
	StatusInstalled = install.StatusInstalled
	StatusUpdated   = install.StatusUpdated
	StatusUnchanged = install.StatusUnchanged
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// Manager installs, updates and removes toolchains under one home
// directory. Install operations targeting the same toolchain must be
// serialized by the caller; the Manager takes no locks.
type Manager struct {
	config  *config.Config
	notify  notify.Sink
	tmp     *temp.Cfg
	updater dist.Updater
}

// DistOptions configures a distribution-channel install or update.
type DistOptions struct {
	Profile        string   // minimal, default or full; empty uses the config default
	Components     []string // extra components beyond the profile
	Targets        []string // extra targets beyond the native one
	Force          bool     // reinstall even when the update hash matches
	AllowDowngrade bool     // permit resolving to an older release date
}

// Installed describes one toolchain found under the home directory.
type Installed struct {
	Name    string
	Path    string
	Version string
}

// NewManager creates a new toolchain manager.
func NewManager(cfg *config.Config, n notify.Sink) (*Manager, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	tmp, err := temp.NewCfg(filepath.Join(cfg.Home, "tmp"), n)
	if err != nil {
		return nil, err
	}

	dl := &download.Config{Client: download.NewClient(), Notify: n}
	return &Manager{
		config:  cfg,
		notify:  n,
		tmp:     tmp,
		updater: dist.NewUpdater(cfg.DistRoot, dl, tmp, n),
	}, nil
}

// SetUpdater replaces the distribution updater. Mainly useful for tests and
// for callers that front the channel with their own resolution.
func (m *Manager) SetUpdater(u dist.Updater) {
	m.updater = u
}

// InstallCopy installs a toolchain by copying a local directory.
func (m *Manager) InstallCopy(ctx context.Context, name, source string) (Status, error) {
	tc, err := m.toolchain(name, false)
	if err != nil {
		return Status{}, err
	}
	status, err := install.Install(ctx, install.Copy{Source: source}, tc, m.notify)
	if err != nil {
		return Status{}, &Error{Op: "installing", Toolchain: name, Err: err}
	}
	return status, nil
}

// InstallLink installs a toolchain by symlinking to a local directory.
func (m *Manager) InstallLink(ctx context.Context, name, source string) (Status, error) {
	tc, err := m.toolchain(name, false)
	if err != nil {
		return Status{}, err
	}
	status, err := install.Install(ctx, install.Link{Source: source}, tc, m.notify)
	if err != nil {
		return Status{}, &Error{Op: "installing", Toolchain: name, Err: err}
	}
	return status, nil
}

// InstallArchive installs a toolchain from a local tarball installer.
func (m *Manager) InstallArchive(ctx context.Context, name, source string) (Status, error) {
	tc, err := m.toolchain(name, false)
	if err != nil {
		return Status{}, err
	}
	status, err := install.Install(ctx, install.Installer{Source: source, Temp: m.tmp}, tc, m.notify)
	if err != nil {
		return Status{}, &Error{Op: "installing", Toolchain: name, Err: err}
	}
	return status, nil
}

// InstallDist installs or upgrades a toolchain from its distribution
// channel. The channel name doubles as the toolchain name.
func (m *Manager) InstallDist(ctx context.Context, channel string, opts DistOptions) (Status, error) {
	tc, err := m.toolchain(channel, true)
	if err != nil {
		return Status{}, err
	}

	target, err := platform.Detect()
	if err != nil {
		return Status{}, &Error{Op: "installing", Toolchain: channel, Err: err}
	}

	profileName := opts.Profile
	if profileName == "" {
		profileName = m.config.Profile
	}
	profile, err := dist.ParseProfile(profileName)
	if err != nil {
		return Status{}, &Error{Op: "installing", Toolchain: channel, Err: err}
	}

	method := install.Dist{
		Desc:           dist.Descriptor{Channel: channel, Target: target},
		Profile:        profile,
		UpdateHashFile: m.hashFile(channel),
		Updater:        m.updater,
		ForceUpdate:    opts.Force,
		AllowDowngrade: opts.AllowDowngrade,
		Exists:         tc.Exists(),
		OldDate:        tc.Date(),
		Components:     opts.Components,
		Targets:        opts.Targets,
	}

	status, err := install.Install(ctx, method, tc, m.notify)
	if err != nil {
		return Status{}, &Error{Op: "installing", Toolchain: channel, Err: err}
	}
	return status, nil
}

// Update re-resolves an installed distributable toolchain against its
// channel.
func (m *Manager) Update(ctx context.Context, channel string, opts DistOptions) (Status, error) {
	tc, err := m.toolchain(channel, true)
	if err != nil {
		return Status{}, err
	}
	if !tc.Exists() {
		return Status{}, &Error{Op: "updating", Toolchain: channel, Err: ErrToolchainNotFound}
	}
	// A channel install always records its release date; a copy or link
	// install has nothing to re-resolve against.
	if tc.Date() == "" {
		return Status{}, &Error{Op: "updating", Toolchain: channel, Err: ErrNotDistributable}
	}
	return m.InstallDist(ctx, channel, opts)
}

// Uninstall removes an installed toolchain and its recorded update hash.
func (m *Manager) Uninstall(name string) error {
	tc, err := m.toolchain(name, false)
	if err != nil {
		return err
	}
	if !tc.Exists() {
		return &Error{Op: "uninstalling", Toolchain: name, Err: ErrToolchainNotFound}
	}
	if err := install.Uninstall(tc.Path, m.notify); err != nil {
		return &Error{Op: "uninstalling", Toolchain: name, Err: err}
	}
	os.Remove(m.hashFile(name))
	return nil
}

// List enumerates the toolchains installed under the home directory.
func (m *Manager) List() ([]Installed, error) {
	dir := filepath.Join(m.config.Home, "toolchains")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &Error{Op: "listing toolchains", Err: err}
	}

	var installed []Installed
	for _, e := range entries {
		tc := toolchain.New(m.config.Home, e.Name(), false)
		installed = append(installed, Installed{
			Name:    e.Name(),
			Path:    tc.Path,
			Version: tc.Version(),
		})
	}
	return installed, nil
}

// Close releases the manager's temp workspaces.
func (m *Manager) Close() error {
	return m.tmp.Clean()
}

func (m *Manager) toolchain(name string, distributable bool) (*toolchain.Toolchain, error) {
	if name == "" || strings.ContainsAny(name, "/\\") || name == "." || name == ".." {
		return nil, &Error{Op: "resolving", Toolchain: name, Err: ErrInvalidToolchainName}
	}
	return toolchain.New(m.config.Home, name, distributable), nil
}

func (m *Manager) hashFile(name string) string {
	return filepath.Join(m.config.Home, "update-hashes", name)
}
