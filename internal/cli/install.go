// internal/cli/install.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	toolup "github.com/toolup-dev/toolup"
)

var (
	installCopy       string
	installLink       string
	installInstaller  string
	installProfile    string
	installComponents []string
	installTargets    []string
	installForce      bool
	installDowngrade  bool
)

var installCmd = &cobra.Command{
	Use:   "install <toolchain>",
	Short: "Install a toolchain",
	Long: `Install a toolchain from its distribution channel, or from a local
source when one of --copy, --link or --installer is given.

Examples:
  toolup install stable
  toolup install stable --profile=minimal --component docs
  toolup install nightly --force
  toolup install mytc --copy ~/build/toolchain
  toolup install mytc --link ~/build/toolchain
  toolup install mytc --installer ./toolchain-1.2.0.tar.gz`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVar(&installCopy, "copy", "", "install by copying a local directory")
	installCmd.Flags().StringVar(&installLink, "link", "", "install by symlinking a local directory")
	installCmd.Flags().StringVar(&installInstaller, "installer", "", "install from a local tarball installer")
	installCmd.Flags().StringVar(&installProfile, "profile", "", "component profile for fresh installs (minimal, default, full)")
	installCmd.Flags().StringSliceVar(&installComponents, "component", nil, "extra components to install")
	installCmd.Flags().StringSliceVar(&installTargets, "target", nil, "extra targets to install")
	installCmd.Flags().BoolVar(&installForce, "force", false, "reinstall even if the update hash matches")
	installCmd.Flags().BoolVar(&installDowngrade, "allow-downgrade", false, "allow resolving to an older release")
}

func runInstall(cmd *cobra.Command, args []string) error {
	name := args[0]

	local := 0
	for _, flag := range []string{installCopy, installLink, installInstaller} {
		if flag != "" {
			local++
		}
	}
	if local > 1 {
		return fmt.Errorf("--copy, --link and --installer are mutually exclusive")
	}

	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	ctx := context.Background()

	var status toolup.Status
	switch {
	case installCopy != "":
		status, err = mgr.InstallCopy(ctx, name, installCopy)
	case installLink != "":
		status, err = mgr.InstallLink(ctx, name, installLink)
	case installInstaller != "":
		status, err = mgr.InstallArchive(ctx, name, installInstaller)
	default:
		status, err = mgr.InstallDist(ctx, name, toolup.DistOptions{
			Profile:        installProfile,
			Components:     installComponents,
			Targets:        installTargets,
			Force:          installForce,
			AllowDowngrade: installDowngrade,
		})
	}
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s\n", name, status)
	return nil
}
