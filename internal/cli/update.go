// internal/cli/update.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	toolup "github.com/toolup-dev/toolup"
)

var (
	updateForce     bool
	updateDowngrade bool
)

var updateCmd = &cobra.Command{
	Use:   "update <toolchain>",
	Short: "Update an installed distributable toolchain",
	Long: `Re-resolve an installed toolchain against its distribution channel.

Examples:
  toolup update stable
  toolup update nightly --allow-downgrade`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&updateForce, "force", false, "reinstall even if the update hash matches")
	updateCmd.Flags().BoolVar(&updateDowngrade, "allow-downgrade", false, "allow resolving to an older release")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	name := args[0]

	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	status, err := mgr.Update(context.Background(), name, toolup.DistOptions{
		Force:          updateForce,
		AllowDowngrade: updateDowngrade,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s\n", name, status)
	return nil
}
