// internal/cli/uninstall.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <toolchain>",
	Short: "Remove an installed toolchain",
	Args:  cobra.ExactArgs(1),
	RunE:  runUninstall,
}

func runUninstall(cmd *cobra.Command, args []string) error {
	name := args[0]

	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	if err := mgr.Uninstall(name); err != nil {
		return err
	}

	fmt.Printf("%s: uninstalled\n", name)
	return nil
}
