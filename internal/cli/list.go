// internal/cli/list.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed toolchains",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	mgr, err := newManager()
	if err != nil {
		return err
	}
	defer mgr.Close()

	installed, err := mgr.List()
	if err != nil {
		return err
	}

	if len(installed) == 0 {
		fmt.Println("no toolchains installed")
		return nil
	}

	for _, tc := range installed {
		if tc.Version != "" {
			fmt.Printf("%s\t%s\n", tc.Name, tc.Version)
		} else {
			fmt.Println(tc.Name)
		}
	}
	return nil
}
