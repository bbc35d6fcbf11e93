// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	toolup "github.com/toolup-dev/toolup"
	"github.com/toolup-dev/toolup/pkg/config"
	"github.com/toolup-dev/toolup/pkg/logging"
	"github.com/toolup-dev/toolup/pkg/notify"
)

var (
	cfgFile   string
	verbosity int
	cfg       *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "toolup",
	Short: "Toolchain installer",
	Long: `toolup - toolchain installer

Installs and upgrades versioned toolchains from a distribution channel,
a local directory (copied or symlinked) or a local tarball installer.`,
	Version: "0.1.0",
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/toolup/config.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase logging verbosity")

	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(listCmd)
}

func initConfig() {
	logging.SetupLogger(verbosity + 1)

	var err error
	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}
}

// newManager builds a Manager wired to the zerolog notification sink.
func newManager() (*toolup.Manager, error) {
	sink := notify.Logging(logging.GetLogger("install"))
	return toolup.NewManager(cfg, sink)
}
