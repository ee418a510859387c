package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jvmdbg/jdwp-proxy/internal/config"
)

var configOutPath string
var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the proxy's configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default jdwp-proxy.yaml",
	Long: `Write a commented-free jdwp-proxy.yaml populated with the proxy's
default values, ready to be edited in place.

Examples:
  jdwp-proxy config init
  jdwp-proxy config init --output /etc/jdwp-proxy/jdwp-proxy.yaml`,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().StringVarP(&configOutPath, "output", "o", "jdwp-proxy.yaml", "path to write the config file")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite the file if it already exists")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if !configForce {
		if _, err := os.Stat(configOutPath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configOutPath)
		}
	}

	var cfg config.ProxyConfig
	cfg.SetDefaults()

	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.WriteFile(configOutPath, out, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configOutPath, err)
	}

	fmt.Fprintf(os.Stderr, "Wrote default config to %s\n", configOutPath)
	return nil
}
