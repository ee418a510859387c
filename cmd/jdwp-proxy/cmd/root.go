// Package cmd provides the CLI commands for the JDWP proxy.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jvmdbg/jdwp-proxy/internal/config"
)

var cfgFile string
var pidFileFlag string

var rootCmd = &cobra.Command{
	Use:   "jdwp-proxy",
	Short: "jdwp-proxy - JDWP multiplexing debug proxy",
	Long: `jdwp-proxy sits between one JVM and many debugger clients, multiplexing
their JDWP command/reply traffic over a single upstream connection.

Quick start:
  1. Create a config file: jdwp-proxy.yaml
  2. Run: jdwp-proxy start

Configuration:
  Config is loaded from jdwp-proxy.yaml in the current directory,
  $HOME/.jdwp-proxy/, or /etc/jdwp-proxy/.

  Environment variables can override config values with the JDWP_PROXY_ prefix.
  Example: JDWP_PROXY_LISTEN_ADDR=localhost:1234

Commands:
  start       Start the proxy
  stop        Stop the running proxy
  version     Print version information`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./jdwp-proxy.yaml)")
	rootCmd.PersistentFlags().StringVar(&pidFileFlag, "pid-file", "", "path to the PID file (default: ~/.jdwp-proxy/server.pid)")
}

func initConfig() {
	config.InitViper(cfgFile)
}
