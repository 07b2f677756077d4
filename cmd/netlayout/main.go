// Command netlayout lays out network topologies with a force-directed
// simulation. It serves interactive layout sessions over HTTP or lays out a
// document file headlessly.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"netlayout/internal/config"
)

var version = "0.3.0"

// Output colors
var (
	brand  = color.New(color.FgHiGreen, color.Bold)
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	warn   = color.New(color.FgYellow)
	bad    = color.New(color.FgRed)
)

var configPath string

var rootCmd = &cobra.Command{
	Use:     "netlayout",
	Short:   "netlayout - force-directed layout for network topologies",
	Long:    brand.Sprint("netlayout") + " - cluster and lay out network elements\n" + subtle.Sprint("Serve interactive layout sessions or lay out a document file"),
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	},
}

func init() {
	rootCmd.SetVersionTemplate("netlayout {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: search "+config.EnvConfigPath+", ./"+config.ConfigFileName+", XDG dirs)")

	rootCmd.AddCommand(
		serveCmd(),
		runCmd(),
		configCmd(),
	)
}

// loadConfig reads the config named by --config, or searches the default locations
func loadConfig() (*config.Config, string, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	return config.Load()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, bad.Sprint("Error: "), err)
		os.Exit(1)
	}
}
