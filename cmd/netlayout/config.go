package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"netlayout/internal/config"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, path, err := loadConfig()
				if err != nil {
					return err
				}
				if path == "" {
					fmt.Println(subtle.Sprint("No config file found, using defaults. Searched:"))
					for _, p := range config.SearchPaths() {
						fmt.Println(subtle.Sprint("  " + p))
					}
				} else {
					fmt.Printf("Config: %s\n", path)
				}
				fmt.Println(cfg.Summary())
				return nil
			},
		},
		&cobra.Command{
			Use:   "init [path]",
			Short: "Write a default config file (.yaml or .toml)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				path := config.DefaultConfigPath()
				if len(args) == 1 {
					path = args[0]
				}
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists", path)
				}
				if err := config.DefaultConfig().Save(path); err != nil {
					return err
				}
				fmt.Printf("%s wrote %s\n", good.Sprint("✓"), path)
				return nil
			},
		},
	)

	return cmd
}
