// Package main provides the remap command-line tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "remap",
		Short:         "Translate transcript coordinates to genomic coordinates",
		Long:          "remap converts 0-based transcript coordinates to genomic coordinates\nusing per-transcript CIGAR alignments and anchor positions.",
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cobra.OnInitialize(initConfig)

	root.AddCommand(newTranslateCmd())
	root.AddCommand(newConfigCmd())

	return root
}

// initConfig loads ~/.remap.yaml and REMAP_* environment variables.
func initConfig() {
	viper.SetDefault("workers", 0)

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".remap")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("REMAP")
	viper.AutomaticEnv()

	// A missing config file is fine; only report real read errors.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: could not read config: %v\n", err)
		}
	}
}
