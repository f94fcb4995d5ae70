package cmd

import (
	"fmt"
	"os"

	sparkdb "github.com/sparkify/sparkdb/pkg"
	"github.com/sparkify/sparkdb/pkg/config"
	"github.com/spf13/cobra"
)

type funcFlag func(cmd *cobra.Command)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", sparkdb.Version, sparkdb.Build)
		os.Exit(0)
	}
}

func songsDirFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("songs-dir") {
		return
	}
	s, _ := cmd.Flags().GetString("songs-dir")
	opts = append(opts, config.OptLoadSongDir(s))
}

func logsDirFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("logs-dir") {
		return
	}
	s, _ := cmd.Flags().GetString("logs-dir")
	opts = append(opts, config.OptLoadLogDir(s))
}

func progressBarFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("progress-bar") {
		return
	}
	b, _ := cmd.Flags().GetBool("progress-bar")
	opts = append(opts, config.OptLoadProgressBar(b))
}

func driverFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("driver") {
		return
	}
	s, _ := cmd.Flags().GetString("driver")
	opts = append(opts, config.OptDatabaseDriver(s))
}
