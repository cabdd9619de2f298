package main

import (
	"os"

	"github.com/spf13/viper"

	"github.com/fivetwenty-io/canvas-client/cmd/canvas/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := commands.NewRootCommand(version, commit, date)

	err := rootCmd.Execute()
	if err != nil {
		commands.ReportError(os.Stderr, err, viper.GetBool(commands.KeyDebug))
		os.Exit(1)
	}
}
