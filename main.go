package main

import (
	"github.com/cottand/elab/cmd"
	"github.com/spf13/cobra"
	"os"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "elab [subcommand]",
	Short:        "elab 🕳️\n an interactive, tactic-based elaboration engine",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.RunCmd)
}
