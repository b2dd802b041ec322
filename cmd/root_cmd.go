package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gotoml",
	Short: "gotoml is a command-line TOML parser and inspector.",
	Long:  "gotoml parses TOML v1.0.0 documents and can print or flatten the result. It can be used to inspect config files from the command line or to pipe a flattened view into other tooling.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gotoml",
	Long:  `All software has versions. This is gotoml's`,
	Run: func(cmd *cobra.Command, args []string) {
		logrus.Info("gotoml v0.1 -- HEAD")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tomlCmd)
}
