// Package cmd defines the sora command line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sora",
	Short: "Sora - health habit assistant backend",
	Long: `Sora is a conversational health habit assistant backed by a
retrieval-augmented resource corpus.

Commands:
  serve    start the HTTP API server
  index    build the vector index from the resource corpus
  version  show version information`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
