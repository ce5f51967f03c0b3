package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "projectd",
	Short: "projectd runs the project registry API",
	Long: `projectd registers projects, tracks their status and serves dashboard
aggregates over HTTP. Run "projectd serve" to start the server.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(ServeCmd)
	rootCmd.AddCommand(VersionCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
