package cmd

import (
	"fmt"

	"github.com/project-registry/config"
	"github.com/spf13/cobra"
)

// VersionCmd prints the build version
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of projectd",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "projectd %s\n", config.GetEnv("APP_VERSION", "1.0.0"))
	},
}
