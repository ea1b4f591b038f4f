package cmd

import (
	"github.com/aleph-zero/flutterstack/client"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run the command language in process",
	Long:  "Run an interactive session against an in-process stack registry",
	Run: func(cmd *cobra.Command, args []string) {
		client.BootstrapShell(stacksConfig())
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
