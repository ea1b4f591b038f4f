package cmd

import (
	"github.com/aleph-zero/flutterstack/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var loaderCmd = &cobra.Command{
	Use:   "loader",
	Short: "Run a loader client",
	Long:  "Create a remote stack from a file holding a JSON array or NDJSON stream of values",
	Run: func(cmd *cobra.Command, args []string) {
		client.BootstrapLoader(client.NewLoaderConfig(
			client.WithClientConfig(clientConfig()),
			client.WithStack(viper.GetString("client.loader.stack")),
			client.WithFilename(viper.GetString("client.loader.file"))))
	},
}

func init() {
	clientCmd.AddCommand(loaderCmd)
	loaderCmd.Flags().String("client.loader.stack", "", "Name of the stack to create")
	loaderCmd.Flags().String("client.loader.file", "", "File of values to load")

	viper.BindPFlag("client.loader.stack", loaderCmd.Flags().Lookup("client.loader.stack"))
	viper.BindPFlag("client.loader.file", loaderCmd.Flags().Lookup("client.loader.file"))
}
