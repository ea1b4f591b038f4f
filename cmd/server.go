package cmd

import (
	"fmt"
	"github.com/aleph-zero/flutterstack/server"
	"github.com/aleph-zero/flutterstack/service/stacks"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"os"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run a flutterstack server",
	Long:  "Run a flutterstack server",
	Run: func(cmd *cobra.Command, args []string) {
		server.Bootstrap(server.NewConfig(
			server.WithAddress(viper.GetString("server.addr")),
			server.WithPort(viper.GetUint16("server.port")),
			server.WithNodeName(viper.GetString("identity.node-name")),
			server.WithStacksConfig(stacksConfig())))
	},
}

const (
	apiListenAddr = "0.0.0.0"
	apiListenPort = 1234
)

func stacksConfig() *stacks.Config {
	return stacks.NewConfig(
		stacks.WithDefaultCapacity(viper.GetInt("stacks.default-capacity")),
		stacks.WithMaxCapacity(viper.GetInt("stacks.max-capacity")))
}

func addStacksFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().Int("stacks.default-capacity", stacks.DefaultCapacity, "Capacity of stacks created without one")
	cmd.PersistentFlags().Int("stacks.max-capacity", stacks.MaxCapacity, "Largest capacity a stack may be created with")

	viper.BindPFlag("stacks.default-capacity", cmd.PersistentFlags().Lookup("stacks.default-capacity"))
	viper.BindPFlag("stacks.max-capacity", cmd.PersistentFlags().Lookup("stacks.max-capacity"))
}

func init() {
	rootCmd.AddCommand(serverCmd)

	hostname, err := os.Hostname()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	serverCmd.PersistentFlags().String("server.addr", apiListenAddr, "Address to bind to")
	serverCmd.PersistentFlags().Uint16("server.port", apiListenPort, "Port to listen on")
	serverCmd.PersistentFlags().String("identity.node-name", hostname, "Unique identifier for the server")

	viper.BindPFlag("server.addr", serverCmd.PersistentFlags().Lookup("server.addr"))
	viper.BindPFlag("server.port", serverCmd.PersistentFlags().Lookup("server.port"))
	viper.BindPFlag("identity.node-name", serverCmd.PersistentFlags().Lookup("identity.node-name"))

}
