package cmd

import (
	"fmt"
	"github.com/aleph-zero/flutterstack/demo"
	"github.com/spf13/cobra"
	"os"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through the stack operations",
	Long:  "Exercise construction, assignment, fill, clear, traversals and predicates and print the results",
	Run: func(cmd *cobra.Command, args []string) {
		if err := demo.Run(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
