package main

import (
	"fmt"
	"os"

	"github.com/sdnlab/flowpath/cmd/flowpath/decode"
	"github.com/sdnlab/flowpath/cmd/flowpath/rule"
	"github.com/sdnlab/flowpath/pkg/builder"
	"github.com/spf13/cobra"
)

var version bool

var rootCmd = &cobra.Command{
	Use:   "flowpath",
	Short: "flowpath command line tool",
	Run: func(cmd *cobra.Command, args []string) {
		if version {
			fmt.Println(builder.BuildInfo())
			os.Exit(0)
		}
		cmd.Help()
	},
}

func main() {
	cobra.EnableTraverseRunHooks = true
	rule.Export(rootCmd)
	decode.Export(rootCmd)
	rootCmd.Flags().BoolVarP(&version, "version", "V", false, "Print version")
	rootCmd.Execute()
}
