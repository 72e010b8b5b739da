package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/mdfmt"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mdfmt",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mdfmt version %s\n", strings.TrimSpace(mdfmt.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
