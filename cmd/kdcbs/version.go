package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the kdcbs build version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("kdcbs %s (%s)\n", buildVersionRef, buildCommitRef)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
