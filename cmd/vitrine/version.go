package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/vitrine"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of vitrine",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vitrine version %s\n", strings.TrimSpace(vitrine.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
