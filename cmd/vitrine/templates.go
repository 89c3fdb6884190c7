package main

import (
	"fmt"

	"github.com/aretw0/vitrine/pkg/templates"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the starter templates",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range templates.All() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", t.Name, t.Title)
		}
	},
}

var templatesShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print the markup of a starter template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := templates.Body(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), body)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(templatesShowCmd)
}
