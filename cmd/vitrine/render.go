package main

import (
	"errors"
	"os"

	"github.com/aretw0/vitrine/internal/cli"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [FILE|-]",
	Short: "Preview a markup document once",
	Long: `Evaluates the document once and prints its preview. Reads standard input
when FILE is "-" or omitted. Exits with status 1 when the markup fails to parse.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := runOptions(cmd)
		if err != nil {
			return err
		}
		opts.Path = "-"
		if len(args) > 0 {
			opts.Path = args[0]
		}
		opts.JSON, _ = cmd.Flags().GetBool("json")

		_, err = cli.RunRender(cmd.Context(), opts, cmd.InOrStdin())
		if errors.Is(err, cli.ErrRenderFailed) {
			// The error preview is already on stdout.
			os.Exit(1)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().Bool("json", false, "Print the preview as JSON")
}
