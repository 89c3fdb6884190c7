package main

import (
	"github.com/aretw0/vitrine/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP preview server",
	Long: `Runs one live preview session behind a JSON API. Edits are debounced like in
the editor, and every new preview is streamed on GET /events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := runOptions(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			opts.Config.HTTP.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("redis") {
			opts.Config.Redis.URL, _ = cmd.Flags().GetString("redis")
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		err = cli.RunServe(ctx, opts)
		cli.ReportSignal(cmd.ErrOrStderr(), ctx)
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().String("redis", "", "Redis URL to publish previews to")
}
