package main

import (
	"github.com/aretw0/vitrine/internal/cli"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Preview a markup file live while it is edited",
	Long: `Watches FILE and re-renders its preview after every save. Bursts of saves
are collapsed into a single run once the debounce window elapses.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := runOptions(cmd)
		if err != nil {
			return err
		}
		opts.Path = args[0]
		opts.Quiet, _ = cmd.Flags().GetBool("quiet")

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()
		err = cli.RunWatch(ctx, opts)
		cli.ReportSignal(cmd.ErrOrStderr(), ctx)
		return err
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolP("quiet", "q", false, "Hide the banner and system messages")
}
