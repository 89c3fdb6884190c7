package main

import (
	"fmt"
	"os"

	"github.com/aretw0/vitrine/internal/cli"
	"github.com/aretw0/vitrine/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vitrine",
	Short: "Vitrine is a live previewer for XAML-style markup",
	Long: `Vitrine parses markup fragments as you type, injects the default namespace
declarations when they are missing, and shows what the fragment turns into.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a config file (default ./"+config.DefaultFile+" when present)")
	flags.Bool("debug", false, "Enable debug logging on stderr")
	flags.Duration("debounce", 0, "Quiet period after the last edit before a preview runs")
	flags.Bool("auto-run", true, "Evaluate the document automatically after edits")
	flags.Bool("wrap", true, "Inject default namespace declarations before parsing")
	flags.String("template", "", "Starter template loaded when no document is given")
}

// loadConfig resolves defaults, the config file, VITRINE_* variables and
// finally any flag set explicitly on the command line.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if flags.Changed("debounce") {
		cfg.Debounce, _ = flags.GetDuration("debounce")
	}
	if flags.Changed("auto-run") {
		cfg.AutoRun, _ = flags.GetBool("auto-run")
	}
	if flags.Changed("wrap") {
		cfg.Wrap, _ = flags.GetBool("wrap")
	}
	if flags.Changed("template") {
		cfg.Template, _ = flags.GetString("template")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// runOptions builds the options shared by every command.
func runOptions(cmd *cobra.Command) (cli.RunOptions, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cli.RunOptions{}, err
	}
	return cli.RunOptions{
		Config: cfg,
		Out:    cmd.OutOrStdout(),
	}, nil
}
