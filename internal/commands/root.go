package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/buildinfo"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/config"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	verbose    bool
	logger     *slog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "payroll",
		Short:   "Bi-weekly payroll for commission and hourly staff",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", config.FileName, "path to the project configuration")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug detail to stderr")

	rootCmd.AddCommand(
		newInitCommand(),
		newEmployeesCommand(opts),
		newTimecardCommand(opts),
		newAdjustCommand(opts),
		newRunCommand(opts),
		newLogCommand(opts),
	)

	return rootCmd
}
