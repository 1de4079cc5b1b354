package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moasq/lk/internal/config"
	"github.com/moasq/lk/internal/terminal"
)

// Version is set at build time.
var Version = "0.5.0"

var rootCmd = &cobra.Command{
	Use:   "lk [script] [function] [params...]",
	Short: "Explore and run the functions in your shell scripts",
	Long: `lk finds executable scripts in the current directory and below, and runs
the shell functions inside them. It has two modes: 'list' walks scripts and
their functions one level at a time, 'fuzzy' searches every function of
every script at once.`,
	Version:       Version,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Flag values.
var (
	defaultFlag string
	fuzzyFlag   bool
	listFlag    bool
	ignoreFlag  []string
	numberFlag  int
)

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&defaultFlag, "default", "d", "", "Set the default mode: fuzzy or list")
	flags.BoolVarP(&fuzzyFlag, "fuzzy", "f", false, "Fuzzy search for available scripts and functions")
	flags.BoolVarP(&listFlag, "list", "l", false, "List available scripts and functions")
	flags.IntVarP(&numberFlag, "number", "n", 7, "Number of rows to show in fuzzy search")
	rootCmd.PersistentFlags().StringSliceVarP(&ignoreFlag, "ignore", "i", nil, "Directories to skip when looking for scripts (repeatable)")
	rootCmd.MarkFlagsMutuallyExclusive("fuzzy", "list")
	// Anything after the script name belongs to the function.
	flags.SetInterspersed(false)

	rootCmd.AddCommand(mcpCmd)
}

func runRoot(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if defaultFlag != "" {
		return setDefaultMode(a, defaultFlag)
	}

	rows := a.cfg.Rows
	if cmd.Flags().Changed("number") {
		rows = numberFlag
	}
	ignore := a.ignoreList()

	execs, err := discover(".", ignore, a.logger)
	if err != nil {
		return err
	}

	mode := a.cfg.DefaultMode
	switch {
	case fuzzyFlag:
		mode = config.ModeFuzzy
	case listFlag, len(args) > 0:
		mode = config.ModeList
	}
	a.logger.Info("starting", "mode", mode, "executables", len(execs))

	if mode == config.ModeFuzzy {
		return runFuzzy(cmd.Context(), cmd.OutOrStdout(), a, execs, rows)
	}
	return runList(cmd.Context(), cmd.OutOrStdout(), a, execs, args)
}

func setDefaultMode(a *app, mode string) error {
	if err := a.cfg.SetDefaultMode(mode); err != nil {
		return fmt.Errorf("%w. You can try either mode out with --fuzzy or --list", err)
	}
	if err := a.cfg.Save(a.paths.ConfigFile()); err != nil {
		return err
	}
	terminal.Success(fmt.Sprintf("Default mode set to %s", mode))
	return nil
}
