package internal

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/goplus/ccprobe/pkgs/toolchain"
	"github.com/qiniu/x/errors"
	"github.com/spf13/cobra"
)

var compileOutput string

var compileCmd = &cobra.Command{
	Use:   "compile <source> -o <target> [-- options...]",
	Short: "Compile a source file with the native compiler",
	Long: `Compile runs the native compiler on one source file and prints every
diagnostic it reports. Arguments after -- are passed to the compiler before
the target flags. Interrupting the command kills the compiler.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "Output file")
	cobra.CheckErr(compileCmd.MarkFlagRequired("output"))
	rootCmd.AddCommand(compileCmd)
}

// splitDash separates positional arguments from those after "--".
func splitDash(args []string, dash int) (positional, passthrough []string) {
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}

func runCompile(cmd *cobra.Command, args []string) error {
	positional, options := splitDash(args, cmd.ArgsLenAtDash())
	if len(positional) != 1 {
		return fmt.Errorf("compile takes exactly one source file, got %d", len(positional))
	}
	source := positional[0]

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(os.LookupEnv)
	if err != nil {
		return err
	}
	inv, err := newInvoker(ctx, cfg, wd)
	if err != nil {
		return err
	}

	var c toolchain.Collector
	if err := inv.Compile(ctx, options, source, compileOutput, &c); err != nil {
		return err
	}
	cmd.SilenceUsage = true
	return reportDiagnostics(cmd, c.Errs)
}

// reportDiagnostics prints each compile failure and returns them as one error.
func reportDiagnostics(cmd *cobra.Command, diags []error) error {
	var errs errors.List
	for _, err := range diags {
		fmt.Fprintln(cmd.ErrOrStderr(), renderStatus(false, err.Error()))
		errs.Add(err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d compile error(s): %w", len(errs), errs.ToError())
	}
	return nil
}
