package internal

import (
	"fmt"
	"os"

	"github.com/goplus/ccprobe/internal/env"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
)

var cmdlineOutput string

var cmdlineCmd = &cobra.Command{
	Use:   "cmdline <inputs...> [-o target] [-- options...]",
	Short: "Print the compiler command line for the given inputs",
	Long: `Cmdline prints, shell-quoted, the command ccprobe would run to compile
the inputs with the configured compiler, options and C library.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCmdline,
}

func init() {
	cmdlineCmd.Flags().StringVarP(&cmdlineOutput, "output", "o", "", "Output file")
	rootCmd.AddCommand(cmdlineCmd)
}

func runCmdline(cmd *cobra.Command, args []string) error {
	inputs, options := splitDash(args, cmd.ArgsLenAtDash())
	if len(inputs) == 0 {
		return fmt.Errorf("no input files")
	}

	scratch, err := env.ScratchDir()
	if err != nil {
		return fmt.Errorf("failed to create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	cfg, err := loadConfig(os.LookupEnv)
	if err != nil {
		return err
	}
	inv, err := newInvoker(cmd.Context(), cfg, scratch)
	if err != nil {
		return err
	}
	argv := inv.BuildCommand(options, cmdlineOutput, inputs...)
	fmt.Fprintln(cmd.OutOrStdout(), shellquote.Join(argv...))
	return nil
}
