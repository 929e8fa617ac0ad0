package internal

import (
	"fmt"
	"os"

	"github.com/goplus/ccprobe/internal/env"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the native compiler suits the build target",
	Long: `Check probes the native compiler and validates its version and target
architecture against the configured target architecture and runtime version.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
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
	req, err := cfg.Requirements()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := inv.Verify(req); err != nil {
		fmt.Fprintln(out, renderStatus(false, err.Error()))
		cmd.SilenceUsage = true
		return fmt.Errorf("toolchain check failed: %w", err)
	}
	fmt.Fprintln(out, renderStatus(true, inv.Info().String()))
	return nil
}
