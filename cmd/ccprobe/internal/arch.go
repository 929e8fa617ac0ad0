package internal

import (
	"fmt"

	"github.com/goplus/ccprobe/pkgs/arch"
	"github.com/spf13/cobra"
)

var archCmd = &cobra.Command{
	Use:   "arch <token>...",
	Short: "Print the canonical architecture of compiler tokens",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, token := range args {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", token, arch.Resolve(token))
		}
	},
}

func init() {
	rootCmd.AddCommand(archCmd)
}
