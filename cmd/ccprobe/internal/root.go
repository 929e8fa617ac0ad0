package internal

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/goplus/ccprobe/internal/config"
	"github.com/goplus/ccprobe/pkgs/toolchain"
	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	verbose     bool
	flagCC      string
	flagArch    string
	flagLibC    string
	flagRuntime string
)

var rootCmd = &cobra.Command{
	Use:   "ccprobe",
	Short: "ccprobe finds and drives the native C compiler",
	Long: `ccprobe locates the host's native C/C++ compiler, identifies its vendor,
version and target architecture, validates it against the build target and
runs compilations with it.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetOutputLevel(log.Ldebug)
		} else {
			log.SetOutputLevel(log.Linfo)
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Configuration file (default ./"+config.FileName+" if present)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&flagCC, "cc", "", "Compiler executable, bypassing the PATH search")
	flags.StringVar(&flagArch, "target-arch", "", "Target architecture (default: host)")
	flags.StringVar(&flagLibC, "libc", "", "C library: glibc, musl or bionic")
	flags.StringVar(&flagRuntime, "runtime", "", "Runtime version the build targets, e.g. 21 or 1.8")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}

// loadConfig builds the configuration with precedence flags > environment >
// file > defaults.
func loadConfig(lookup func(string) (string, bool)) (*config.Config, error) {
	path := configPath
	if path == "" {
		if _, err := os.Stat(config.FileName); err == nil {
			path = config.FileName
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}

	if flagCC != "" {
		cfg.CompilerPath = flagCC
	}
	if flagArch != "" {
		cfg.TargetArch = flagArch
	}
	if flagLibC != "" {
		cfg.LibC = flagLibC
	}
	if flagRuntime != "" {
		rt, err := config.ParseRuntimeVersion(flagRuntime)
		if err != nil {
			return nil, err
		}
		cfg.RuntimeVersion = rt
	}
	return cfg, nil
}

// newInvoker probes the compiler configured in cfg.
func newInvoker(ctx context.Context, cfg *config.Config, workDir string) (*toolchain.Invoker, error) {
	opts, err := cfg.InvokerOptions(workDir)
	if err != nil {
		return nil, err
	}
	return toolchain.New(ctx, opts)
}
