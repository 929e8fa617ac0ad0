package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/goplus/ccprobe/internal/config"
	"github.com/goplus/ccprobe/internal/env"
	"github.com/goplus/ccprobe/internal/probecache"
	"github.com/goplus/ccprobe/pkgs/toolchain"
	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"
)

var infoCached bool
var infoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the identity of the native compiler",
	Long: `Info probes the native compiler and prints its product name, vendor,
version and target architecture. The result is recorded in the probe store.`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().BoolVar(&infoCached, "cached", false, "Reuse a recorded probe of the same compiler binary")
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Print JSON")
	rootCmd.AddCommand(infoCmd)
}

type infoResult struct {
	Compiler string                 `json:"compiler"`
	LibC     string                 `json:"libc"`
	Info     toolchain.CompilerInfo `json:"info"`
	Cached   bool                   `json:"cached"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(os.LookupEnv)
	if err != nil {
		return err
	}
	probeDir, err := env.ProbeDir()
	if err != nil {
		return fmt.Errorf("failed to get probe dir: %w", err)
	}
	store, err := probecache.Open(probeDir)
	if err != nil {
		return fmt.Errorf("failed to open probe store: %w", err)
	}

	res, err := identify(cmd.Context(), cfg, store, infoCached)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if infoJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	fmt.Fprint(out, renderInfo(res))
	return nil
}

// identify returns the identity of the compiler configured in cfg, from the
// store when useCache is set and the record is current, by probing otherwise.
func identify(ctx context.Context, cfg *config.Config, store *probecache.Store, useCache bool) (*infoResult, error) {
	lc, err := cfg.NewLibC()
	if err != nil {
		return nil, err
	}
	if useCache {
		v, err := toolchain.HostVariant()
		if err != nil {
			return nil, err
		}
		compiler, err := toolchain.ResolveCompilerPath(cfg.CompilerPath, v, os.Getenv("PATH"))
		if err != nil {
			return nil, err
		}
		if info, ok := store.Get(compiler); ok {
			log.Debugf("probe record hit: %s", compiler)
			return &infoResult{Compiler: compiler, LibC: lc.Name(), Info: info, Cached: true}, nil
		}
		// Probe the binary resolved above.
		resolved := *cfg
		resolved.CompilerPath = compiler
		cfg = &resolved
	}

	scratch, err := env.ScratchDir()
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	inv, err := newInvoker(ctx, cfg, scratch)
	if err != nil {
		return nil, err
	}
	if err := store.Put(inv.CompilerPath(), inv.Info()); err != nil {
		log.Warnf("cannot record probe of %s: %v", inv.CompilerPath(), err)
	} else if err := store.Save(); err != nil {
		log.Warnf("cannot save probe store: %v", err)
	}
	return &infoResult{Compiler: inv.CompilerPath(), LibC: lc.Name(), Info: inv.Info()}, nil
}
