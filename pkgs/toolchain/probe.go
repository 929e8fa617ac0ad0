package toolchain

import (
	"bytes"
	"context"

	"github.com/kballard/go-shellquote"
	"github.com/qiniu/x/log"
)

// probe runs the compiler with the variant's version flags and parses the
// banner from the merged stdout and stderr. The exit status is ignored: cl
// exits non-zero without input files.
func (inv *Invoker) probe(ctx context.Context) (CompilerInfo, error) {
	v := inv.variant
	argv := inv.BuildCommand(v.VersionFlags, "")
	log.Debugf("probing native toolchain: %s", shellquote.Join(argv...))

	var out bytes.Buffer
	cmd := command(ctx, inv.workDir, argv)
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Start(); err != nil {
		return CompilerInfo{}, &Error{
			Kind: KindToolchainNotFound,
			OS:   v.OS,
			Cmd:  argv,
			Msg:  "collecting native compiler info failed",
			Err:  err,
		}
	}
	_ = cmd.Wait()
	if ctx.Err() != nil {
		return CompilerInfo{}, interrupted(ctx, v, argv)
	}

	info := v.ParseBanner(out.String())
	if info == nil {
		log.Debugf("unrecognized compiler banner:\n%s", out.String())
		return CompilerInfo{}, &Error{
			Kind: KindToolchainNotFound,
			OS:   v.OS,
			Cmd:  argv,
			Msg:  "unable to detect supported " + v.OS.String() + " native software development toolchain",
		}
	}
	return *info, nil
}
