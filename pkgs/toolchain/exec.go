package toolchain

import (
	"context"
	"os/exec"
	"time"
)

// waitDelay bounds how long Wait blocks on output pipes held open by
// grandchildren once the compiler itself has exited or been killed.
const waitDelay = 5 * time.Second

// command prepares argv to run in dir. On cancellation of ctx the whole
// process group is killed.
func command(ctx context.Context, dir string, argv []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		return killProcessGroup(cmd)
	}
	cmd.WaitDelay = waitDelay
	return cmd
}

func interrupted(ctx context.Context, v *Variant, argv []string) error {
	return &Error{
		Kind: KindBuildInterrupted,
		OS:   v.OS,
		Cmd:  argv,
		Err:  context.Cause(ctx),
	}
}
