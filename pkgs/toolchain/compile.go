package toolchain

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/qiniu/x/log"
)

// ErrorHandler receives compile failures. line is either one diagnostic line
// classified as an error, or the whole joined output of a compiler that
// exited non-zero without any classified line.
type ErrorHandler interface {
	HandleCompileError(cmd []string, source, line string)
}

// ErrorHandlerFunc adapts a function to ErrorHandler.
type ErrorHandlerFunc func(cmd []string, source, line string)

func (f ErrorHandlerFunc) HandleCompileError(cmd []string, source, line string) {
	f(cmd, source, line)
}

// Collector is an ErrorHandler that records every failure as a
// KindCompileFailed *Error.
type Collector struct {
	Errs []error
}

func (c *Collector) HandleCompileError(cmd []string, source, line string) {
	c.Errs = append(c.Errs, &Error{
		Kind: KindCompileFailed,
		Cmd:  cmd,
		Msg:  source + ": " + line,
	})
}

// Failed reports whether anything was collected.
func (c *Collector) Failed() bool {
	return len(c.Errs) > 0
}

// Compile compiles source into target. Diagnostics are reported through h,
// which may be nil; they are not returned. The returned error is non-nil
// only if the compiler could not be started (KindProcessLaunchFailure) or ctx
// was cancelled while it ran (KindBuildInterrupted).
func (inv *Invoker) Compile(ctx context.Context, options []string, source, target string, h ErrorHandler) error {
	v := inv.variant
	if target != "" {
		target = filepath.Clean(target)
	}
	argv := inv.BuildCommand(options, target, filepath.Clean(source))
	log.Debugf("compiling %s: %s", source, shellquote.Join(argv...))

	var diag, other bytes.Buffer
	cmd := command(ctx, inv.workDir, argv)
	if v.Diagnostics == Stdout {
		cmd.Stdout, cmd.Stderr = &diag, &other
	} else {
		cmd.Stdout, cmd.Stderr = &other, &diag
	}
	if err := cmd.Start(); err != nil {
		return &Error{
			Kind: KindProcessLaunchFailure,
			OS:   v.OS,
			Cmd:  argv,
			Msg:  "unable to run the native compiler; make sure a native software development toolchain is installed",
			Err:  err,
		}
	}

	// Wait returns only after both streams have been drained.
	waitErr := cmd.Wait()
	if ctx.Err() != nil {
		return interrupted(ctx, v, argv)
	}
	if other.Len() > 0 {
		log.Debugf("compiler output for %s:\n%s", source, other.String())
	}

	lines := outputLines(diag.String())
	reported := false
	for _, line := range lines {
		if v.IsErrorLine(line) {
			if h != nil {
				h.HandleCompileError(argv, source, line)
			}
			reported = true
		}
	}

	if waitErr != nil && !reported {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return &Error{
				Kind: KindProcessLaunchFailure,
				OS:   v.OS,
				Cmd:  argv,
				Msg:  "waiting for the native compiler failed",
				Err:  waitErr,
			}
		}
		if h != nil {
			h.HandleCompileError(argv, source, strings.Join(lines, "\n"))
		}
	}
	return nil
}

// outputLines splits compiler output into lines without a trailing empty
// line.
func outputLines(out string) []string {
	out = strings.TrimSuffix(out, "\n")
	if out == "" {
		return nil
	}
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
