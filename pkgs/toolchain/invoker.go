// Package toolchain discovers the host's native C compiler, identifies it
// from its version banner and drives compilations with it.
//
// An Invoker is created once per build:
//
//	inv, err := toolchain.New(ctx, toolchain.Options{WorkDir: dir})
//	if err != nil {
//		return err // no usable compiler
//	}
//	if err := inv.Verify(req); err != nil {
//		return err
//	}
//	err = inv.Compile(ctx, []string{"-c"}, "query.c", "query.o", handler)
package toolchain

import (
	"context"
	"os"

	"github.com/qiniu/x/log"
)

// LibC supplies the C library specific flags appended to every compiler
// command.
type LibC interface {
	CompilerOptions() []string
}

// Options configures an Invoker. Everything here is read-only once New
// returns.
type Options struct {
	// WorkDir is the working directory of every spawned compiler.
	WorkDir string

	// CompilerPath overrides the PATH search for the default compiler.
	CompilerPath string

	// CompilerOptions are passed to every compiler invocation, before the
	// per-call options.
	CompilerOptions []string

	// LibC provides trailing options. May be nil.
	LibC LibC

	// Variant selects the platform strategy; nil means the host's.
	Variant *Variant

	// SearchPath is the PATH-style list searched for the default compiler;
	// empty means $PATH.
	SearchPath string
}

// Invoker runs one native compiler. Its fields never change after New, so it
// may be shared by concurrent Compile calls.
type Invoker struct {
	workDir  string
	compiler string
	options  []string
	libc     LibC
	variant  *Variant
	info     CompilerInfo
}

// New resolves the compiler and probes it. It fails with a
// KindToolchainNotFound or KindInvalidToolchainPath *Error when no usable
// compiler can be identified.
func New(ctx context.Context, opts Options) (*Invoker, error) {
	v := opts.Variant
	if v == nil {
		var err error
		if v, err = HostVariant(); err != nil {
			return nil, err
		}
	}
	searchPath := opts.SearchPath
	if searchPath == "" {
		searchPath = os.Getenv("PATH")
	}
	compiler, err := ResolveCompilerPath(opts.CompilerPath, v, searchPath)
	if err != nil {
		return nil, err
	}

	inv := &Invoker{
		workDir:  opts.WorkDir,
		compiler: compiler,
		options:  append([]string(nil), opts.CompilerOptions...),
		libc:     opts.LibC,
		variant:  v,
	}
	info, err := inv.probe(ctx)
	if err != nil {
		return nil, err
	}
	inv.info = info
	log.Infof("native toolchain: %s (%s)", info, compiler)
	return inv, nil
}

// Info returns the probed compiler identity.
func (inv *Invoker) Info() CompilerInfo {
	return inv.info
}

// Variant returns the platform strategy the invoker was built with.
func (inv *Invoker) Variant() *Variant {
	return inv.variant
}

// CompilerPath returns the resolved compiler executable.
func (inv *Invoker) CompilerPath() string {
	return inv.compiler
}

// WorkDir returns the working directory used for subprocesses.
func (inv *Invoker) WorkDir() string {
	return inv.workDir
}

// Verify validates the probed compiler against req using the rules of the
// invoker's variant.
func (inv *Invoker) Verify(req Requirements) error {
	return Validate(inv.info, inv.variant, req)
}
