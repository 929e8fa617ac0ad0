package toolchain

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// Kind classifies toolchain failures.
type Kind int

const (
	KindToolchainNotFound Kind = iota + 1
	KindInvalidToolchainPath
	KindVersionIncompatible
	KindArchitectureMismatch
	KindProcessLaunchFailure
	KindCompileFailed
	KindBuildInterrupted
)

var kindNames = map[Kind]string{
	KindToolchainNotFound:    "toolchain not found",
	KindInvalidToolchainPath: "invalid toolchain path",
	KindVersionIncompatible:  "incompatible toolchain version",
	KindArchitectureMismatch: "toolchain architecture mismatch",
	KindProcessLaunchFailure: "process launch failure",
	KindCompileFailed:        "compile failed",
	KindBuildInterrupted:     "build interrupted",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown error kind"
}

// Error is the error type returned by this package.
type Error struct {
	Kind Kind
	OS   OS       // host variant, zero if not relevant
	Cmd  []string // attempted command line, if any
	Msg  string
	Err  error // underlying cause, may be nil
}

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrToolchainNotFound    = &Error{Kind: KindToolchainNotFound}
	ErrInvalidToolchainPath = &Error{Kind: KindInvalidToolchainPath}
	ErrVersionIncompatible  = &Error{Kind: KindVersionIncompatible}
	ErrArchitectureMismatch = &Error{Kind: KindArchitectureMismatch}
	ErrProcessLaunchFailure = &Error{Kind: KindProcessLaunchFailure}
	ErrCompileFailed        = &Error{Kind: KindCompileFailed}
	ErrBuildInterrupted     = &Error{Kind: KindBuildInterrupted}
)

func (e *Error) Error() string {
	var b strings.Builder
	if e.Msg != "" {
		b.WriteString(e.Msg)
	} else {
		b.WriteString(e.Kind.String())
	}
	if len(e.Cmd) > 0 {
		b.WriteString(" [")
		b.WriteString(shellquote.Join(e.Cmd...))
		b.WriteString("]")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
