// Package libc provides the C library flavours a native build can link
// against, and the compiler flags each one needs.
package libc

import (
	"fmt"
	"slices"
	"sort"
)

// LibC is a C library the compiler output is linked against.
type LibC interface {
	// Name returns the identifier used in configuration ("glibc", "musl").
	Name() string

	// CompilerOptions returns flags appended after the input files of every
	// compiler command.
	CompilerOptions() []string
}

// Options configures a LibC.
type Options struct {
	// Specs is the gcc specs file wrapping the musl headers and startup
	// files. Only used by musl.
	Specs string

	// Extra flags appended after the library's own.
	Extra []string
}

// Default is the name used when nothing is configured.
const Default = "glibc"

type factory func(opts Options) LibC

var registry = map[string]factory{
	"glibc":  func(opts Options) LibC { return &Glibc{extra: opts.Extra} },
	"musl":   func(opts Options) LibC { return &Musl{Specs: opts.Specs, extra: opts.Extra} },
	"bionic": func(opts Options) LibC { return &Bionic{extra: opts.Extra} },
}

// New returns the LibC registered as name.
func New(name string, opts Options) (LibC, error) {
	if name == "" {
		name = Default
	}
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown libc %q (supported: %v)", name, Names())
	}
	return f(opts), nil
}

// Names returns the supported libc names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Glibc is the GNU C library. The compiler driver already targets it.
type Glibc struct {
	extra []string
}

func (*Glibc) Name() string { return "glibc" }

func (g *Glibc) CompilerOptions() []string {
	return slices.Clone(g.extra)
}

// Musl is the musl C library, used through a gcc specs file.
type Musl struct {
	Specs string
	extra []string
}

func (*Musl) Name() string { return "musl" }

func (m *Musl) CompilerOptions() []string {
	var opts []string
	if m.Specs != "" {
		opts = append(opts, "-specs="+m.Specs)
	}
	return append(opts, m.extra...)
}

// Bionic is Android's C library.
type Bionic struct {
	extra []string
}

func (*Bionic) Name() string { return "bionic" }

func (b *Bionic) CompilerOptions() []string {
	return slices.Clone(b.extra)
}
