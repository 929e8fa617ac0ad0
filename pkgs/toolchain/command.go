package toolchain

import "path/filepath"

// commandLine holds everything needed to assemble one compiler invocation.
type commandLine struct {
	compiler string   // resolved compiler executable
	global   []string // build-wide extra options
	options  []string // options for this call
	target   string   // output file, empty for none
	inputs   []string
	trailing []string // libc options
}

// args assembles the argument vector. Compilers are order sensitive, so the
// order here is fixed: compiler, global options, call options, target flags,
// inputs, libc options.
func (c *commandLine) args(v *Variant) []string {
	n := 1 + len(c.global) + len(c.options) + 2 + len(c.inputs) + len(c.trailing)
	argv := make([]string, 0, n)
	argv = append(argv, filepath.Clean(c.compiler))
	argv = append(argv, c.global...)
	argv = append(argv, c.options...)
	if c.target != "" {
		argv = append(argv, v.TargetFlags(c.target)...)
	}
	argv = append(argv, c.inputs...)
	argv = append(argv, c.trailing...)
	return argv
}

// BuildCommand returns the full compiler command line for the given options,
// optional target and inputs. It performs no I/O.
func (inv *Invoker) BuildCommand(options []string, target string, inputs ...string) []string {
	var trailing []string
	if inv.libc != nil {
		trailing = inv.libc.CompilerOptions()
	}
	cl := commandLine{
		compiler: inv.compiler,
		global:   inv.options,
		options:  options,
		target:   target,
		inputs:   inputs,
		trailing: trailing,
	}
	return cl.args(inv.variant)
}
