// Package config assembles the toolchain settings of a ccprobe run from an
// HCL file, CCPROBE_* environment variables and command-line flags.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goplus/ccprobe/internal/libc"
	"github.com/goplus/ccprobe/pkgs/arch"
	"github.com/goplus/ccprobe/pkgs/toolchain"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/kballard/go-shellquote"
	"github.com/zclconf/go-cty/cty"
)

// FileName is the configuration file looked up in the current directory.
const FileName = "ccprobe.hcl"

// Environment variables read by ApplyEnv.
const (
	EnvCompiler   = "CCPROBE_CC"
	EnvCFlags     = "CCPROBE_CFLAGS"
	EnvTargetArch = "CCPROBE_TARGET_ARCH"
	EnvLibC       = "CCPROBE_LIBC"
)

// Config holds the settings an Invoker and the validator are built from.
type Config struct {
	CompilerPath    string
	CompilerOptions []string

	TargetArch           string
	RuntimeVersion       int
	ModernRuntimeVersion int
	LegacyRuntimeVersion int
	MinMSVCVersion       string
	LegacyMSVCVersion    string

	LibC        string
	LibCSpecs   string
	LibCOptions []string
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{LibC: libc.Default}
}

type hclConfigFile struct {
	Compiler *hclCompiler `hcl:"compiler,block"`
	Target   *hclTarget   `hcl:"target,block"`
	LibC     *hclLibC     `hcl:"libc,block"`
}

type hclCompiler struct {
	Path    *string  `hcl:"path,optional"`
	Options []string `hcl:"options,optional"`
}

type hclTarget struct {
	Arch                 *string `hcl:"arch,optional"`
	RuntimeVersion       *int    `hcl:"runtime_version,optional"`
	ModernRuntimeVersion *int    `hcl:"modern_runtime_version,optional"`
	LegacyRuntimeVersion *int    `hcl:"legacy_runtime_version,optional"`
	MinMSVCVersion       *string `hcl:"min_msvc_version,optional"`
	LegacyMSVCVersion    *string `hcl:"legacy_msvc_version,optional"`
}

type hclLibC struct {
	Name    string   `hcl:"name,label"`
	Specs   *string  `hcl:"specs,optional"`
	Options []string `hcl:"options,optional"`
}

// Load reads the HCL file at path on top of the defaults. Expressions may
// refer to environment variables as env.NAME.
func Load(path string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var parsed hclConfigFile
	diags = gohcl.DecodeBody(file.Body, evalContext(os.Environ()), &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	cfg := Default()
	cfg.merge(&parsed)
	return cfg, nil
}

func evalContext(environ []string) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

func (c *Config) merge(f *hclConfigFile) {
	if cc := f.Compiler; cc != nil {
		setString(&c.CompilerPath, cc.Path)
		if cc.Options != nil {
			c.CompilerOptions = cc.Options
		}
	}
	if t := f.Target; t != nil {
		setString(&c.TargetArch, t.Arch)
		setInt(&c.RuntimeVersion, t.RuntimeVersion)
		setInt(&c.ModernRuntimeVersion, t.ModernRuntimeVersion)
		setInt(&c.LegacyRuntimeVersion, t.LegacyRuntimeVersion)
		setString(&c.MinMSVCVersion, t.MinMSVCVersion)
		setString(&c.LegacyMSVCVersion, t.LegacyMSVCVersion)
	}
	if l := f.LibC; l != nil {
		c.LibC = l.Name
		setString(&c.LibCSpecs, l.Specs)
		if l.Options != nil {
			c.LibCOptions = l.Options
		}
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// ApplyEnv overrides c with the CCPROBE_* variables found by lookup.
// CCPROBE_CFLAGS is split with shell quoting rules.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvCompiler); ok && v != "" {
		c.CompilerPath = v
	}
	if v, ok := lookup(EnvCFlags); ok {
		opts, err := shellquote.Split(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCFlags, err)
		}
		c.CompilerOptions = opts
	}
	if v, ok := lookup(EnvTargetArch); ok && v != "" {
		c.TargetArch = v
	}
	if v, ok := lookup(EnvLibC); ok && v != "" {
		c.LibC = v
	}
	return nil
}

// ParseRuntimeVersion accepts "21" as well as the legacy "1.8" spelling.
func ParseRuntimeVersion(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(s, "1."))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid runtime version %q", s)
	}
	return n, nil
}

// Requirements returns what the validator checks the toolchain against.
func (c *Config) Requirements() (toolchain.Requirements, error) {
	req := toolchain.Requirements{
		RuntimeVersion:       c.RuntimeVersion,
		ModernRuntimeVersion: c.ModernRuntimeVersion,
		LegacyRuntimeVersion: c.LegacyRuntimeVersion,
		MinMSVCVersion:       c.MinMSVCVersion,
		LegacyMSVCVersion:    c.LegacyMSVCVersion,
	}
	if c.TargetArch != "" {
		a := arch.Parse(c.TargetArch)
		if !a.Supported() {
			return req, fmt.Errorf("unsupported target architecture %q", c.TargetArch)
		}
		req.TargetArch = a
	}
	return req, nil
}

// NewLibC returns the configured C library.
func (c *Config) NewLibC() (libc.LibC, error) {
	return libc.New(c.LibC, libc.Options{Specs: c.LibCSpecs, Extra: c.LibCOptions})
}

// InvokerOptions returns the options for toolchain.New.
func (c *Config) InvokerOptions(workDir string) (toolchain.Options, error) {
	lc, err := c.NewLibC()
	if err != nil {
		return toolchain.Options{}, err
	}
	return toolchain.Options{
		WorkDir:         workDir,
		CompilerPath:    c.CompilerPath,
		CompilerOptions: c.CompilerOptions,
		LibC:            lc,
	}, nil
}
