package toolchain

import (
	"errors"
	"runtime"
	"testing"

	"github.com/goplus/ccprobe/pkgs/arch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func msvc(major, minor0, minor1 int, targetArch string) CompilerInfo {
	return CompilerInfo{
		Vendor:       "microsoft",
		ProductName:  "C/C++ Optimizing Compiler",
		ShortName:    "cl",
		VersionMajor: major,
		VersionMinor: minor0,
		VersionPatch: minor1,
		TargetArch:   targetArch,
	}
}

func TestValidateWindows(t *testing.T) {
	tests := []struct {
		name    string
		info    CompilerInfo
		runtime int
		kind    Kind // 0 for success
	}{
		{"vs2017 modern runtime", msvc(19, 16, 27032, "x64"), 21, 0},
		{"default runtime", msvc(19, 0, 24215, "x64"), 0, 0},
		{"vs2013 too old", msvc(18, 0, 40629, "x64"), 17, KindVersionIncompatible},
		{"legacy runtime sdk 7.1", msvc(16, 0, 40219, "x64"), 8, 0},
		{"legacy runtime wrong minor", msvc(16, 1, 0, "x64"), 8, KindVersionIncompatible},
		{"legacy runtime new compiler", msvc(19, 16, 27032, "x64"), 8, KindVersionIncompatible},
		{"unsupported runtime", msvc(19, 16, 27032, "x64"), 9, KindVersionIncompatible},
		{"32-bit compiler", msvc(19, 16, 27032, "80x86"), 21, KindArchitectureMismatch},
		{"arm64 compiler", msvc(19, 29, 30133, "ARM64"), 21, KindArchitectureMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.info, WindowsVariant, Requirements{RuntimeVersion: tt.runtime})
			if tt.kind == 0 {
				assert.NoError(t, err)
				return
			}
			var e *Error
			require.True(t, errors.As(err, &e), "got %v", err)
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, Windows, e.OS)
		})
	}
}

func TestValidateWindowsMessageNamesArch(t *testing.T) {
	err := Validate(msvc(19, 16, 27032, "80x86"), WindowsVariant, Requirements{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "80x86")
	assert.True(t, errors.Is(err, ErrArchitectureMismatch))
}

func TestValidateWindowsPolicy(t *testing.T) {
	req := Requirements{RuntimeVersion: 21, MinMSVCVersion: "v19.20.0"}
	err := Validate(msvc(19, 16, 27032, "x64"), WindowsVariant, req)
	assert.True(t, errors.Is(err, ErrVersionIncompatible))

	req = Requirements{RuntimeVersion: 7, LegacyRuntimeVersion: 7, LegacyMSVCVersion: "v15.0"}
	assert.NoError(t, Validate(msvc(15, 0, 30729, "x64"), WindowsVariant, req))
}

func TestValidateDarwin(t *testing.T) {
	info := CompilerInfo{ShortName: "clang", Vendor: "apple", VersionMajor: 12, TargetArch: "x86_64"}
	assert.NoError(t, Validate(info, DarwinVariant, Requirements{TargetArch: arch.AArch64}))

	info.TargetArch = "arm64"
	err := Validate(info, DarwinVariant, Requirements{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArchitectureMismatch))
	assert.Contains(t, err.Error(), "arm64")
}

func TestValidateLinux(t *testing.T) {
	info := CompilerInfo{ShortName: "gcc", Vendor: "pc", VersionMajor: 9, VersionMinor: 3, TargetArch: "x86_64"}
	assert.NoError(t, Validate(info, LinuxVariant, Requirements{TargetArch: arch.AMD64}))

	err := Validate(info, LinuxVariant, Requirements{TargetArch: arch.AArch64})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArchitectureMismatch))
	assert.Contains(t, err.Error(), "x86_64")
	assert.Contains(t, err.Error(), "aarch64")

	info.TargetArch = "riscv64"
	assert.True(t, errors.Is(Validate(info, LinuxVariant, Requirements{TargetArch: arch.AMD64}), ErrArchitectureMismatch))
}

func TestValidateLinuxUnresolvedArch(t *testing.T) {
	tests := []struct {
		token  string
		target arch.Arch
	}{
		{"mips", arch.Unknown},
		{"powerpc64le", arch.Unknown},
		{"i686", arch.Unsupported},
		{"x86", arch.Unsupported},
		{"x86_64", arch.Unknown},
		{"mips", arch.AMD64},
	}
	for _, tt := range tests {
		t.Run(tt.token+"/"+tt.target.String(), func(t *testing.T) {
			info := CompilerInfo{ShortName: "gcc", Vendor: "pc", TargetArch: tt.token}
			err := Validate(info, LinuxVariant, Requirements{TargetArch: tt.target})
			assert.True(t, errors.Is(err, ErrArchitectureMismatch), "got %v", err)
		})
	}
}

func TestValidateLinuxHostTarget(t *testing.T) {
	host := arch.FromGOARCH(runtime.GOARCH)
	info := CompilerInfo{ShortName: "gcc", Vendor: "pc", TargetArch: host.String()}
	err := Validate(info, LinuxVariant, Requirements{})
	if host.Supported() {
		assert.NoError(t, err)
	} else {
		assert.True(t, errors.Is(err, ErrArchitectureMismatch), "got %v", err)
	}
}
