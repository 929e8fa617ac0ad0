package toolchain

import (
	"testing"

	"pgregory.net/rapid"
)

const gccBanner = `Using built-in specs.
COLLECT_GCC=gcc
COLLECT_LTO_WRAPPER=/usr/lib/gcc/x86_64-linux-gnu/9/lto-wrapper
OFFLOAD_TARGET_NAMES=nvptx-none:hsa
Target: x86_64-pc-linux-gnu
Configured with: ../src/configure -v --with-pkgversion='Ubuntu 9.3.0-17ubuntu1~20.04'
Thread model: posix
gcc version 9.3.0 (Ubuntu 9.3.0-17ubuntu1~20.04)
`

const clangBanner = `Apple clang version 12.0.0 (clang-1200.0.32.29)
Target: x86_64-apple-darwin19.6.0
Thread model: posix
InstalledDir: /Library/Developer/CommandLineTools/usr/bin
`

const msvcBanner = "Microsoft (R) C/C++ Optimizing Compiler Version 19.16.27032.1 for x64\r\n" +
	"Copyright (C) Microsoft Corporation.  All rights reserved.\r\n" +
	"\r\n" +
	"usage: cl [ option... ] filename... [ /link linkoption... ]\r\n"

func TestParseGNUBanner(t *testing.T) {
	got := ParseGNUBanner(gccBanner)
	if got == nil {
		t.Fatal("ParseGNUBanner returned nil")
	}
	want := CompilerInfo{
		Vendor:       "pc",
		ProductName:  "GNU project C and C++ compiler",
		ShortName:    "gcc",
		VersionMajor: 9,
		VersionMinor: 3,
		VersionPatch: 0,
		TargetArch:   "x86_64",
	}
	if *got != want {
		t.Errorf("ParseGNUBanner = %+v, want %+v", *got, want)
	}
}

func TestParseGNUBannerVariants(t *testing.T) {
	tests := []struct {
		name   string
		banner string
		want   string // CompilerInfo.String(), "" for nil
	}{
		{
			name:   "debian triple without vendor",
			banner: "Target: aarch64-linux-gnu\ngcc version 10.2.1 20210110 (Debian 10.2.1-6)\n",
			want:   "gcc|linux|aarch64|10.2.1",
		},
		{
			name:   "crlf line endings",
			banner: "Target: x86_64-w64-mingw32\r\ngcc version 12.2.0 (Rev10, Built by MSYS2 project)\r\n",
			want:   "gcc|w64|x86_64|12.2.0",
		},
		{
			name:   "version before target",
			banner: "gcc version 9.3.0\nTarget: x86_64-pc-linux-gnu\n",
		},
		{
			name:   "missing patch",
			banner: "Target: x86_64-pc-linux-gnu\ngcc version 9.3 (GCC)\n",
		},
		{
			name:   "non numeric version",
			banner: "Target: x86_64-pc-linux-gnu\ngcc version trunk\n",
		},
		{
			name:   "triple without vendor part",
			banner: "Target: x86_64\ngcc version 9.3.0\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseGNUBanner(tt.banner)
			switch {
			case tt.want == "" && got != nil:
				t.Errorf("ParseGNUBanner = %v, want nil", got)
			case tt.want != "" && got == nil:
				t.Errorf("ParseGNUBanner = nil, want %s", tt.want)
			case got != nil && got.String() != tt.want:
				t.Errorf("ParseGNUBanner = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseClangBanner(t *testing.T) {
	got := ParseClangBanner(clangBanner)
	if got == nil {
		t.Fatal("ParseClangBanner returned nil")
	}
	want := CompilerInfo{
		Vendor:       "apple",
		ProductName:  "LLVM",
		ShortName:    "clang",
		VersionMajor: 12,
		VersionMinor: 0,
		VersionPatch: 0,
		TargetArch:   "x86_64",
	}
	if *got != want {
		t.Errorf("ParseClangBanner = %+v, want %+v", *got, want)
	}
}

func TestParseClangBannerWithoutPatch(t *testing.T) {
	tests := []string{
		"Apple LLVM version 7.0\nTarget: x86_64-apple-darwin14.5.0\n",
		"Apple LLVM version 7.0 (clang-700.0.72)\nTarget: x86_64-apple-darwin14.5.0\n",
	}
	for _, banner := range tests {
		got := ParseClangBanner(banner)
		if got == nil {
			t.Fatalf("ParseClangBanner(%q) returned nil", banner)
		}
		if got.VersionMajor != 7 || got.VersionMinor != 0 || got.VersionPatch != 0 {
			t.Errorf("ParseClangBanner(%q) version = %s, want 7.0.0", banner, got.Version())
		}
	}
}

func TestParseClangBannerArm64(t *testing.T) {
	got := ParseClangBanner("Apple clang version 15.0.0 (clang-1500.1.0.2.5)\nTarget: arm64-apple-darwin23.2.0\n")
	if got == nil {
		t.Fatal("ParseClangBanner returned nil")
	}
	if got.String() != "clang|apple|arm64|15.0.0" {
		t.Errorf("ParseClangBanner = %s", got)
	}
}

func TestParseMSVCBanner(t *testing.T) {
	got := ParseMSVCBanner(msvcBanner)
	if got == nil {
		t.Fatal("ParseMSVCBanner returned nil")
	}
	if got.VersionMajor != 19 || got.VersionMinor != 16 || got.VersionPatch != 27032 {
		t.Errorf("version = %s, want 19.16.27032", got.Version())
	}
	if got.TargetArch != "x64" {
		t.Errorf("TargetArch = %q, want x64", got.TargetArch)
	}
	if got.Vendor != "microsoft" || got.ShortName != "cl" {
		t.Errorf("identity = %s/%s", got.Vendor, got.ShortName)
	}
}

func TestParseMSVCBannerX86(t *testing.T) {
	got := ParseMSVCBanner("Microsoft (R) C/C++ Optimizing Compiler Version 16.00.40219.01 for 80x86\n")
	if got == nil {
		t.Fatal("ParseMSVCBanner returned nil")
	}
	if got.String() != "cl|microsoft|80x86|16.0.40219" {
		t.Errorf("ParseMSVCBanner = %s", got)
	}
}

func TestParseMSVCBannerFirstLineOnly(t *testing.T) {
	banner := "\nMicrosoft (R) C/C++ Optimizing Compiler Version 19.16.27032.1 for x64\n"
	if got := ParseMSVCBanner(banner); got != nil {
		t.Errorf("ParseMSVCBanner = %s, want nil", got)
	}
}

func TestParseMissingMarkers(t *testing.T) {
	banners := []string{
		"",
		"\n\n",
		"bash: gcc: command not found\n",
		"clang version 17.0.6\nThread model: posix\n",
		"usage: cl [ option... ] filename...\n",
	}
	for _, v := range []*Variant{LinuxVariant, DarwinVariant, WindowsVariant} {
		for _, banner := range banners {
			if got := v.ParseBanner(banner); got != nil {
				t.Errorf("%s: ParseBanner(%q) = %s, want nil", v.OS, banner, got)
			}
		}
	}
}

func TestParseBannerNeverPanics(t *testing.T) {
	markers := []string{"Target: ", "gcc version ", "Apple clang version ", "Apple LLVM version ", msvcMarker, "for ", "-", ".", " ", "\n", "9", "x86_64"}
	rapid.Check(t, func(t *rapid.T) {
		parts := rapid.SliceOf(rapid.OneOf(rapid.SampledFrom(markers), rapid.String())).Draw(t, "parts")
		banner := ""
		for _, p := range parts {
			banner += p
		}
		for _, v := range []*Variant{LinuxVariant, DarwinVariant, WindowsVariant} {
			if info := v.ParseBanner(banner); info != nil && info.VersionMajor < 0 {
				t.Fatalf("%s: negative major version from %q", v.OS, banner)
			}
		}
	})
}
