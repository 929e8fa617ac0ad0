//go:build unix

package internal

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goplus/ccprobe/internal/config"
	"github.com/goplus/ccprobe/internal/probecache"
	"github.com/goplus/ccprobe/pkgs/toolchain"
)

func TestIdentifyCachedRecord(t *testing.T) {
	tmpDir := t.TempDir()
	// The record must be served without running this binary.
	compiler := filepath.Join(tmpDir, "gcc")
	if err := os.WriteFile(compiler, []byte("#!/bin/sh\nexit 1\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	want := toolchain.CompilerInfo{
		Vendor:       "pc",
		ProductName:  "GNU project C and C++ compiler",
		ShortName:    "gcc",
		VersionMajor: 12,
		VersionMinor: 2,
		TargetArch:   "x86_64",
	}

	store, err := probecache.Open(filepath.Join(tmpDir, "probes"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := store.Put(compiler, want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	cfg := config.Default()
	cfg.CompilerPath = compiler
	cfg.LibC = "musl"
	res, err := identify(context.Background(), cfg, store, true)
	if err != nil {
		t.Fatalf("identify failed: %v", err)
	}
	if !res.Cached {
		t.Error("identify did not use the recorded probe")
	}
	if res.Info != want {
		t.Errorf("Info = %v, want %v", res.Info, want)
	}
	if res.Compiler != compiler {
		t.Errorf("Compiler = %q, want %q", res.Compiler, compiler)
	}
	if res.LibC != "musl" {
		t.Errorf("LibC = %q, want musl", res.LibC)
	}
}

func TestIdentifyUnknownLibC(t *testing.T) {
	cfg := config.Default()
	cfg.LibC = "uclibc"
	store, err := probecache.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := identify(context.Background(), cfg, store, true); err == nil {
		t.Fatal("expected error for unknown libc, got nil")
	}
}
