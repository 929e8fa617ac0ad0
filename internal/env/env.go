package env

import (
	"os"
	"path/filepath"
)

// WorkDir returns the root of ccprobe's per-user state.
func WorkDir() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userCacheDir, ".ccprobe"), nil
}

// ProbeDir returns the directory holding recorded probe results, creating
// it if needed.
func ProbeDir() (string, error) {
	workDir, err := WorkDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(workDir, "probes")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

// ScratchDir creates a fresh temporary directory for compiler subprocesses.
// The caller removes it.
func ScratchDir() (string, error) {
	return os.MkdirTemp("", "ccprobe-*")
}
