//go:build unix

package toolchain

import "golang.org/x/sys/unix"

// isExecutable reports whether the calling user may execute path. Like
// access(2) it is true for searchable directories; callers check that
// separately.
func isExecutable(path string) bool {
	return unix.Access(path, unix.X_OK) == nil
}
