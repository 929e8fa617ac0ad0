//go:build !unix

package toolchain

import "os"

func isExecutable(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
