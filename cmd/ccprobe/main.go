package main

import "github.com/goplus/ccprobe/cmd/ccprobe/internal"

func main() {
	internal.Execute()
}
