//go:build linux

// Command waysurface opens one Wayland window and presents GPU-cleared
// frames until the compositor closes it.
//
// Exit status is 0 when the window is closed or the process is interrupted,
// 2 when no usable GPU adapter or device exists, and 1 for any other error.
package main

import (
	"os"

	_ "github.com/gogpu/wgpu/hal/allbackends"

	"github.com/gogpu/waysurface/present"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if present.IsSetupError(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
