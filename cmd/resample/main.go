// Package main provides the resample CLI: device report and numeric self-checks.
package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/born-ml/resample/internal/backend/cpu"
	"github.com/born-ml/resample/internal/backend/webgpu"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("resample %s\n", version)
	case "devices":
		devices()
	case "check":
		if err := runCheck(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "check: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("resample - differentiable image resizing")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  devices    List available compute backends")
	fmt.Println("  check      Run adjoint and backend parity checks on random inputs")
}

func devices() {
	features := cpu.Features()
	if len(features) == 0 {
		features = []string{"none"}
	}
	fmt.Printf("CPU     %s/%s, %d threads, features: %s\n",
		runtime.GOOS, runtime.GOARCH, runtime.NumCPU(), strings.Join(features, " "))

	if !webgpu.IsAvailable() {
		fmt.Println("WebGPU  unavailable")
		return
	}
	gpu, err := webgpu.New()
	if err != nil {
		fmt.Printf("WebGPU  unavailable: %v\n", err)
		return
	}
	defer gpu.Release()
	fmt.Printf("WebGPU  %s\n", gpu.Name())
}
