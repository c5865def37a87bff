package cpu

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Features lists the SIMD extensions detected on the host, in the order
// they are checked. The resize kernels are portable Go; the list is
// diagnostic and reported alongside benchmark results.
func Features() []string {
	var feats []string
	switch runtime.GOARCH {
	case "amd64", "386":
		for _, f := range []struct {
			name string
			ok   bool
		}{
			{"sse4.1", cpu.X86.HasSSE41},
			{"avx", cpu.X86.HasAVX},
			{"avx2", cpu.X86.HasAVX2},
			{"fma", cpu.X86.HasFMA},
			{"avx512f", cpu.X86.HasAVX512F},
		} {
			if f.ok {
				feats = append(feats, f.name)
			}
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			feats = append(feats, "asimd")
		}
		if cpu.ARM64.HasFPHP {
			feats = append(feats, "fphp")
		}
		if cpu.ARM64.HasSVE {
			feats = append(feats, "sve")
		}
	}
	return feats
}
