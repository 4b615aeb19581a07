package main

import (
	"fmt"
	"runtime"
	"sort"
)

// compiledFeatures tracks build-time feature flags via init() registration.
var compiledFeatures []string

func printFeatures() {
	fmt.Printf("IntuitionGPU %s\n", Version)
	fmt.Printf("  Go version: %s\n", runtime.Version())
	fmt.Printf("  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)

	cfg := DefaultGPUConfig()
	fmt.Printf("  VRAM:       %dx%d\n", PSX_VRAM_WIDTH, cfg.VRAMHeight)
	fmt.Printf("  Surface:    %dx%d\n", cfg.DisplayWidth, cfg.DisplayHeight)
	fmt.Println()
	fmt.Println("Compiled features:")

	for _, f := range sortedFeatures() {
		fmt.Printf("  %s\n", f)
	}
	if len(compiledFeatures) == 0 {
		fmt.Println("  (none)")
	}
}

// sortedFeatures returns the registered features without reordering the
// registration list.
func sortedFeatures() []string {
	out := append([]string(nil), compiledFeatures...)
	sort.Strings(out)
	return out
}
