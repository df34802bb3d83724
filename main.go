package main

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	"github.com/lumipallolabs/metafolder/cmd"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Enable CPU profiling if CPUPROFILE env var is set
	if cpuProfile := os.Getenv("CPUPROFILE"); cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", cpuProfile)
	}

	if err := cmd.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}
