package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"runtime/trace"

	"github.com/esdart/esdart/internal/logger"
)

// To view a trace, use "go tool trace [file]"
func createTraceFile(osArgs []string, traceFile string) func() {
	f, err := os.Create(traceFile)
	if err != nil {
		logger.PrintErrorToStderr(osArgs, fmt.Sprintf(
			"Failed to create trace file: %s", err.Error()))
		return nil
	}
	trace.Start(f)
	return func() {
		trace.Stop()
		f.Close()
	}
}

// To view a CPU profile, drop the file into https://speedscope.app
func createCpuprofileFile(osArgs []string, cpuprofileFile string) func() {
	f, err := os.Create(cpuprofileFile)
	if err != nil {
		logger.PrintErrorToStderr(osArgs, fmt.Sprintf(
			"Failed to create cpuprofile file: %s", err.Error()))
		return nil
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		logger.PrintErrorToStderr(osArgs, fmt.Sprintf(
			"Failed to start the CPU profiler: %s", err.Error()))
		return nil
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}
}
