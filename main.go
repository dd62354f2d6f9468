package main

import (
	"fmt"
	"os"
	"runtime"

	"dupfinder/cmd"
	"dupfinder/signalhandler"
)

func main() {
	// Keep some headroom for cgo decoders
	runtime.GOMAXPROCS(signalhandler.GetOptimalProcs())

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
