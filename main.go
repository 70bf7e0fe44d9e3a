// main is the entry point for the covlens CLI.
package main

import (
	"github.com/covlens/covlens/cmd"
	"github.com/covlens/covlens/internal/contract"
	"github.com/covlens/covlens/internal/iocache"
)

func main() {
	// Wire the global persistence manager into the command layer.
	cmd.SetHistoryManager(iocache.Manager)

	err := cmd.Execute()

	// Cleanup must run before exiting, so no defer after a LogFatal path.
	iocache.CloseStores()
	if perr := cmd.StopProfiling(); perr != nil {
		contract.LogWarn("Failed to stop profiling", perr)
	}

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
