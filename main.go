// main is the entry point for the tradescope CLI.
package main

import (
	"tradescope/cmd"
	"tradescope/internal/contract"
)

func main() {
	err := cmd.Execute()
	if closeErr := cmd.CloseStore(); closeErr != nil {
		contract.LogWarn("Cannot close run store", closeErr)
	}
	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
