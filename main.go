// Package main is the entry point for replayctl, a CLI that parses Rocket
// League replay files and computes per-player and per-team analysis reports.
package main

import "github.com/rlcoach/replay-analysis/cmd"

func main() {
	cmd.Execute()
}
