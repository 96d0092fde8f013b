// Package main is the single-binary entrypoint for TaskPulse.
package main

import "github.com/taskpulse/taskpulse/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
