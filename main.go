package main

import "github.com/Conceptual-Machines/harmony-api/internal/cli"

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	cli.Execute(GetVersion())
}
