// maqamctl - CLI client for the Arabic Music AI backend
package main

import (
	"os"

	"github.com/maqamstudio/maqamctl/internal/cli"
)

// Version information - overridden at build time via -ldflags
var (
	Version   = "v0.3.0"
	BuildTime = "unknown"
)

func main() {
	cli.Version = Version
	cli.BuildTime = BuildTime

	if err := cli.Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}
