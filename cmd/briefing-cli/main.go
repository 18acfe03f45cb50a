// cmd/briefing-cli/main.go
package main

import (
	"os"

	"sales-briefing/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
