// cmd/toolup/main.go
package main

import (
	"os"

	"github.com/toolup-dev/toolup/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
