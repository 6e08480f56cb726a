// Command tcc runs .tcc game-world scripts.
package main

import (
	"os"
)

var version = "dev"

func main() {
	cmd := NewRootCmd()
	cmd.Version = version
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
