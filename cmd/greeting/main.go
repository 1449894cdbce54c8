// Command greeting serves POST /greeting and its OpenAPI document.
//
//	greeting serve --config config.yaml
//	greeting openapi --format yaml
package main

import (
	"os"

	"github.com/Gobd/presence/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
