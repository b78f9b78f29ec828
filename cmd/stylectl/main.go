// Command stylectl inspects spreadsheet cell styles.
package main

import (
	"os"

	"github.com/goliatone/go-styles/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
