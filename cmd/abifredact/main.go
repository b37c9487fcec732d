package main

import (
	"os"

	"github.com/dshills/abifredact/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
