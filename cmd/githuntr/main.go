package main

import (
	"os"

	"github.com/dshills/githuntr/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
