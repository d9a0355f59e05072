package main

import (
	"os"

	"github.com/docxology/metaguildnet/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
