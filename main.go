package main

import (
	"os"

	"github.com/llehouerou/tablib/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
