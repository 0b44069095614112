package main

import (
	"os"

	"github.com/Faizan711/git-gandalf/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
