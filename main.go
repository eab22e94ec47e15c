package main

import (
	"os"

	"github.com/chriscorrea/babel/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
