package main

import (
	"os"

	"github.com/johnzfitch/llmx/cmd/llmx/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
