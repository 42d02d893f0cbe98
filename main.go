package main

import (
	"os"

	"github.com/joonho/ailearn/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
