package main

import (
	"os"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
