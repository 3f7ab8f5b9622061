package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/de-tools/materiality-evals/pkg/runtime/terminal"
)

func main() {
	// Credentials (API keys) can live in a local .env file.
	_ = godotenv.Load()

	cli := terminal.NewCLI(terminal.Options{
		Output: os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
