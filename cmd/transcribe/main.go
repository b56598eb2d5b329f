package main

import (
	"fmt"
	"os"

	"gemini-transcriber/cmd/transcribe/cmd"
	"gemini-transcriber/internal/config"
)

func main() {
	if _, err := config.LoadEnv(config.DefaultEnvPaths...); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	cmd.Execute()
}
