package main

import (
	"os"

	"contentsmith/cmd"

	"github.com/joho/godotenv"
)

func main() {
	// Best-effort: a missing .env is fine, real env vars still apply.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
