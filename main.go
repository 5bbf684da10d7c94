package main

import (
	"os"

	"github.com/joho/godotenv"

	"lieferplaner/internal/cli"
)

func main() {
	// A .env in the working directory may carry LIEFERPLANER_* overrides
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
