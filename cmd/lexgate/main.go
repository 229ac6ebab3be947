// lexgate is the privacy-aware trust router for legal AI workloads.
package main

import (
	"github.com/joho/godotenv"

	"github.com/lawsphere/lexgate/internal/cli"
)

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	cli.Execute()
}
