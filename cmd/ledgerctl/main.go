package main

import (
	"fmt"
	"os"

	"ledgerly/internal/cli"
	"ledgerly/internal/logger"
)

func main() {
	logger.Init(os.Getenv("ENV"), getenv("LOG_LEVEL", "warn"))
	defer logger.Sync()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
