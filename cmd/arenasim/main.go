// Command arenasim runs automated arena matches between AI-controlled teams.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Local development keeps Honeycomb credentials in .env.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Note: .env file not loaded: %v", err)
	}
	setupOTelEnv()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// setupOTelEnv maps the Honeycomb variables onto the standard OTLP ones.
// Explicit OTEL_* settings win.
func setupOTelEnv() {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	apiKey := os.Getenv("HONEYCOMB_ARENASIM_API_KEY")
	if apiKey == "" || os.Getenv("OTEL_EXPORTER_OTLP_HEADERS") != "" {
		return
	}
	dataset := os.Getenv("HONEYCOMB_ARENASIM_DATASET")
	if dataset == "" {
		dataset = "arenasim"
	}
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
