// Command quote drives the freight quote flow from the terminal: resolve
// both postal codes, register the intention, print the estimate, then
// optionally capture a lead and link it to the intention.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/fretehub/fretehub/internal/cep"
	appconfig "github.com/fretehub/fretehub/internal/config"
	"github.com/fretehub/fretehub/internal/pricing"
	"github.com/fretehub/fretehub/pkg/client"
	"github.com/fretehub/fretehub/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	var (
		apiURL = flag.String("api", envOr("API_BASE_URL", "http://localhost:8080"), "backend API base URL")
		origin = flag.String("origin", "", "origin CEP")
		dest   = flag.String("dest", "", "destination CEP")
		name   = flag.String("name", "", "lead name (skip to quote without saving)")
		email  = flag.String("email", "", "lead email")
		weight = flag.Float64("weight", 0, "package weight in kg")
		width  = flag.Float64("width", 0, "package width in cm")
		height = flag.Float64("height", 0, "package height in cm")
		depth  = flag.Float64("depth", 0, "package depth in cm")
	)
	flag.Parse()

	logger := logging.NewText(cfg.LogLevel)

	if *origin == "" || *dest == "" {
		fmt.Fprintln(os.Stderr, "usage: quote -origin <cep> -dest <cep> [-name <name> -email <email>] [-weight kg -width cm -height cm -depth cm]")
		os.Exit(2)
	}

	var dims *pricing.Dimensions
	if *weight > 0 || *width > 0 || *height > 0 || *depth > 0 {
		dims = &pricing.Dimensions{
			WeightKg: *weight,
			WidthCm:  *width,
			HeightCm: *height,
			DepthCm:  *depth,
		}
	}

	backend := client.New(*apiURL, client.WithLogger(logger))
	lookup := cep.NewClient(cfg.CEPBaseURL, cep.WithLogger(logger))
	flow := client.NewQuoteFlow(backend, lookup, pricing.NewEstimator(), logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	quote, err := flow.Calculate(ctx, *origin, *dest, dims)
	if err != nil {
		fmt.Fprintf(os.Stderr, "quote failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Frete %s/%s -> %s/%s: R$ %.2f\n",
		quote.OriginCity, quote.OriginState,
		quote.DestCity, quote.DestState,
		quote.Value,
	)

	if *name == "" || *email == "" {
		return
	}

	result, err := flow.SaveLead(ctx, *name, *email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "save lead failed: %v\n", err)
		os.Exit(1)
	}
	if result.Associated {
		fmt.Printf("Lead %s salvo e vinculado à intenção.\n", result.Lead.ID)
	} else {
		fmt.Printf("Lead %s salvo (sem intenção vinculada).\n", result.Lead.ID)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
