package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/viralforge/adforge/internal/app/bootstrap"
)

func main() {
	// .env is a dev convenience; production injects env vars through infra.
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	ctx := context.Background()
	runtime, err := bootstrap.NewRuntime(ctx, "configs/default.yaml")
	if err != nil {
		log.Fatalf("bootstrap api runtime: %v", err)
	}
	if err := runtime.RunAPI(ctx); err != nil {
		log.Fatalf("run api: %v", err)
	}
}
