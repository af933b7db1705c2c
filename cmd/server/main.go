package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gunvolt24/wb_cart/config"
	"github.com/Gunvolt24/wb_cart/internal/app"
	"github.com/joho/godotenv"
)

func main() {
	// .env.local — только для локального запуска; отсутствие файла не ошибка.
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, cleanup, err := app.Bootstrap(ctx, &cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap: %v\n", err)
		os.Exit(1)
	}

	runErr := application.Run(ctx)
	if runErr != nil {
		application.Logger.Errorf(ctx, "run: %v", runErr)
	}
	cleanup()

	if runErr != nil {
		os.Exit(1)
	}
}
