package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yungbote/tastebook-backend/internal/app"
	"github.com/yungbote/tastebook-backend/internal/platform/envutil"
	"github.com/yungbote/tastebook-backend/internal/platform/logger"
)

func main() {
	log, err := logger.New(envutil.Str("APP_MODE", "dev"))
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	a, err := app.New(log)
	if err != nil {
		log.Fatal("Failed to build app", "error", err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- a.Run() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal("Server error", "error", err)
		}
	case sig := <-sigCh:
		log.Info("Signal received", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := a.Shutdown(ctx); err != nil {
			log.Error("Shutdown error", "error", err)
		}
	}
}
