// Command jobboard-web runs the job board browser UI. It talks to the API
// server over HTTP, so the two processes can be deployed independently.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joblane/jobboard/internal/bootstrap"
	"github.com/joblane/jobboard/internal/client"
	"github.com/joblane/jobboard/internal/web"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting jobboard web UI",
		"addr", cfg.Web.Addr,
		"api_base_url", cfg.Web.APIBaseURL)

	api, err := client.New(client.Options{BaseURL: cfg.Web.APIBaseURL})
	if err != nil {
		return err
	}

	server, err := web.NewServer(api, logger)
	if err != nil {
		return err
	}

	return bootstrap.ServeHTTP(ctx, cfg.Web.Addr, server.Handler(), logger)
}
