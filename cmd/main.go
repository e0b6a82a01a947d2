package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jessevdk/go-flags"
	"github.com/rs/cors"

	"netboxbot/clients/netbox"
	"netboxbot/clients/telegram"
	"netboxbot/config"
	"netboxbot/core/log"
	"netboxbot/handlers"
	"netboxbot/middleware"
	"netboxbot/services/formatter"
	"netboxbot/usecases/search"
)

type Options struct {
	EnvFile string `long:"env-file" default:".env" description:"Path to a .env file with the bot configuration"`
	Port    string `long:"port" description:"HTTP port for the health endpoints (overrides PORT)"`
	Debug   bool   `long:"debug" description:"Enable debug logging and Telegram API tracing"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		log.Error("❌ Fatal error", "error", err)
		os.Exit(1)
	}
}

func run(opts Options) error {
	cfg, err := config.LoadConfig(opts.EnvFile)
	if err != nil {
		return err
	}
	if opts.Port != "" {
		cfg.Port = opts.Port
	}

	logLevel := cfg.LogLevel
	if opts.Debug {
		logLevel = slog.LevelDebug
	}
	closeLog, err := log.Setup(logLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	// Initialize error alert middleware
	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.SlackAlertWebhookURL,
		Environment: cfg.Environment,
		AppName:     "netboxbot",
		LogsURL:     cfg.ServerLogsURL,
	})

	netboxClient, err := netbox.NewNetBoxClient(
		cfg.NetBoxConfig.APIURL,
		cfg.NetBoxConfig.APIToken,
		cfg.NetBoxConfig.CACertPath,
	)
	if err != nil {
		return fmt.Errorf("failed to create NetBox client: %w", err)
	}

	telegramClient, err := telegram.NewTelegramClient(cfg.TelegramConfig.BotToken, opts.Debug)
	if err != nil {
		return fmt.Errorf("failed to create Telegram client: %w", err)
	}

	searchUseCase := search.NewSearchUseCase(netboxClient, formatter.NewFormatter())
	telegramHandler := handlers.NewTelegramEventsHandler(
		telegramClient,
		netboxClient,
		searchUseCase,
		alertMiddleware,
		cfg.WorkerPoolSize,
	)

	router := mux.NewRouter()
	handlers.NewHealthHandler().SetupEndpoints(router)

	// Setup CORS middleware
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(c.Handler(router)),
		ReadHeaderTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	botDone := make(chan error, 1)
	go func() {
		botDone <- alertMiddleware.WrapBackgroundTask("TelegramBot", func() error {
			return telegramHandler.StartBot(ctx)
		})()
	}()

	return handleGracefulShutdown(ctx, stop, server, botDone)
}

func handleGracefulShutdown(ctx context.Context, stop context.CancelFunc, server *http.Server, botDone <-chan error) error {
	serverErrs := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		log.Info("✅ Listening", "addr", "http://localhost"+server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrs <- err
		}
	}()

	var runErr error
	botFinished := false
	select {
	case <-ctx.Done():
		log.Info("🛑 Shutdown signal received, cleaning up...")
	case err := <-botDone:
		botFinished = true
		if err != nil {
			runErr = fmt.Errorf("telegram bot stopped: %w", err)
		}
	case err := <-serverErrs:
		log.Error("❌ Server error", "error", err)
		runErr = err
	}

	// Stops the Telegram receive loop if it is still running
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("❌ Server shutdown error", "error", err)
		if runErr == nil {
			runErr = err
		}
	}

	if !botFinished {
		select {
		case err := <-botDone:
			if err != nil && runErr == nil {
				runErr = fmt.Errorf("telegram bot stopped: %w", err)
			}
		case <-shutdownCtx.Done():
			log.Warn("⚠️ Telegram bot did not stop in time")
		}
	}

	if runErr == nil {
		log.Info("✅ Server stopped gracefully")
	}
	return runErr
}
