package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aporte-capital/consultoria-service/internal/api"
	"github.com/aporte-capital/consultoria-service/internal/api/handlers"
	"github.com/aporte-capital/consultoria-service/internal/cnpj"
	"github.com/aporte-capital/consultoria-service/internal/configuration"
	"github.com/aporte-capital/consultoria-service/internal/mailer"
	"github.com/aporte-capital/consultoria-service/internal/services"
	"github.com/aporte-capital/consultoria-service/internal/storage"
	"github.com/aporte-capital/consultoria-service/internal/templink"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	cfg := configuration.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.Development() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	blobs, err := storage.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}

	var events *services.EventPublisher
	if cfg.NATSURL != "" {
		events, err = services.ConnectNATS(cfg.NATSURL, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("NATS unavailable, events disabled")
		} else {
			defer events.Close()
		}
	}

	var scanner *services.VirusScanner
	if cfg.CLAMAVURL != "" {
		scanner = services.NewVirusScanner(cfg.CLAMAVURL, logger)
		logger.Info().Str("url", cfg.CLAMAVURL).Msg("upload scanning enabled")
	}

	mail := mailer.NewSMTPSender(cfg.SMTP, cfg.Mail.Recipient)
	lookup := cnpj.NewClient(logger)
	links := templink.NewStore(blobs, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		ticker := time.NewTicker(cfg.Links.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := links.Sweep(); removed > 0 {
					events.Publish("consultoria.links.swept", gin.H{"removed": removed})
				}
			}
		}
	}()

	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = 16 << 20

	h := handlers.New(cfg, lookup, mail, links, blobs, scanner, events, logger)
	api.RegisterRoutes(r, h)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Server.Port).Str("environment", cfg.Server.Environment).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
}
