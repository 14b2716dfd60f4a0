package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"slidedeck/internal/app"
	"slidedeck/internal/config"
	"slidedeck/internal/deck"
	"slidedeck/internal/hub"
	"slidedeck/internal/viewer"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve <deck.yaml>",
	Short: "Serve the presenter page for a deck",
	Long:  `Loads the deck and serves the presenter page at /present. Open it in a browser; every connected page shows the same slide.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger, err := newLogger(cfg.Log.Level)
		if err != nil {
			return err
		}
		defer logger.Sync()

		d, err := deck.Load(args[0])
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, d, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// serve runs the session, the hub and the HTTP server until ctx ends.
func serve(ctx context.Context, cfg *config.Config, d *deck.Deck, logger *zap.Logger) error {
	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := hub.NewHub(logger.Named("hub"))
	v := viewer.New(d, viewer.Options{
		Target:   cfg.Presentation.Target,
		PenWidth: cfg.Annotate.PenWidth,
		AssetURL: app.AssetURL,
	})
	session := viewer.NewSession(v, app.NewPublisher(h, logger), viewer.SessionOptions{
		TickInterval:     cfg.Presentation.TickInterval,
		AutoplayInterval: cfg.Presentation.AutoplayInterval,
	}, logger.Named("session"))

	hubDone := make(chan struct{})
	sessionDone := make(chan struct{})
	go func() {
		h.Run(runCtx)
		close(hubDone)
	}()
	go func() {
		session.Run(runCtx)
		close(sessionDone)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      app.NewServer(d, session, h, cfg.Server, logger).Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("deck", d.Title),
			zap.Int("slides", d.Len()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	cancel()
	<-sessionDone
	<-hubDone
	logger.Info("server stopped")

	if serveErr != nil {
		return fmt.Errorf("http server: %w", serveErr)
	}
	return nil
}
