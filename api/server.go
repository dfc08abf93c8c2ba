package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/sitesearch/app"
	"github.com/meghashyamc/sitesearch/config"
	"github.com/meghashyamc/sitesearch/logger"
	"github.com/meghashyamc/sitesearch/validation"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	router     *gin.Engine
	httpServer *http.Server
	app        *app.App
	validator  *validation.Validator
	logger     logger.Logger
}

// Run serves the HTTP API until ctx is cancelled or the process is interrupted.
func Run(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)

	defer cancel()

	s := &server{
		logger: logger.New(cfg.GetLogLevel()),
	}
	if err := s.setupDependencies(cfg); err != nil {
		return err
	}
	s.setupRouter()

	return s.serve(ctx, cfg.GetPort())
}

func (s *server) setupDependencies(cfg *config.Config) error {
	var err error
	s.app, err = app.New(cfg, s.logger)
	if err != nil {
		s.logger.Error("error creating app", "err", err.Error())
		return err
	}
	s.validator, err = validation.New(s.logger)
	if err != nil {
		s.logger.Error("error creating validator", "err", err.Error())
		s.app.Close()
		return err
	}

	return nil

}

func (s *server) setupRouter() {
	router := newRouter()

	router.Use(loggingMiddleware(s.logger))

	setupRoutes(router, s.logger, s.app, s.validator)

	s.router = router
}

func (s *server) serve(ctx context.Context, port string) error {
	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: s.router.Handler(),
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("starting http server", "port", port)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		s.app.Close()
		if ok {
			s.logger.Error("http server failed", "err", err.Error())
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	return s.shutdown()
}

func (s *server) shutdown() error {
	s.logger.Info("starting to shut down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	if closeErr := s.app.Close(); closeErr != nil {
		s.logger.Error("error closing key-value database", "err", closeErr.Error())
	}
	if err != nil {
		s.logger.Error("error shutting down http server", "err", err.Error())
		return err
	}

	s.logger.Info("shut down http server successfully")
	return nil
}
