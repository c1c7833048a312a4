package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/techagentng/civiceye/config"
	"github.com/techagentng/civiceye/db"
	"github.com/techagentng/civiceye/logger"
	"github.com/techagentng/civiceye/services"
	"github.com/techagentng/civiceye/services/events"
	"github.com/techagentng/civiceye/services/session"
	"go.uber.org/zap"
)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	Config              *config.Config
	AuthRepository      db.AuthRepository
	AuthService         services.AuthService
	ReportService       services.ReportService
	RewardService       services.RewardService
	PlateService        services.PlateService
	NotificationService services.NotificationService
	Sessions            session.Store
	Hub                 *events.Hub
}

// Start serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.Config.Port),
		Handler:           s.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Log.Info("shutting down server")
	if s.Hub != nil {
		// ends open report feeds; Shutdown does not wait for hijacked connections
		s.Hub.Close()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
