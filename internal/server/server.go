// Package server exposes the planning and mood-log services over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	apperrors "github.com/julianstephens/planme/internal/errors"
	"github.com/julianstephens/planme/internal/logger"
)

// ShutdownTimeout bounds how long Run waits for in-flight requests.
const ShutdownTimeout = 10 * time.Second

// Server is one echo instance serving a single service.
type Server struct {
	name string
	echo *echo.Echo
}

// Message is the body of informational responses.
type Message struct {
	Message string `json:"message"`
}

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	Detail string `json:"detail"`
}

func newServer(name string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{name: name, echo: e}
	e.HTTPErrorHandler = s.handleError

	e.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}),
		middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
			LogMethod:    true,
			LogURI:       true,
			LogStatus:    true,
			LogLatency:   true,
			LogRequestID: true,
			LogError:     true,
			HandleError:  true,
			LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
				keyvals := []interface{}{
					"service", name,
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency", v.Latency,
					"request_id", v.RequestID,
				}
				if v.Error != nil {
					logger.Warn("request failed", append(keyvals, "error", v.Error)...)
					return nil
				}
				logger.Info("request", keyvals...)
				return nil
			},
		}),
		middleware.Recover(),
		middleware.CORS(),
	)

	return s
}

// handleError renders every failure as {"detail": ...}. Errors that are not
// already HTTP errors are internal failures.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	detail := err.Error()

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			detail = msg
		} else {
			detail = fmt.Sprint(he.Message)
		}
	} else {
		logger.Error("handler failed",
			"service", s.name,
			"path", c.Path(),
			"kind", apperrors.KindOf(err),
			"error", err,
		)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(code)
	} else {
		writeErr = c.JSON(code, ErrorDetail{Detail: detail})
	}
	if writeErr != nil {
		logger.Error("failed to write error response", "service", s.name, "error", writeErr)
	}
}

// unprocessable reports a request body that does not match the request model.
func unprocessable(format string, args ...interface{}) error {
	return echo.NewHTTPError(http.StatusUnprocessableEntity, fmt.Sprintf(format, args...))
}

// ServeHTTP lets the server be driven directly by tests or another mux.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) Name() string {
	return s.name
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "service", s.name, "addr", addr)
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("%s server: %w", s.name, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	logger.Info("Shutting down server", "service", s.name)
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%s server shutdown: %w", s.name, err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server: %w", s.name, err)
	}
	return nil
}
