package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"reelguard/internal/adapter/rest"
	"reelguard/internal/di"
	"reelguard/internal/infra/config"
	"reelguard/internal/infra/logger"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	// 2. Initialize Logger
	log := logger.NewWithOTel(cfg.OTelLogsEnabled)
	slog.SetDefault(log)

	if cfg.OpenAI.APIKey == "" {
		log.Warn("OPENAI_API_KEY is not set; classification and recommendation calls will fail")
	}

	// 3. Wire Components
	components := di.NewApplicationComponents(cfg, log)

	// 4. Initialize Echo
	ctxLog := logger.NewContextLogger("reelguard")
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ctx := context.WithValue(c.Request().Context(), logger.RequestIDKey, rid)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ctxLog.WithContext(c.Request().Context()).Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	// 5. Register Handlers
	rest.RegisterRoutes(e, components.Handler)

	// 6. Start Server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Info("Starting server", "addr", addr, "model", components.LLMClient.Version())
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	// 7. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
