// Package server exposes the trust analysis service over HTTP.
package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trustme-ai/trustme/config"
	"github.com/trustme-ai/trustme/internal/trust"
)

// Version is stamped at build time.
var Version = "dev"

// Run loads configuration, wires the analysis orchestrator, and serves HTTP
// until the listener fails. An empty addr falls back to the configured
// server address.
func Run(cfgPath, addr string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	orch, err := trust.NewFromConfig(cfg, nil)
	if err != nil {
		return err
	}

	e := New(orch)

	if addr == "" {
		addr = cfg.Server.Address
	}
	log.Printf("listening on %s", addr)
	return e.Start(addr)
}

// New builds the echo instance with all routes and middleware registered.
func New(orch *trust.Orchestrator) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, "/health")
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "version": Version})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	ah := &AnalyzeHandler{Orch: orch}
	ah.Register(e)

	return e
}
