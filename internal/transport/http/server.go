// Package http provides the HTTP server for arcanus.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/arcanus/arcanus/internal/auth"
	"github.com/arcanus/arcanus/internal/service"
	v1 "github.com/arcanus/arcanus/internal/transport/http/v1"
)

// ServerConfig carries the transport-level settings.
type ServerConfig struct {
	AuthSecret []byte
	// PortraitDir, when set, is served as static files under PortraitPath.
	PortraitDir  string
	PortraitPath string
}

// NewServer creates and configures the HTTP server.
func NewServer(svc *service.Service, cfg ServerConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	if cfg.PortraitDir != "" {
		e.Static(cfg.PortraitPath, cfg.PortraitDir)
	}

	// Handlers
	handler := v1.NewHandler(svc)
	handler.RegisterRoutes(e, auth.Middleware(cfg.AuthSecret))

	return e
}
