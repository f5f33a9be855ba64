// Package router contains routing for the HTTP delivery.
package router

import (
	"apiexception/config"
	"apiexception/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	DemoHandler *handler.DemoHandler
	Config      *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	demoHandler *handler.DemoHandler
	config      *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		demoHandler: params.DemoHandler,
		config:      params.Config,
	}
}

// RegisterRoutes sets up the always-on routes.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
}

// RegisterDemoRoutes mounts the example failure endpoints when enabled.
func (r *router) RegisterDemoRoutes(e *echo.Echo) {
	if r.config.DemoRoutes == nil || !r.config.DemoRoutes.Enabled {
		return
	}

	demoGroup := e.Group("/demo")
	{
		demoGroup.POST("/login", r.demoHandler.Login)
		demoGroup.GET("/validation", r.demoHandler.Validation)
		demoGroup.POST("/validation-body", r.demoHandler.ValidationBody)
		demoGroup.GET("/crash", r.demoHandler.Crash)
		demoGroup.GET("/catalog/:code", r.demoHandler.Catalog)
	}
}
