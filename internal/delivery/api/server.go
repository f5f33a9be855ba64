package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"apiexception/config"
	"apiexception/echoapi"
	"apiexception/internal/delivery"
	"apiexception/internal/delivery/api/router"
	"apiexception/internal/errors"
	"apiexception/mapper"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"golang.org/x/net/http2"
)

type apiServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// ServerParams holds dependencies for HTTP server, injected by Fx.
type ServerParams struct {
	fx.In

	Lc           fx.Lifecycle
	Cfg          *config.Config
	Logger       *slog.Logger
	Policy       *mapper.Policy
	RouterParams router.RouterParams
}

func NewServer(params ServerParams) (delivery.Delivery, error) {
	echoServer, err := NewEcho(params.Cfg, params.Logger, params.Policy, router.NewRouter(params.RouterParams))
	if err != nil {
		return nil, err
	}

	srv := &apiServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: echoServer,
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// Routes registers handlers on an echo instance.
type Routes interface {
	RegisterRoutes(e *echo.Echo)
	RegisterDemoRoutes(e *echo.Echo)
}

// NewEcho builds the configured echo instance without starting it.
func NewEcho(cfg *config.Config, logger *slog.Logger, policy *mapper.Policy, routes Routes) (*echo.Echo, error) {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Server.ReadTimeout = cfg.HTTP.Timeouts.ReadTimeout
	echoServer.Server.ReadHeaderTimeout = cfg.HTTP.Timeouts.ReadHeaderTimeout
	echoServer.Server.WriteTimeout = cfg.HTTP.Timeouts.WriteTimeout
	echoServer.Server.IdleTimeout = cfg.HTTP.Timeouts.IdleTimeout

	// 1. Request ID, optional panic fallback, validator, binder and the
	// central error handler
	if err := echoapi.Register(echoServer, echoapi.Options{
		Policy:                policy,
		Logger:                logger,
		UseFallbackMiddleware: cfg.Exceptions.UseFallbackMiddleware,
		ValidateOnBind:        cfg.Exceptions.ValidateOnBind,
	}); err != nil {
		return nil, errors.Wrap(err, "register exception handlers")
	}

	// 2. Echo's own recovery when the fallback is off
	if !cfg.Exceptions.UseFallbackMiddleware {
		echoServer.Use(echomiddleware.Recover())
	}

	// 3. Logger middleware
	echoServer.Use(echoapi.NewLoggerMiddleware(logger, cfg.Env.Debug).Handle)

	// 4. CORS middleware
	echoServer.Use(echomiddleware.CORS())

	// 5. Request body size limit
	echoServer.Use(echomiddleware.BodyLimit(cfg.HTTP.MaxRequestBodySize))

	routes.RegisterRoutes(echoServer)
	routes.RegisterDemoRoutes(echoServer)

	return echoServer, nil
}

func (s *apiServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting API HTTP server", slog.String("host_port", hostPort))
	h2Server := &http2.Server{
		IdleTimeout: s.cfg.HTTP.Timeouts.IdleTimeout,
	}
	if err := s.server.StartH2CServer(hostPort, h2Server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func (s *apiServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, delivery.DefaultShutdownTimeout)
	defer cancel()

	s.logger.Info("Shutting down API HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
