// Package api exposes the assistant over HTTP.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Shopping-Assistant/agent/contract"
	configx "github.com/tanpawarit/Chative-Shopping-Assistant/pkg/config"
	"github.com/tanpawarit/Chative-Shopping-Assistant/pkg/logbuffer"
)

type Config struct {
	Port           int           `split_words:"true" default:"8080"`
	AllowedOrigins string        `split_words:"true"`
	LogFilePath    string        `split_words:"true" default:"./assistant.log"`
	AgentTimeout   time.Duration `split_words:"true" default:"120s"`
	MaxTurns       int           `split_words:"true" default:"10"`
}

func (c *Config) Validate() error {
	if c.Port <= 0 {
		return errors.New("APP_PORT must be positive")
	}
	if c.AgentTimeout <= 0 {
		return errors.New("APP_AGENT_TIMEOUT must be positive")
	}
	return nil
}

// Origins returns the CORS allow-list.
func (c *Config) Origins() []string {
	return configx.SplitList(c.AllowedOrigins)
}

// Handler handles HTTP requests.
type Handler struct {
	dispatcher contractx.Dispatcher
	logs       *logbuffer.Buffer
	config     Config
	logger     zerolog.Logger
}

type HandlerOption func(*Handler)

// WithLogger replaces the global logger for request and handler logs.
func WithLogger(logger zerolog.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

func NewHandler(dispatcher contractx.Dispatcher, logs *logbuffer.Buffer, config Config, opts ...HandlerOption) *Handler {
	h := &Handler{
		dispatcher: dispatcher,
		logs:       logs,
		config:     config,
		logger:     log.Logger,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Home)
	e.GET("/health", h.Health)
	e.GET("/cors", h.CORS)

	e.POST("/agent_response", h.AgentResponse)

	e.GET("/logs", h.Logs)
	e.GET("/logs/download", h.DownloadLogs)
	e.GET("/logs/:n", h.LastLogs)
	e.DELETE("/logs/delete", h.ClearLogs)
}

// NewServer builds an echo instance with the standard middleware and h's routes.
func NewServer(h *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger(h.logger))
	e.Use(middleware.CORSWithConfig(corsConfig(h.config.Origins())))

	h.RegisterRoutes(e)
	return e
}

func corsConfig(origins []string) middleware.CORSConfig {
	conf := middleware.CORSConfig{
		AllowOrigins:     origins,
		AllowCredentials: true,
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPost,
			http.MethodPut, http.MethodPatch, http.MethodDelete,
		},
	}
	if len(origins) == 0 {
		// An empty allow-list admits nobody.
		conf.AllowOriginFunc = func(string) (bool, error) { return false, nil }
	}
	return conf
}

// requestLogger writes one line when a request arrives and one when it completes, so the
// log buffer and log file see every route.
func requestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		BeforeNextFunc: func(c echo.Context) {
			logger.Info().
				Str("request_id", requestID(c)).
				Str("method", c.Request().Method).
				Str("uri", c.Request().RequestURI).
				Msg("request received")
		},
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			ev := logger.Info()
			if v.Error != nil {
				ev = logger.Error().Err(v.Error)
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request completed")
			return nil
		},
	})
}

func (h *Handler) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Hello, World"})
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) CORS(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"allowed": h.config.Origins()})
}
