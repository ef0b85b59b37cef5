package httpv1

import (
	"github.com/google/uuid"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/metrics"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const maxBodySize = "1M"

func ConfigureRouter(handler *echo.Echo, services *service.Services, counters *metrics.Counters) {
	handler.HideBanner = true
	handler.HidePort = true
	handler.HTTPErrorHandler = errorHandler

	handler.Pre(cors, collapseSlashes, middleware.RemoveTrailingSlash())
	handler.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}),
		requestLogger(),
		middleware.Recover(),
	)

	health := NewHealthController(services.OperationLog)
	handler.GET("/health", health.Health)
	handler.GET("/ping", health.Ping)

	opLogs := NewOperationLogController(services.OperationLog, counters)
	g := handler.Group("/ops/log")
	g.POST("", opLogs.Create, middleware.BodyLimit(maxBodySize))
	g.GET("", opLogs.List)
	g.GET("/:id", opLogs.GetByID)
	g.DELETE("/:id", opLogs.Delete)
	g.POST("/:id/delete", opLogs.Delete)
}
