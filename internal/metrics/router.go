package metrics

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
)

func ConfigureRouter(handler *echo.Echo) {
	handler.HideBanner = true
	handler.HidePort = true
	handler.GET("/metrics", echoprometheus.NewHandler())
}

// ConfigureMiddleware instruments every API route. It registers collectors
// on the default registry, so it must run once per process.
func ConfigureMiddleware(handler *echo.Echo) {
	handler.Use(echoprometheus.NewMiddleware(namespace))
}
