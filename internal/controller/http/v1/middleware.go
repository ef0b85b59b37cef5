package httpv1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
)

const (
	corsAllowOrigin  = "*"
	corsAllowMethods = "GET,POST,DELETE,OPTIONS"
	corsAllowHeaders = "Content-Type, X-HTTP-Method-Override"
)

// cors stamps the CORS headers on every response, Origin or not, and
// answers any OPTIONS request before routing.
func cors(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set(echo.HeaderAccessControlAllowOrigin, corsAllowOrigin)
		h.Set(echo.HeaderAccessControlAllowMethods, corsAllowMethods)
		h.Set(echo.HeaderAccessControlAllowHeaders, corsAllowHeaders)

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusNoContent)
		}
		return next(c)
	}
}

// collapseSlashes drops empty path segments so /ops//log routes like /ops/log.
func collapseSlashes(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		u := c.Request().URL
		u.Path = squeezeSlashes(u.Path)
		if u.RawPath != "" {
			u.RawPath = squeezeSlashes(u.RawPath)
		}
		return next(c)
	}
}

func squeezeSlashes(p string) string {
	if !strings.Contains(p, "//") {
		return p
	}
	var b strings.Builder
	b.Grow(len(p))
	prev := byte(0)
	for i := 0; i < len(p); i++ {
		if p[i] == '/' && prev == '/' {
			continue
		}
		prev = p[i]
		b.WriteByte(p[i])
	}
	return b.String()
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(log.Fields{
				"request_id": v.RequestID,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"remote_ip":  v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Warn("Request failed")
				return nil
			}
			entry.Info("Request handled")
			return nil
		},
	})
}

// errorHandler turns errors that escaped a handler into the JSON error
// bodies. Routing misses, including wrong-method ones, are plain 404s.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}

	var respErr error
	switch code {
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		c.Response().Header().Del(echo.HeaderAllow)
		respErr = respondError(c, http.StatusNotFound, msgRouteNotFound)
	case http.StatusRequestEntityTooLarge:
		respErr = respondError(c, http.StatusBadRequest, msgBadCreate)
	default:
		log.WithFields(log.Fields{
			"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			"error":      err,
		}).Error("Unhandled request error")
		respErr = respondError(c, http.StatusInternalServerError, msgInternal)
	}
	if respErr != nil {
		log.WithError(respErr).Error("Failed to write error response")
	}
}
