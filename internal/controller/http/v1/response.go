package httpv1

import (
	"encoding/json"
	"time"

	"github.com/jacostamo01/CalculadoraNoviembre01/internal/domain"
	"github.com/labstack/echo/v4"
)

const (
	msgAlive         = "Logger activo"
	msgLogSaved      = "Log registrado"
	msgBadCreate     = "JSON inválido o error de BD"
	msgInvalidID     = "id inválido"
	msgNotFound      = "No encontrado"
	msgRouteNotFound = "Ruta no encontrada"
	msgInternal      = "Error interno del servidor"
)

type messageResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type pageMeta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type listResponse struct {
	OK   bool              `json:"ok"`
	Data []operationLogRow `json:"data"`
	Meta pageMeta          `json:"meta"`
}

type itemResponse struct {
	OK   bool            `json:"ok"`
	Data operationLogRow `json:"data"`
}

type operationLogRow struct {
	ID          int64           `json:"id"`
	Op          string          `json:"op"`
	Num1        *float64        `json:"num1"`
	Num2        *float64        `json:"num2"`
	Result      *float64        `json:"result"`
	Source      string          `json:"source"`
	Endpoint    string          `json:"endpoint"`
	Method      string          `json:"method"`
	StatusCode  int             `json:"status_code"`
	ClientIP    *string         `json:"client_ip"`
	CreatedAt   time.Time       `json:"created_at"`
	PayloadJSON json.RawMessage `json:"payload_json"`
}

func respond(c echo.Context, code int, body any) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
	return c.JSON(code, body)
}

func respondMessage(c echo.Context, code int, msg string) error {
	return respond(c, code, messageResponse{OK: true, Message: msg})
}

func respondError(c echo.Context, code int, msg string) error {
	return respond(c, code, errorResponse{OK: false, Error: msg})
}

func newListResponse(logs []domain.OperationLog, page domain.Page) listResponse {
	rows := make([]operationLogRow, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, toRow(l))
	}
	return listResponse{
		OK:   true,
		Data: rows,
		Meta: pageMeta{Page: page.Page, Limit: page.Limit},
	}
}
