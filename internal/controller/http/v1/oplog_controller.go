package httpv1

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	logginghelper "github.com/jacostamo01/CalculadoraNoviembre01/internal/controller/common/logging"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/controller/http/validators"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/domain"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/metrics"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/service"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// Outcome labels for the request counter.
const (
	statusOK         = "ok"
	statusBadRequest = "bad_request"
	statusNotFound   = "not_found"
	statusFailed     = "failed"
)

type OperationLogController struct {
	opLogService service.OperationLog
	counters     *metrics.Counters
}

func NewOperationLogController(ls service.OperationLog, cnt *metrics.Counters) *OperationLogController {
	return &OperationLogController{
		opLogService: ls,
		counters:     cnt,
	}
}

func (ctrl *OperationLogController) Create(c echo.Context) error {
	r := c.Request()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		ctrl.counters.HTTPRequests.Inc("create", statusBadRequest)
		log.WithError(err).Warn("Failed to read operation log body")
		return respondError(c, http.StatusBadRequest, msgBadCreate)
	}

	req, err := DecodeCreateRequest(body)
	if err != nil {
		ctrl.counters.HTTPRequests.Inc("create", statusBadRequest)
		log.WithError(err).Warn("Malformed operation log body")
		return respondError(c, http.StatusBadRequest, msgBadCreate)
	}

	logObj, err := req.ToDomain(r.URL.Path, r.Method, clientIP(r))
	if err == nil {
		err = validators.Validate(logObj)
	}
	if err != nil {
		ctrl.counters.HTTPRequests.Inc("create", statusBadRequest)
		log.WithError(err).Warn("Rejected operation log")
		return respondError(c, http.StatusBadRequest, msgBadCreate)
	}

	logginghelper.LogReceived(logObj)

	id, err := ctrl.opLogService.Create(r.Context(), logObj)
	if err != nil {
		ctrl.counters.HTTPRequests.Inc("create", statusFailed)
		logginghelper.LogError(logObj, err)
		return respondError(c, http.StatusBadRequest, msgBadCreate)
	}

	logginghelper.LogSaved(logObj, id)
	ctrl.counters.HTTPRequests.Inc("create", statusOK)

	return respondMessage(c, http.StatusCreated, msgLogSaved)
}

func (ctrl *OperationLogController) List(c echo.Context) error {
	page := domain.NewPage(
		queryInt(c, "page", domain.DefaultPage),
		queryInt(c, "limit", domain.DefaultLimit),
	)

	logs, err := ctrl.opLogService.List(c.Request().Context(), c.QueryParam("op"), page)
	if err != nil {
		ctrl.counters.HTTPRequests.Inc("list", statusFailed)
		log.WithError(err).Error("Failed to list operation logs")
		return respondError(c, http.StatusInternalServerError, msgInternal)
	}

	ctrl.counters.HTTPRequests.Inc("list", statusOK)
	return respond(c, http.StatusOK, newListResponse(logs, page))
}

func (ctrl *OperationLogController) GetByID(c echo.Context) error {
	id, err := validators.ParseID(c.Param("id"))
	if err != nil {
		ctrl.counters.HTTPRequests.Inc("get", statusBadRequest)
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	logObj, err := ctrl.opLogService.GetByID(c.Request().Context(), id)
	switch {
	case errors.Is(err, service.ErrOperationLogNotFound):
		ctrl.counters.HTTPRequests.Inc("get", statusNotFound)
		return respondError(c, http.StatusNotFound, msgNotFound)
	case err != nil:
		ctrl.counters.HTTPRequests.Inc("get", statusFailed)
		logginghelper.LogIDError("get", id, err)
		return respondError(c, http.StatusInternalServerError, msgInternal)
	}

	ctrl.counters.HTTPRequests.Inc("get", statusOK)
	return respond(c, http.StatusOK, itemResponse{OK: true, Data: toRow(logObj)})
}

// Delete serves both DELETE /ops/log/:id and POST /ops/log/:id/delete.
func (ctrl *OperationLogController) Delete(c echo.Context) error {
	id, err := validators.ParseID(c.Param("id"))
	if err != nil {
		ctrl.counters.HTTPRequests.Inc("delete", statusBadRequest)
		return respondError(c, http.StatusBadRequest, msgInvalidID)
	}

	err = ctrl.opLogService.Delete(c.Request().Context(), id)
	switch {
	case errors.Is(err, service.ErrOperationLogNotFound):
		ctrl.counters.HTTPRequests.Inc("delete", statusNotFound)
		return respondError(c, http.StatusNotFound, msgNotFound)
	case err != nil:
		ctrl.counters.HTTPRequests.Inc("delete", statusFailed)
		logginghelper.LogIDError("delete", id, err)
		return respondError(c, http.StatusInternalServerError, msgInternal)
	}

	ctrl.counters.HTTPRequests.Inc("delete", statusOK)
	return c.NoContent(http.StatusNoContent)
}

// queryInt returns def when the parameter is missing or not an integer.
func queryInt(c echo.Context, name string, def int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return def
	}
	return v
}
