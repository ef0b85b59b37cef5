package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jacostamo01/CalculadoraNoviembre01/internal/metrics"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestNewTestCounters(t *testing.T) {
	a := metrics.NewTestCounters()
	b := metrics.NewTestCounters()

	assert.NotPanics(t, func() {
		a.LogsReceived.Inc("SUMA")
		b.HTTPRequests.Inc("create", "ok")
	})
}

func TestConfigureRouter(t *testing.T) {
	e := echo.New()
	metrics.ConfigureRouter(e)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestOpLabel(t *testing.T) {
	tcs := []struct {
		op   string
		want string
	}{
		{op: "SUMA", want: "SUMA"},
		{op: "MULT", want: "MULT"},
		{op: "DIV", want: "DIV"},
		{op: "CRUD", want: "CRUD"},
		{op: "suma", want: metrics.OtherOp},
		{op: "", want: metrics.OtherOp},
		{op: "RANDOM-8f3c2a", want: metrics.OtherOp},
	}

	for _, tc := range tcs {
		t.Run(tc.op, func(t *testing.T) {
			assert.Equal(t, tc.want, metrics.OpLabel(tc.op))
		})
	}
}
