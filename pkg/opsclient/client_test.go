package opsclient_test

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jacostamo01/CalculadoraNoviembre01/pkg/opsclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLogger struct {
	mu      sync.Mutex
	records []opsclient.Record
	status  int
	delay   time.Duration
}

func (f *fakeLogger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if r.Method != http.MethodPost || r.URL.Path != "/ops/log" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	var rec opsclient.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	f.records = append(f.records, rec)
	f.mu.Unlock()

	status := f.status
	if status == 0 {
		status = http.StatusCreated
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"ok":true,"message":"Log registrado"}`))
}

func (f *fakeLogger) received() []opsclient.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]opsclient.Record(nil), f.records...)
}

func TestNewRecord(t *testing.T) {
	tcs := []struct {
		name         string
		req          *http.Request
		op           opsclient.Operation
		wantSource   string
		wantEndpoint string
		wantMethod   string
		wantQuery    *string
	}{
		{
			name:         "post body",
			req:          httptest.NewRequest(http.MethodPost, "/sumar", nil),
			op:           opsclient.Operation{Op: "SUMA", Endpoint: "/sumar"},
			wantSource:   opsclient.SourceBody,
			wantEndpoint: "/sumar",
			wantMethod:   http.MethodPost,
		},
		{
			name:         "query string",
			req:          httptest.NewRequest(http.MethodGet, "/sumar?num1=2&num2=3", nil),
			op:           opsclient.Operation{Op: "SUMA"},
			wantSource:   opsclient.SourceQuery,
			wantEndpoint: "/sumar",
			wantMethod:   http.MethodGet,
			wantQuery:    strPtr("num1=2&num2=3"),
		},
		{
			name:         "path params",
			req:          httptest.NewRequest(http.MethodGet, "/mult/4/5", nil),
			op:           opsclient.Operation{Op: "MULT"},
			wantSource:   opsclient.SourcePath,
			wantEndpoint: "/mult/4/5",
			wantMethod:   http.MethodGet,
		},
		{
			name:         "bare question mark",
			req:          httptest.NewRequest(http.MethodGet, "/restar?", nil),
			op:           opsclient.Operation{Op: "RESTA"},
			wantSource:   opsclient.SourceQuery,
			wantEndpoint: "/restar",
			wantMethod:   http.MethodGet,
		},
		{
			name:         "no request",
			op:           opsclient.Operation{Op: "DIV"},
			wantSource:   opsclient.SourcePath,
			wantEndpoint: "/",
			wantMethod:   http.MethodGet,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			rec := opsclient.NewRecord(tc.req, tc.op)

			assert.Equal(t, tc.wantSource, rec.Source)
			assert.Equal(t, tc.wantEndpoint, rec.Endpoint)
			assert.Equal(t, tc.wantMethod, rec.Method)
			assert.Equal(t, tc.wantQuery, rec.Payload.Query)
			assert.Equal(t, http.StatusOK, rec.StatusCode)
			assert.NotNil(t, rec.Payload.Headers)
		})
	}
}

func TestNewRecord_HeadersAndNumbers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/div/1/0", nil)
	req.Header.Set("X-Trace", "abc")
	req.Header.Add("Accept", "text/html")
	req.Header.Add("Accept", "application/json")

	rec := opsclient.NewRecord(req, opsclient.Operation{
		Op: "DIV", Num1: 1, Num2: 0, Result: math.Inf(1), StatusCode: http.StatusBadRequest,
	})

	assert.Equal(t, "abc", rec.Payload.Headers["x-trace"])
	assert.Equal(t, "text/html, application/json", rec.Payload.Headers["accept"])
	assert.Equal(t, "example.com", rec.Payload.Headers["host"])
	require.NotNil(t, rec.Num1)
	assert.Equal(t, 1.0, *rec.Num1)
	assert.Nil(t, rec.Result)
	assert.Equal(t, http.StatusBadRequest, rec.StatusCode)

	_, err := json.Marshal(rec)
	assert.NoError(t, err)
}

func TestClient_LogOperation(t *testing.T) {
	fake := &fakeLogger{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	client := opsclient.New(opsclient.WithBaseURL(srv.URL + "/"))

	req := httptest.NewRequest(http.MethodGet, "/sumar?num1=2&num2=3", nil)
	client.LogOperation(req, opsclient.Operation{Op: "SUMA", Num1: 2, Num2: 3, Result: 5, Endpoint: "/sumar"})
	client.Wait()

	got := fake.received()
	require.Len(t, got, 1)
	assert.Equal(t, "SUMA", got[0].Op)
	assert.Equal(t, opsclient.SourceQuery, got[0].Source)
	assert.Equal(t, "/sumar", got[0].Endpoint)
	require.NotNil(t, got[0].Result)
	assert.Equal(t, 5.0, *got[0].Result)
}

func TestClient_LogOperationDoesNotBlock(t *testing.T) {
	fake := &fakeLogger{delay: 300 * time.Millisecond}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	client := opsclient.New(opsclient.WithBaseURL(srv.URL))

	start := time.Now()
	client.LogOperation(httptest.NewRequest(http.MethodPost, "/sumar", nil), opsclient.Operation{Op: "SUMA"})
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	client.Wait()
	assert.Len(t, fake.received(), 1)
}

func TestClient_LogOperationUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := opsclient.New(opsclient.WithBaseURL(url), opsclient.WithTimeout(time.Second))

	assert.NotPanics(t, func() {
		client.LogOperation(nil, opsclient.Operation{Op: "SUMA"})
		client.Wait()
	})
}

func TestClient_Send(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		srv := httptest.NewServer(&fakeLogger{})
		defer srv.Close()

		client := opsclient.New(opsclient.WithBaseURL(srv.URL))
		assert.NoError(t, client.Send(context.Background(), opsclient.NewRecord(nil, opsclient.Operation{Op: "SUMA"})))
	})

	t.Run("rejected", func(t *testing.T) {
		srv := httptest.NewServer(&fakeLogger{status: http.StatusBadRequest})
		defer srv.Close()

		client := opsclient.New(opsclient.WithBaseURL(srv.URL), opsclient.WithHTTPClient(srv.Client()))
		err := client.Send(context.Background(), opsclient.NewRecord(nil, opsclient.Operation{Op: "SUMA"}))
		assert.ErrorIs(t, err, opsclient.ErrUnexpectedStatus)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(&fakeLogger{delay: 200 * time.Millisecond})
		defer srv.Close()

		client := opsclient.New(opsclient.WithBaseURL(srv.URL))
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		assert.Error(t, client.Send(ctx, opsclient.NewRecord(nil, opsclient.Operation{Op: "SUMA"})))
	})
}

func strPtr(s string) *string { return &s }
