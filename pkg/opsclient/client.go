// Package opsclient reports arithmetic operations to the operations logger
// without ever delaying or failing the caller's own response.
package opsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultBaseURL    = "http://127.0.0.1:4010"
	defaultTimeout    = 5 * time.Second
	defaultStatusCode = http.StatusOK
	logPath           = "/ops/log"
	maxErrorBody      = 512
)

const (
	SourceBody  = "body"
	SourceQuery = "query"
	SourcePath  = "path"
)

var ErrUnexpectedStatus = errors.New("unexpected logger response status")

// Operation describes a computed result. Zero StatusCode means 200 and an
// empty Endpoint means the path of the originating request.
type Operation struct {
	Op         string
	Num1       float64
	Num2       float64
	Result     float64
	StatusCode int
	Endpoint   string
}

// Record is the create body sent to the logger.
type Record struct {
	Op         string   `json:"op"`
	Num1       *float64 `json:"num1"`
	Num2       *float64 `json:"num2"`
	Result     *float64 `json:"result"`
	Source     string   `json:"source"`
	Endpoint   string   `json:"endpoint"`
	Method     string   `json:"method"`
	StatusCode int      `json:"status_code"`
	Payload    Payload  `json:"payload"`
}

type Payload struct {
	Query   *string           `json:"query"`
	Headers map[string]string `json:"headers"`
}

type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client

	wg sync.WaitGroup
}

func New(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		timeout: defaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	return c
}

// NewRecord captures everything needed from r up front; r may be reused
// by the server once the caller's handler returns.
func NewRecord(r *http.Request, op Operation) Record {
	rec := Record{
		Op:         op.Op,
		Num1:       finite(op.Num1),
		Num2:       finite(op.Num2),
		Result:     finite(op.Result),
		Method:     http.MethodGet,
		Source:     SourcePath,
		Endpoint:   op.Endpoint,
		StatusCode: op.StatusCode,
		Payload:    Payload{Headers: map[string]string{}},
	}
	if rec.StatusCode == 0 {
		rec.StatusCode = defaultStatusCode
	}

	path := "/"
	if r != nil {
		if r.Method != "" {
			rec.Method = r.Method
		}
		if r.URL != nil {
			if r.URL.Path != "" {
				path = r.URL.Path
			}
			if r.URL.RawQuery != "" {
				q := r.URL.RawQuery
				rec.Payload.Query = &q
			}
			if r.URL.RawQuery != "" || r.URL.ForceQuery {
				rec.Source = SourceQuery
			}
		}
		for name, values := range r.Header {
			rec.Payload.Headers[strings.ToLower(name)] = strings.Join(values, ", ")
		}
		if r.Host != "" {
			rec.Payload.Headers["host"] = r.Host
		}
	}
	if rec.Method == http.MethodPost {
		rec.Source = SourceBody
	}
	if rec.Endpoint == "" {
		rec.Endpoint = path
	}

	return rec
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// LogOperation posts the record from a background goroutine and returns
// immediately. Failures are logged and dropped.
func (c *Client) LogOperation(r *http.Request, op Operation) {
	rec := NewRecord(r, op)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				log.WithField("panic", p).Error("opsclient: recovered while sending operation log")
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		if err := c.Send(ctx, rec); err != nil {
			log.WithFields(log.Fields{
				"op":       rec.Op,
				"endpoint": rec.Endpoint,
				"error":    err,
			}).Warn("opsclient: operation log not sent")
		}
	}()
}

// Send posts a single record and waits for the logger's answer.
func (c *Client) Send(ctx context.Context, rec Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("opsclient: encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+logPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("opsclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("opsclient: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// Wait blocks until every in-flight LogOperation post has finished.
func (c *Client) Wait() {
	c.wg.Wait()
}
