package httpv1

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jacostamo01/CalculadoraNoviembre01/internal/domain"
)

var (
	ErrNotAnObject  = errors.New("body must be a JSON object")
	ErrNotANumber   = errors.New("value is not a finite number")
	ErrInvalidCode  = errors.New("status_code must be an integer")
	errEmptyPayload = errors.New("empty payload")
)

// Number accepts a JSON number or a string holding one.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		var s string
		if json.Unmarshal(b, &s) != nil {
			return ErrNotANumber
		}
		f, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return ErrNotANumber
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ErrNotANumber
	}
	*n = Number(f)
	return nil
}

func (n *Number) float() *float64 {
	if n == nil {
		return nil
	}
	f := float64(*n)
	return &f
}

type CreateOperationLogRequest struct {
	Op         *string         `json:"op"`
	Num1       *Number         `json:"num1"`
	Num2       *Number         `json:"num2"`
	Result     *Number         `json:"result"`
	Source     *string         `json:"source"`
	Endpoint   *string         `json:"endpoint"`
	Method     *string         `json:"method"`
	StatusCode *Number         `json:"status_code"`
	Payload    json.RawMessage `json:"payload"`
}

// DecodeCreateRequest parses a create body. Blank input decodes as {}.
func DecodeCreateRequest(body []byte) (*CreateOperationLogRequest, error) {
	body = bytes.TrimSpace(body)
	req := &CreateOperationLogRequest{}
	if len(body) == 0 {
		return req, nil
	}
	if body[0] != '{' {
		return nil, ErrNotAnObject
	}
	if err := json.Unmarshal(body, req); err != nil {
		return nil, err
	}
	return req, nil
}

// ToDomain fills every default in one place. reqPath and reqMethod belong
// to the request carrying the body, not the operation being logged.
func (r *CreateOperationLogRequest) ToDomain(reqPath, reqMethod, clientIP string) (*domain.OperationLog, error) {
	logObj := &domain.OperationLog{
		Op:         orDefault(r.Op, domain.DefaultOp),
		Num1:       r.Num1.float(),
		Num2:       r.Num2.float(),
		Result:     r.Result.float(),
		Source:     orDefault(r.Source, domain.DefaultSource),
		Endpoint:   orDefault(r.Endpoint, reqPath),
		Method:     orDefault(r.Method, reqMethod),
		StatusCode: domain.DefaultStatusCode,
	}

	if r.StatusCode != nil {
		code := float64(*r.StatusCode)
		if code != math.Trunc(code) || code < math.MinInt32 || code > math.MaxInt32 {
			return nil, ErrInvalidCode
		}
		logObj.StatusCode = int(code)
	}

	if clientIP != "" {
		logObj.ClientIP = &clientIP
	}

	payload, err := compactPayload(r.Payload)
	switch {
	case errors.Is(err, errEmptyPayload):
	case err != nil:
		return nil, fmt.Errorf("payload: %w", err)
	default:
		logObj.PayloadJSON = &payload
	}

	return logObj, nil
}

func orDefault(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}

// compactPayload drops falsy payloads (null, false, 0, "") and serializes
// everything else without insignificant whitespace.
func compactPayload(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", errEmptyPayload
	}
	switch string(raw) {
	case "null", "false", `""`:
		return "", errEmptyPayload
	}
	if c := raw[0]; c == '-' || (c >= '0' && c <= '9') {
		if f, err := strconv.ParseFloat(string(raw), 64); err == nil && f == 0 {
			return "", errEmptyPayload
		}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", err
	}
	return buf.String(), nil
}
