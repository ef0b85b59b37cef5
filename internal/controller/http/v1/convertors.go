package httpv1

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/jacostamo01/CalculadoraNoviembre01/internal/domain"
)

func toRow(l domain.OperationLog) operationLogRow {
	return operationLogRow{
		ID:          l.ID,
		Op:          l.Op,
		Num1:        l.Num1,
		Num2:        l.Num2,
		Result:      l.Result,
		Source:      l.Source,
		Endpoint:    l.Endpoint,
		Method:      l.Method,
		StatusCode:  l.StatusCode,
		ClientIP:    l.ClientIP,
		CreatedAt:   l.CreatedAt,
		PayloadJSON: payloadValue(l.PayloadJSON),
	}
}

// payloadValue returns the stored payload as structured JSON. Text that is
// not valid JSON is emitted as a JSON string instead of corrupting the body.
func payloadValue(stored *string) json.RawMessage {
	if stored == nil {
		return nil
	}
	if json.Valid([]byte(*stored)) {
		return json.RawMessage(*stored)
	}
	quoted, _ := json.Marshal(*stored)
	return quoted
}

// clientIP is the peer address of the connection that delivered the log.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
