package validators

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jacostamo01/CalculadoraNoviembre01/internal/domain"
)

// Column widths of operations_log.
const (
	MaxOpLen       = 32
	MaxSourceLen   = 32
	MaxEndpointLen = 255
	MaxMethodLen   = 10
)

var (
	ErrInvalidID    = errors.New("id must be an integer")
	ErrFieldTooLong = errors.New("field exceeds column width")
)

// ParseID accepts any base-10 int64. Ids that cannot exist are left for
// the store to answer with a miss.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}

func Validate(l *domain.OperationLog) error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"op", l.Op, MaxOpLen},
		{"source", l.Source, MaxSourceLen},
		{"endpoint", l.Endpoint, MaxEndpointLen},
		{"method", l.Method, MaxMethodLen},
	}
	for _, f := range fields {
		if len([]rune(f.value)) > f.max {
			return fmt.Errorf("%w: %s", ErrFieldTooLong, f.name)
		}
	}

	return nil
}
