package validators_test

import (
	"strings"
	"testing"

	"github.com/jacostamo01/CalculadoraNoviembre01/internal/controller/http/validators"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	tcs := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "1", want: 1},
		{raw: "42", want: 42},
		{raw: "0", want: 0},
		{raw: "-3", want: -3},
		{raw: " 3", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "1.5", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "99999999999999999999", wantErr: true},
	}

	for _, tc := range tcs {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := validators.ParseID(tc.raw)
			if tc.wantErr {
				assert.ErrorIs(t, err, validators.ErrInvalidID)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *domain.OperationLog {
		return &domain.OperationLog{
			Op:         domain.DefaultOp,
			Source:     domain.DefaultSource,
			Endpoint:   "/sumar",
			Method:     "POST",
			StatusCode: domain.DefaultStatusCode,
		}
	}

	tcs := []struct {
		name    string
		modify  func(l *domain.OperationLog)
		wantErr error
	}{
		{
			name:   "defaults",
			modify: func(l *domain.OperationLog) {},
		},
		{
			name:   "op at width",
			modify: func(l *domain.OperationLog) { l.Op = strings.Repeat("a", validators.MaxOpLen) },
		},
		{
			name:    "op too long",
			modify:  func(l *domain.OperationLog) { l.Op = strings.Repeat("a", validators.MaxOpLen+1) },
			wantErr: validators.ErrFieldTooLong,
		},
		{
			name:    "endpoint too long",
			modify:  func(l *domain.OperationLog) { l.Endpoint = "/" + strings.Repeat("x", validators.MaxEndpointLen) },
			wantErr: validators.ErrFieldTooLong,
		},
		{
			name:    "method too long",
			modify:  func(l *domain.OperationLog) { l.Method = "PROPPATCHXX" },
			wantErr: validators.ErrFieldTooLong,
		},
		{
			name:   "multibyte counted by rune",
			modify: func(l *domain.OperationLog) { l.Source = strings.Repeat("ñ", validators.MaxSourceLen) },
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			l := valid()
			tc.modify(l)
			err := validators.Validate(l)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
