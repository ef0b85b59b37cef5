package cache

import (
	"context"

	"github.com/jacostamo01/CalculadoraNoviembre01/internal/domain"
)

// OperationLog is a read-through cache for single rows. Rows are immutable,
// so the only invalidation needed is on delete. Delete must win over a
// later Set for the same id: Set never replaces a deleted entry.
type OperationLog interface {
	Get(ctx context.Context, id int64) (domain.OperationLog, bool, error)
	Set(ctx context.Context, logObj domain.OperationLog) error
	Delete(ctx context.Context, id int64) error
	Close() error
}

type Nop struct{}

func (Nop) Get(context.Context, int64) (domain.OperationLog, bool, error) {
	return domain.OperationLog{}, false, nil
}

func (Nop) Set(context.Context, domain.OperationLog) error { return nil }

func (Nop) Delete(context.Context, int64) error { return nil }

func (Nop) Close() error { return nil }
