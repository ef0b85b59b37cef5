package repo

import (
	"context"

	"github.com/jacostamo01/CalculadoraNoviembre01/internal/domain"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/repo/pgdb"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/repo/repotypes"
	"github.com/jacostamo01/CalculadoraNoviembre01/pkg/postgres"
)

type OperationLog interface {
	Create(ctx context.Context, logObj *domain.OperationLog) (int64, error)
	List(ctx context.Context, filter repotypes.OperationLogFilter) ([]domain.OperationLog, error)
	GetByID(ctx context.Context, id int64) (domain.OperationLog, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Ping(ctx context.Context) error
}

type Repositories struct {
	OperationLog
}

func NewRepositories(pg *postgres.Postgres) *Repositories {
	return &Repositories{
		OperationLog: pgdb.NewOperationLogRepo(pg),
	}
}
