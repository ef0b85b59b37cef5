package service

import (
	"context"

	"github.com/jacostamo01/CalculadoraNoviembre01/internal/broker"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/cache"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/domain"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/metrics"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/repo"
)

type OperationLog interface {
	Create(ctx context.Context, logObj *domain.OperationLog) (int64, error)
	List(ctx context.Context, op string, page domain.Page) ([]domain.OperationLog, error)
	GetByID(ctx context.Context, id int64) (domain.OperationLog, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

type Services struct {
	OperationLog
}

type ServicesDependencies struct {
	Repos          *repo.Repositories
	Counters       *metrics.Counters
	BrokerProducer broker.Producer
	Cache          cache.OperationLog
}

func NewServices(deps ServicesDependencies) *Services {
	if deps.BrokerProducer == nil {
		deps.BrokerProducer = broker.NopProducer{}
	}
	if deps.Cache == nil {
		deps.Cache = cache.Nop{}
	}
	return &Services{
		OperationLog: NewOperationLogService(deps.Repos.OperationLog, deps.Counters, deps.BrokerProducer, deps.Cache),
	}
}
