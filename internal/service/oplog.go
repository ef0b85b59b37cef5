package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jacostamo01/CalculadoraNoviembre01/internal/broker"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/cache"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/domain"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/metrics"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/repo"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/repo/repoerrs"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/repo/repotypes"
	errorsUtils "github.com/jacostamo01/CalculadoraNoviembre01/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type OperationLogService struct {
	opLogRepo      repo.OperationLog
	counters       *metrics.Counters
	brokerProducer broker.Producer
	cache          cache.OperationLog
}

func NewOperationLogService(lr repo.OperationLog, cnt *metrics.Counters, p broker.Producer, c cache.OperationLog) *OperationLogService {
	return &OperationLogService{
		opLogRepo:      lr,
		counters:       cnt,
		brokerProducer: p,
		cache:          c,
	}
}

// operationLogCreated is the event published after a successful insert.
type operationLogCreated struct {
	ID         int64     `json:"id"`
	Op         string    `json:"op"`
	Num1       *float64  `json:"num1"`
	Num2       *float64  `json:"num2"`
	Result     *float64  `json:"result"`
	Source     string    `json:"source"`
	Endpoint   string    `json:"endpoint"`
	Method     string    `json:"method"`
	StatusCode int       `json:"status_code"`
	LoggedAt   time.Time `json:"logged_at"`
}

func (s *OperationLogService) Create(ctx context.Context, logObj *domain.OperationLog) (int64, error) {
	id, err := s.opLogRepo.Create(ctx, logObj)
	if err != nil {
		if errors.Is(err, repoerrs.ErrInvalidInput) {
			return 0, errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", ErrInvalidOperationLog, err))
		}
		return 0, errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", ErrCannotCreateOperationLog, err))
	}

	s.counters.LogsReceived.Inc(metrics.OpLabel(logObj.Op))
	s.publishCreated(ctx, id, logObj)

	return id, nil
}

func (s *OperationLogService) publishCreated(ctx context.Context, id int64, logObj *domain.OperationLog) {
	event, err := json.Marshal(operationLogCreated{
		ID:         id,
		Op:         logObj.Op,
		Num1:       logObj.Num1,
		Num2:       logObj.Num2,
		Result:     logObj.Result,
		Source:     logObj.Source,
		Endpoint:   logObj.Endpoint,
		Method:     logObj.Method,
		StatusCode: logObj.StatusCode,
		LoggedAt:   time.Now().UTC(),
	})
	if err != nil {
		log.WithError(err).Warn("Failed to encode operation log event")
		return
	}
	if err := s.brokerProducer.SendMessage(ctx, event); err != nil {
		log.WithFields(log.Fields{"id": id, "error": err}).Warn("Operation log event not published")
	}
}

func (s *OperationLogService) List(ctx context.Context, op string, page domain.Page) ([]domain.OperationLog, error) {
	logs, err := s.opLogRepo.List(ctx, repotypes.OperationLogFilter{
		Op:     op,
		Limit:  uint64(page.Limit),
		Offset: uint64(page.Offset()),
	})
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	if logs == nil {
		logs = []domain.OperationLog{}
	}
	return logs, nil
}

func (s *OperationLogService) GetByID(ctx context.Context, id int64) (domain.OperationLog, error) {
	cached, ok, err := s.cache.Get(ctx, id)
	if err != nil {
		log.WithFields(log.Fields{"id": id, "error": err}).Warn("Operation log cache read failed")
	}
	if ok {
		return cached, nil
	}

	logObj, err := s.opLogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return domain.OperationLog{}, ErrOperationLogNotFound
		}
		return domain.OperationLog{}, errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", ErrCannotGetOperationLog, err))
	}

	if err := s.cache.Set(ctx, logObj); err != nil {
		log.WithFields(log.Fields{"id": id, "error": err}).Warn("Operation log cache write failed")
	}

	return logObj, nil
}

func (s *OperationLogService) Delete(ctx context.Context, id int64) error {
	affected, err := s.opLogRepo.Delete(ctx, id)
	if err != nil {
		return errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", ErrCannotDeleteOperationLog, err))
	}

	if err := s.cache.Delete(ctx, id); err != nil {
		log.WithFields(log.Fields{"id": id, "error": err}).Warn("Operation log cache invalidation failed")
	}

	if affected == 0 {
		return ErrOperationLogNotFound
	}
	return nil
}

func (s *OperationLogService) Ping(ctx context.Context) error {
	return s.opLogRepo.Ping(ctx)
}
