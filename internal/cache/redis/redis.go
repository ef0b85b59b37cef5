package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/jacostamo01/CalculadoraNoviembre01/internal/domain"
	errorsUtils "github.com/jacostamo01/CalculadoraNoviembre01/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "opslog:"
	defaultTTL = 10 * time.Minute

	// tombstone marks a deleted id. Fills use SETNX, so a read that raced
	// a delete cannot bring the row back.
	tombstone = "\x00deleted"
)

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type OperationLogCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func New(ctx context.Context, cfg Config) (*OperationLogCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errorsUtils.WrapPathErr(err)
	}

	return NewWithClient(client, cfg.TTL), nil
}

func NewWithClient(client redis.UniversalClient, ttl time.Duration) *OperationLogCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &OperationLogCache{client: client, ttl: ttl}
}

func Key(id int64) string {
	return keyPrefix + strconv.FormatInt(id, 10)
}

func (c *OperationLogCache) Get(ctx context.Context, id int64) (domain.OperationLog, bool, error) {
	data, err := c.client.Get(ctx, Key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.OperationLog{}, false, nil
		}
		return domain.OperationLog{}, false, errorsUtils.WrapPathErr(err)
	}
	if string(data) == tombstone {
		return domain.OperationLog{}, false, nil
	}

	var logObj domain.OperationLog
	if err := json.Unmarshal(data, &logObj); err != nil {
		return domain.OperationLog{}, false, errorsUtils.WrapPathErr(err)
	}
	return logObj, true, nil
}

func (c *OperationLogCache) Set(ctx context.Context, logObj domain.OperationLog) error {
	data, err := json.Marshal(logObj)
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	// false means the key is taken: already cached, or deleted meanwhile.
	if err := c.client.SetNX(ctx, Key(logObj.ID), data, c.ttl).Err(); err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	return nil
}

func (c *OperationLogCache) Delete(ctx context.Context, id int64) error {
	if err := c.client.Set(ctx, Key(id), tombstone, c.ttl).Err(); err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	return nil
}

func (c *OperationLogCache) Close() error {
	return c.client.Close()
}
