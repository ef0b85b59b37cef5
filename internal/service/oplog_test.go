package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/jacostamo01/CalculadoraNoviembre01/internal/cache"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/domain"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/metrics"
	broker_mock "github.com/jacostamo01/CalculadoraNoviembre01/internal/mocks/broker"
	cache_mock "github.com/jacostamo01/CalculadoraNoviembre01/internal/mocks/cache"
	repository_mock "github.com/jacostamo01/CalculadoraNoviembre01/internal/mocks/repository"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/repo/repoerrs"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/repo/repotypes"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type mocks struct {
	repo     *repository_mock.MockOperationLog
	producer *broker_mock.MockProducer
	cache    *cache_mock.MockOperationLog
}

func newService(t *testing.T) (*service.OperationLogService, mocks) {
	ctrl := gomock.NewController(t)

	m := mocks{
		repo:     repository_mock.NewMockOperationLog(ctrl),
		producer: broker_mock.NewMockProducer(ctrl),
		cache:    cache_mock.NewMockOperationLog(ctrl),
	}
	svc := service.NewOperationLogService(m.repo, metrics.NewTestCounters(), m.producer, m.cache)
	return svc, m
}

func float(v float64) *float64 { return &v }

// memoryCache follows the cache.OperationLog contract: Set never replaces a
// present or deleted entry.
type memoryCache struct {
	mu      sync.Mutex
	rows    map[int64]domain.OperationLog
	deleted map[int64]bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{rows: map[int64]domain.OperationLog{}, deleted: map[int64]bool{}}
}

func (c *memoryCache) Get(_ context.Context, id int64) (domain.OperationLog, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	row, ok := c.rows[id]
	return row, ok, nil
}

func (c *memoryCache) Set(_ context.Context, logObj domain.OperationLog) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.rows[logObj.ID]; ok || c.deleted[logObj.ID] {
		return nil
	}
	c.rows[logObj.ID] = logObj
	return nil
}

func (c *memoryCache) Delete(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rows, id)
	c.deleted[id] = true
	return nil
}

func (c *memoryCache) Close() error { return nil }

type opRecorder struct {
	labels []string
}

func (r *opRecorder) Inc(labels ...string) {
	r.labels = append(r.labels, labels...)
}

func TestOperationLogService_Create(t *testing.T) {
	ctx := context.Background()
	logObj := &domain.OperationLog{
		Op:         "SUMA",
		Num1:       float(2),
		Num2:       float(3),
		Result:     float(5),
		Source:     domain.SourceBody,
		Endpoint:   "/sumar",
		Method:     "POST",
		StatusCode: 200,
	}

	type mockBehavior func(m mocks)

	tcs := []struct {
		name         string
		mockBehavior mockBehavior
		wantID       int64
		wantErr      error
	}{
		{
			name: "success publishes event",
			mockBehavior: func(m mocks) {
				m.repo.EXPECT().Create(ctx, logObj).Return(int64(42), nil)
				m.producer.EXPECT().
					SendMessage(ctx, gomock.Any()).
					DoAndReturn(func(_ context.Context, value []byte) error {
						var event map[string]any
						assert.NoError(t, json.Unmarshal(value, &event))
						assert.Equal(t, float64(42), event["id"])
						assert.Equal(t, "SUMA", event["op"])
						assert.Equal(t, float64(5), event["result"])
						return nil
					})
			},
			wantID: 42,
		},
		{
			name: "publish failure does not fail the insert",
			mockBehavior: func(m mocks) {
				m.repo.EXPECT().Create(ctx, logObj).Return(int64(43), nil)
				m.producer.EXPECT().SendMessage(ctx, gomock.Any()).Return(errors.New("broker down"))
			},
			wantID: 43,
		},
		{
			name: "repository error",
			mockBehavior: func(m mocks) {
				m.repo.EXPECT().Create(ctx, logObj).Return(int64(0), errors.New("db error"))
			},
			wantErr: service.ErrCannotCreateOperationLog,
		},
		{
			name: "rejected values",
			mockBehavior: func(m mocks) {
				m.repo.EXPECT().Create(ctx, logObj).Return(int64(0), repoerrs.ErrInvalidInput)
			},
			wantErr: service.ErrInvalidOperationLog,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			svc, m := newService(t)
			tc.mockBehavior(m)

			gotID, err := svc.Create(ctx, logObj)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.wantID, gotID)
		})
	}
}

func TestOperationLogService_CreateBoundsOpLabel(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := repository_mock.NewMockOperationLog(ctrl)
	producer := broker_mock.NewMockProducer(ctrl)
	received := &opRecorder{}
	counters := &metrics.Counters{LogsReceived: received, HTTPRequests: &opRecorder{}}
	svc := service.NewOperationLogService(repo, counters, producer, cache.Nop{})

	repo.EXPECT().Create(ctx, gomock.Any()).Return(int64(1), nil).Times(3)
	producer.EXPECT().SendMessage(ctx, gomock.Any()).Return(nil).Times(3)

	for _, op := range []string{"DIV", "x-4f1c9e", "CRUD"} {
		_, err := svc.Create(ctx, &domain.OperationLog{Op: op})
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"DIV", metrics.OtherOp, "CRUD"}, received.labels)
}

func TestOperationLogService_List(t *testing.T) {
	ctx := context.Background()

	tcs := []struct {
		name       string
		op         string
		page       domain.Page
		wantFilter repotypes.OperationLogFilter
		repoLogs   []domain.OperationLog
		repoErr    error
		wantLen    int
		wantErr    bool
	}{
		{
			name:       "first page with filter",
			op:         "SUMA",
			page:       domain.NewPage(1, 1),
			wantFilter: repotypes.OperationLogFilter{Op: "SUMA", Limit: 1, Offset: 0},
			repoLogs:   []domain.OperationLog{{ID: 9, Op: "SUMA"}},
			wantLen:    1,
		},
		{
			name:       "offset from page",
			page:       domain.NewPage(3, 20),
			wantFilter: repotypes.OperationLogFilter{Limit: 20, Offset: 40},
			repoLogs:   nil,
			wantLen:    0,
		},
		{
			name:       "repository error",
			page:       domain.NewPage(1, 20),
			wantFilter: repotypes.OperationLogFilter{Limit: 20},
			repoErr:    errors.New("db error"),
			wantErr:    true,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			svc, m := newService(t)
			m.repo.EXPECT().List(ctx, tc.wantFilter).Return(tc.repoLogs, tc.repoErr)

			got, err := svc.List(ctx, tc.op, tc.page)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Len(t, got, tc.wantLen)
		})
	}
}

func TestOperationLogService_GetByID(t *testing.T) {
	ctx := context.Background()
	stored := domain.OperationLog{ID: 7, Op: "MULT", Source: domain.SourcePath}

	type mockBehavior func(m mocks)

	tcs := []struct {
		name         string
		mockBehavior mockBehavior
		want         domain.OperationLog
		wantErr      error
	}{
		{
			name: "cache hit skips the store",
			mockBehavior: func(m mocks) {
				m.cache.EXPECT().Get(ctx, int64(7)).Return(stored, true, nil)
			},
			want: stored,
		},
		{
			name: "cache miss loads and fills",
			mockBehavior: func(m mocks) {
				m.cache.EXPECT().Get(ctx, int64(7)).Return(domain.OperationLog{}, false, nil)
				m.repo.EXPECT().GetByID(ctx, int64(7)).Return(stored, nil)
				m.cache.EXPECT().Set(ctx, stored).Return(nil)
			},
			want: stored,
		},
		{
			name: "cache failure falls back to the store",
			mockBehavior: func(m mocks) {
				m.cache.EXPECT().Get(ctx, int64(7)).Return(domain.OperationLog{}, false, errors.New("redis down"))
				m.repo.EXPECT().GetByID(ctx, int64(7)).Return(stored, nil)
				m.cache.EXPECT().Set(ctx, stored).Return(errors.New("redis down"))
			},
			want: stored,
		},
		{
			name: "not found",
			mockBehavior: func(m mocks) {
				m.cache.EXPECT().Get(ctx, int64(7)).Return(domain.OperationLog{}, false, nil)
				m.repo.EXPECT().GetByID(ctx, int64(7)).Return(domain.OperationLog{}, repoerrs.ErrNotFound)
			},
			wantErr: service.ErrOperationLogNotFound,
		},
		{
			name: "store failure",
			mockBehavior: func(m mocks) {
				m.cache.EXPECT().Get(ctx, int64(7)).Return(domain.OperationLog{}, false, nil)
				m.repo.EXPECT().GetByID(ctx, int64(7)).Return(domain.OperationLog{}, errors.New("db error"))
			},
			wantErr: service.ErrCannotGetOperationLog,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			svc, m := newService(t)
			tc.mockBehavior(m)

			got, err := svc.GetByID(ctx, 7)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestOperationLogService_Delete(t *testing.T) {
	ctx := context.Background()

	type mockBehavior func(m mocks)

	tcs := []struct {
		name         string
		mockBehavior mockBehavior
		wantErr      error
	}{
		{
			name: "deleted",
			mockBehavior: func(m mocks) {
				m.repo.EXPECT().Delete(ctx, int64(5)).Return(int64(1), nil)
				m.cache.EXPECT().Delete(ctx, int64(5)).Return(nil)
			},
		},
		{
			name: "nothing deleted is not found",
			mockBehavior: func(m mocks) {
				m.repo.EXPECT().Delete(ctx, int64(5)).Return(int64(0), nil)
				m.cache.EXPECT().Delete(ctx, int64(5)).Return(nil)
			},
			wantErr: service.ErrOperationLogNotFound,
		},
		{
			name: "store failure",
			mockBehavior: func(m mocks) {
				m.repo.EXPECT().Delete(ctx, int64(5)).Return(int64(0), errors.New("db error"))
			},
			wantErr: service.ErrCannotDeleteOperationLog,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			svc, m := newService(t)
			tc.mockBehavior(m)

			err := svc.Delete(ctx, 5)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestOperationLogService_Ping(t *testing.T) {
	svc, m := newService(t)
	ctx := context.Background()

	m.repo.EXPECT().Ping(ctx).Return(errors.New("unreachable"))

	assert.Error(t, svc.Ping(ctx))
}

func TestOperationLogService_GetDeleteGet(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := repository_mock.NewMockOperationLog(ctrl)
	svc := service.NewOperationLogService(repo, metrics.NewTestCounters(), broker_mock.NewMockProducer(ctrl), newMemoryCache())

	stored := domain.OperationLog{ID: 7, Op: "MULT", Source: domain.SourcePath}

	gomock.InOrder(
		repo.EXPECT().GetByID(ctx, int64(7)).Return(stored, nil),
		repo.EXPECT().Delete(ctx, int64(7)).Return(int64(1), nil),
		repo.EXPECT().GetByID(ctx, int64(7)).Return(domain.OperationLog{}, repoerrs.ErrNotFound),
	)

	got, err := svc.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	got, err = svc.GetByID(ctx, 7)
	require.NoError(t, err, "second read is served from the cache")
	assert.Equal(t, stored, got)

	require.NoError(t, svc.Delete(ctx, 7))

	_, err = svc.GetByID(ctx, 7)
	assert.ErrorIs(t, err, service.ErrOperationLogNotFound)
}

func TestOperationLogService_DeleteDuringRead(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := repository_mock.NewMockOperationLog(ctrl)
	svc := service.NewOperationLogService(repo, metrics.NewTestCounters(), broker_mock.NewMockProducer(ctrl), newMemoryCache())

	stored := domain.OperationLog{ID: 7, Op: "MULT", Source: domain.SourcePath}
	reading := make(chan struct{})
	proceed := make(chan struct{})

	gomock.InOrder(
		repo.EXPECT().GetByID(ctx, int64(7)).DoAndReturn(func(context.Context, int64) (domain.OperationLog, error) {
			close(reading)
			<-proceed
			return stored, nil
		}),
		repo.EXPECT().GetByID(ctx, int64(7)).Return(domain.OperationLog{}, repoerrs.ErrNotFound),
	)
	repo.EXPECT().Delete(ctx, int64(7)).Return(int64(1), nil)

	type result struct {
		row domain.OperationLog
		err error
	}
	first := make(chan result, 1)
	go func() {
		row, err := svc.GetByID(ctx, 7)
		first <- result{row: row, err: err}
	}()

	// The reader has the row from the store but has not filled the cache yet.
	<-reading
	require.NoError(t, svc.Delete(ctx, 7))
	close(proceed)

	res := <-first
	require.NoError(t, res.err)
	assert.Equal(t, stored, res.row)

	_, err := svc.GetByID(ctx, 7)
	assert.ErrorIs(t, err, service.ErrOperationLogNotFound)
}
