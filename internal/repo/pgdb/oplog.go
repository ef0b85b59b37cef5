package pgdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jacostamo01/CalculadoraNoviembre01/internal/domain"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/repo/repoerrs"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/repo/repotypes"
	errorsUtils "github.com/jacostamo01/CalculadoraNoviembre01/pkg/errors"
	"github.com/jacostamo01/CalculadoraNoviembre01/pkg/postgres"
	"github.com/jackc/pgx/v5"
)

type OperationLogRepo struct {
	*postgres.Postgres
}

func NewOperationLogRepo(pg *postgres.Postgres) *OperationLogRepo {
	return &OperationLogRepo{pg}
}

func (r *OperationLogRepo) Create(ctx context.Context, logObj *domain.OperationLog) (int64, error) {
	sql, args, err := BuildInsertQuery(r.Builder, logObj).ToSql()
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}

	var id int64
	err = r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if errorsUtils.IsInvalidInput(err) {
			return 0, errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", repoerrs.ErrInvalidInput, err))
		}
		return 0, errorsUtils.WrapPathErr(err)
	}
	return id, nil
}

func (r *OperationLogRepo) List(ctx context.Context, filter repotypes.OperationLogFilter) ([]domain.OperationLog, error) {
	sql, args, err := BuildListQuery(r.Builder, filter).ToSql()
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	defer rows.Close()

	logs, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.OperationLog])
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return logs, nil
}

func (r *OperationLogRepo) GetByID(ctx context.Context, id int64) (domain.OperationLog, error) {
	sql, args, err := BuildGetByIDQuery(r.Builder, id).ToSql()
	if err != nil {
		return domain.OperationLog{}, errorsUtils.WrapPathErr(err)
	}

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
	if err != nil {
		return domain.OperationLog{}, errorsUtils.WrapPathErr(err)
	}

	logObj, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.OperationLog])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.OperationLog{}, repoerrs.ErrNotFound
		}
		return domain.OperationLog{}, errorsUtils.WrapPathErr(err)
	}

	return logObj, nil
}

func (r *OperationLogRepo) Delete(ctx context.Context, id int64) (int64, error) {
	sql, args, err := BuildDeleteQuery(r.Builder, id).ToSql()
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}

	tag, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Exec(ctx, sql, args...)
	if err != nil {
		return 0, errorsUtils.WrapPathErr(err)
	}

	return tag.RowsAffected(), nil
}

func (r *OperationLogRepo) Ping(ctx context.Context) error {
	if err := r.Pool.Ping(ctx); err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	return nil
}
