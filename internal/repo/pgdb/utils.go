package pgdb

import (
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/domain"
	"github.com/jacostamo01/CalculadoraNoviembre01/internal/repo/repotypes"
	sq "github.com/Masterminds/squirrel"
)

const operationsLogTable = "operations_log"

var (
	// Order matters: values in BuildInsertQuery follow it.
	insertColumns = []string{
		"op", "num1", "num2", "result", "source", "endpoint",
		"method", "status_code", "client_ip", "payload_json",
	}

	selectColumns = []string{
		"id", "op", "num1", "num2", "result", "source", "endpoint",
		"method", "status_code", "client_ip", "created_at", "payload_json",
	}
)

func BuildInsertQuery(b sq.StatementBuilderType, logObj *domain.OperationLog) sq.InsertBuilder {
	return b.
		Insert(operationsLogTable).
		Columns(insertColumns...).
		Values(
			logObj.Op,
			logObj.Num1,
			logObj.Num2,
			logObj.Result,
			logObj.Source,
			logObj.Endpoint,
			logObj.Method,
			logObj.StatusCode,
			logObj.ClientIP,
			logObj.PayloadJSON,
		).
		Suffix("RETURNING id")
}

func BuildListQuery(b sq.StatementBuilderType, filter repotypes.OperationLogFilter) sq.SelectBuilder {
	query := b.
		Select(selectColumns...).
		From(operationsLogTable)

	if filter.Op != "" {
		query = query.Where(sq.Eq{"op": filter.Op})
	}

	limit := uint64(domain.DefaultLimit)
	if filter.Limit > 0 {
		limit = filter.Limit
	}

	return query.
		OrderBy("id DESC").
		Limit(limit).
		Offset(filter.Offset)
}

func BuildGetByIDQuery(b sq.StatementBuilderType, id int64) sq.SelectBuilder {
	return b.
		Select(selectColumns...).
		From(operationsLogTable).
		Where(sq.Eq{"id": id}).
		Limit(1)
}

func BuildDeleteQuery(b sq.StatementBuilderType, id int64) sq.DeleteBuilder {
	return b.
		Delete(operationsLogTable).
		Where(sq.Eq{"id": id})
}
