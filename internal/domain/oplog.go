package domain

import "time"

const (
	DefaultOp     = "CRUD"
	DefaultSource = "crud"

	DefaultStatusCode = 201
)

// Provenance tags: how the calculator received its operands.
const (
	SourceBody  = "body"
	SourceQuery = "query"
	SourcePath  = "path"
)

// OperationLog is one row of operations_log. Rows are never updated in place.
type OperationLog struct {
	ID          int64     `db:"id" json:"id"`
	Op          string    `db:"op" json:"op"`
	Num1        *float64  `db:"num1" json:"num1"`
	Num2        *float64  `db:"num2" json:"num2"`
	Result      *float64  `db:"result" json:"result"`
	Source      string    `db:"source" json:"source"`
	Endpoint    string    `db:"endpoint" json:"endpoint"`
	Method      string    `db:"method" json:"method"`
	StatusCode  int       `db:"status_code" json:"status_code"`
	ClientIP    *string   `db:"client_ip" json:"client_ip"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	PayloadJSON *string   `db:"payload_json" json:"payload_json"`
}
