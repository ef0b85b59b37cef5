package repotypes

// OperationLogFilter selects a page of operations_log ordered by id descending.
type OperationLogFilter struct {
	Op     string
	Limit  uint64
	Offset uint64
}
