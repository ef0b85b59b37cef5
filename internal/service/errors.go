package service

import "fmt"

var (
	ErrOperationLogNotFound     = fmt.Errorf("operation log not found")
	ErrInvalidOperationLog      = fmt.Errorf("invalid operation log")
	ErrCannotCreateOperationLog = fmt.Errorf("cannot create operation log")
	ErrCannotGetOperationLog    = fmt.Errorf("cannot get operation log")
	ErrCannotDeleteOperationLog = fmt.Errorf("cannot delete operation log")
)
