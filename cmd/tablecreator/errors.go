package main

import "errors"

// Sentinel errors
var (
	ErrOperationFailed = errors.New("operation failed, see log for details")
	ErrTableNotFound   = errors.New("table not found")
)
