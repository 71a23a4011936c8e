package helper

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidPoints       = errors.New("invalid points")
	ErrTransactionFailure  = errors.New("transaction failure")
)
