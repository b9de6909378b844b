package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("conflict")

	ErrDuplicateMatch = errors.New("a match between these players is already scheduled")
	ErrDivisionFull   = errors.New("division is full")
)
