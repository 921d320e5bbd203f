package repository

import "errors"

var (
	// ErrNotFound is returned by writes that target a row that does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects an insert.
	ErrDuplicate = errors.New("record already exists")
)
