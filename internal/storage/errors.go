package storage

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrDuplicate  = errors.New("duplicate entry")
	ErrForeignKey = errors.New("referenced row does not exist")
)
