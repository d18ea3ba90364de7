package domain

import "github.com/pkg/errors"

var (
	ErrNoData      = errors.New("no data")
	ErrDuplicate   = errors.New("duplicate")
	ErrInvalidData = errors.New("invalid data")
	ErrExpired     = errors.New("expired")
	ErrNoChange    = errors.New("no change")
)
