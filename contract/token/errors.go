package token

import "github.com/pkg/errors"

// token errors
var (
	ErrNotMinter       = errors.New("not token minter")
	ErrNotMaster       = errors.New("not token master")
	ErrZeroAddress     = errors.New("zero address")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrExceedBalance   = errors.New("transfer exceeds balance")
	ErrExceedAllowance = errors.New("transfer exceeds allowance")
)
