package types

import "errors"

// context errors
var (
	ErrInvalidClassID       = errors.New("invalid class id")
	ErrExistContractType    = errors.New("exist contract type")
	ErrNotExistContract     = errors.New("not exist contract")
	ErrExistContract        = errors.New("exist contract")
	ErrMethodNotExist       = errors.New("method not exist")
	ErrInvalidMethod        = errors.New("invalid method")
	ErrInvalidArgumentCount = errors.New("invalid argument count")
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrInvalidSequence      = errors.New("invalid sequence")
	ErrContractPanic        = errors.New("contract panic")
	ErrTooManyEventAttrs    = errors.New("too many event attributes")
)
