package apiserver

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/pkg/errors"

	"github.com/meverselabs/partyround/common"
)

// Argument parses rpc arguments
type Argument struct {
	args []interface{}
}

// NewArgument returns a Argument
func NewArgument(args []interface{}) *Argument {
	return &Argument{
		args: args,
	}
}

// Len returns length of arguments
func (arg *Argument) Len() int {
	return len(arg.args)
}

func (arg *Argument) get(index int) (interface{}, error) {
	if index < 0 || index >= len(arg.args) {
		return nil, errors.WithStack(ErrInvalidArgumentIndex)
	}
	a := arg.args[index]
	if a == nil {
		return nil, errors.WithStack(ErrInvalidArgumentType)
	}
	return a, nil
}

// Int returns a int value of the index
func (arg *Argument) Int(index int) (int, error) {
	a, err := arg.get(index)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(fmt.Sprintf("%v", a), 10, 32)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return int(n), nil
}

// Uint64 returns a uint64 value of the index
func (arg *Argument) Uint64(index int) (uint64, error) {
	a, err := arg.get(index)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(fmt.Sprintf("%v", a), 10, 64)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return n, nil
}

// String returns a string value of the index
func (arg *Argument) String(index int) (string, error) {
	a, err := arg.get(index)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v", a), nil
}

// Address returns an address value of the index
func (arg *Argument) Address(index int) (common.Address, error) {
	s, err := arg.String(index)
	if err != nil {
		return common.ZeroAddr, err
	}
	return common.ParseAddress(s)
}

// Array returns a slice value of the index
func (arg *Argument) Array(index int) ([]interface{}, error) {
	a, err := arg.get(index)
	if err != nil {
		return nil, err
	}
	if reflect.TypeOf(a).Kind() != reflect.Slice {
		return nil, errors.WithStack(ErrInvalidArgumentType)
	}
	s := reflect.ValueOf(a)
	r := make([]interface{}, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		r = append(r, s.Index(i).Interface())
	}
	return r, nil
}

// Strings returns the slice of the index with every entry printed as text
func (arg *Argument) Strings(index int) ([]string, error) {
	if index >= len(arg.args) {
		return []string{}, nil
	}
	ls, err := arg.Array(index)
	if err != nil {
		return nil, err
	}
	strs := make([]string, 0, len(ls))
	for _, v := range ls {
		strs = append(strs, fmt.Sprintf("%v", v))
	}
	return strs, nil
}
