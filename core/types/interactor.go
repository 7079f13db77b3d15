package types

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/common/hash"
	"github.com/pkg/errors"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

type interactor struct {
	ctx    *Context
	conMap map[common.Address]Contract
}

// NewInteractor returns the dispatcher that serves ContractContext.Exec
func NewInteractor(ctx *Context) *interactor {
	return &interactor{
		ctx:    ctx,
		conMap: map[common.Address]Contract{},
	}
}

// ExecFrom calls the method as a top-level call signed by from
func ExecFrom(ctx *Context, from common.Address, ContAddr common.Address, MethodName string, Args []interface{}) ([]interface{}, error) {
	i := NewInteractor(ctx)
	cc := &ContractContext{
		cont: from,
		from: from,
		ctx:  ctx,
		Exec: i.Exec,
	}
	return i.Exec(cc, ContAddr, MethodName, Args)
}

// Exec calls the method of the contract with the caller bound to the calling context
func (i *interactor) Exec(Cc *ContractContext, ContAddr common.Address, MethodName string, Args []interface{}) ([]interface{}, error) {
	if MethodName == "" {
		return nil, errors.WithStack(ErrInvalidMethod)
	}
	cont, err := i.getContract(ContAddr)
	if err != nil {
		return nil, err
	}
	MethodName = strings.ToUpper(MethodName[:1]) + MethodName[1:]
	ecc := &ContractContext{
		cont: ContAddr,
		from: Cc.cont,
		ctx:  i.ctx,
		Exec: i.Exec,
	}
	return _exec(ecc, cont, MethodName, Args)
}

func (i *interactor) getContract(Addr common.Address) (Contract, error) {
	if cont, ok := i.conMap[Addr]; ok {
		return cont, nil
	}
	cont, err := i.ctx.Contract(Addr)
	if err != nil {
		return nil, err
	}
	i.conMap[Addr] = cont
	return cont, nil
}

func _exec(ecc *ContractContext, cont Contract, MethodName string, Args []interface{}) (result []interface{}, err error) {
	ContAddr := cont.Address()
	rMethod, err := contractMethod(cont.Front(), ContAddr, MethodName)
	if err != nil {
		return nil, err
	}
	in, err := ContractInputsConv(Args, rMethod)
	if err != nil {
		return nil, err
	}
	in = append([]reflect.Value{reflect.ValueOf(ecc)}, in...)

	sn := ecc.ctx.Snapshot()
	vs, err := func() (vs []reflect.Value, err error) {
		defer func() {
			if v := recover(); v != nil {
				err = errors.Wrapf(ErrContractPanic, "method(%v) of contract(%v): %v", MethodName, ContAddr.String(), v)
			}
		}()
		return rMethod.Call(in), nil
	}()
	if err != nil {
		ecc.ctx.Revert(sn)
		return nil, err
	}
	result, err = getResults(rMethod.Type(), vs)
	if err != nil {
		ecc.ctx.Revert(sn)
		return nil, err
	}
	ecc.ctx.Commit(sn)
	return result, nil
}

func contractMethod(cont interface{}, addr common.Address, MethodName string) (reflect.Value, error) {
	vo := reflect.ValueOf(cont)
	if !vo.IsValid() || (vo.Kind() == reflect.Ptr && vo.IsNil()) {
		return reflect.Value{}, errors.WithStack(ErrNotExistContract)
	}
	method := vo.MethodByName(MethodName)
	if !method.IsValid() {
		return reflect.Value{}, errors.Wrapf(ErrMethodNotExist, "%v of %v", MethodName, addr.String())
	}
	mt := method.Type()
	if mt.NumIn() < 1 || mt.In(0) != reflect.TypeOf(&ContractContext{}) {
		return reflect.Value{}, errors.Wrapf(ErrMethodNotExist, "%v of %v", MethodName, addr.String())
	}
	return method, nil
}

func getResults(mType reflect.Type, vs []reflect.Value) (result []interface{}, err error) {
	result = []interface{}{}
	for i, v := range vs {
		if mType.Out(i).Kind() == reflect.Interface && mType.Out(i).Implements(errType) {
			if _err, ok := v.Interface().(error); ok && _err != nil {
				err = _err
			}
			continue
		}
		result = append(result, v.Interface())
	}
	return
}

var (
	addressType   = reflect.TypeOf(common.Address{})
	addressesType = reflect.TypeOf([]common.Address{})
	hashType      = reflect.TypeOf(hash.Hash256{})
)

// ContractInputsConv converts the arguments to the parameter types of the method.
// Strings are parsed into the target type so transactions can carry text arguments.
func ContractInputsConv(Args []interface{}, rMethod reflect.Value) ([]reflect.Value, error) {
	mt := rMethod.Type()
	if mt.NumIn() != len(Args)+1 {
		return nil, errors.Wrapf(ErrInvalidArgumentCount, "got %v want %v", len(Args), mt.NumIn()-1)
	}
	in := make([]reflect.Value, len(Args))
	for i, v := range Args {
		pType := mt.In(i + 1)
		param, err := convertArg(v, pType)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %v", i)
		}
		in[i] = param
	}
	return in, nil
}

func convertArg(v interface{}, pType reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(pType), nil
	}
	param := reflect.ValueOf(v)
	if param.Type() == pType {
		return param, nil
	}
	switch pv := v.(type) {
	case string:
		return parseArg(pv, pType)
	case []interface{}:
		if pType == addressesType {
			as := make([]common.Address, 0, len(pv))
			for _, t := range pv {
				addr, err := convertArg(t, addressType)
				if err != nil {
					return reflect.Value{}, err
				}
				as = append(as, addr.Interface().(common.Address))
			}
			return reflect.ValueOf(as), nil
		}
	case []string:
		if pType == addressesType {
			as := make([]common.Address, 0, len(pv))
			for _, t := range pv {
				addr, err := common.ParseAddress(t)
				if err != nil {
					return reflect.Value{}, err
				}
				as = append(as, addr)
			}
			return reflect.ValueOf(as), nil
		}
	}
	if isInteger(param.Kind()) && isInteger(pType.Kind()) {
		return convertInteger(param, pType)
	}
	return reflect.Value{}, errors.Wrapf(ErrInvalidArgument, "get %v want %v", param.Type(), pType)
}

func parseArg(s string, pType reflect.Type) (reflect.Value, error) {
	switch pType {
	case addressType:
		addr, err := common.ParseAddress(s)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(addr), nil
	case hashType:
		return reflect.ValueOf(hash.HexToHash(s)), nil
	case addressesType:
		as := []common.Address{}
		if len(s) > 0 {
			for _, t := range strings.Split(s, ",") {
				addr, err := common.ParseAddress(strings.TrimSpace(t))
				if err != nil {
					return reflect.Value{}, err
				}
				as = append(as, addr)
			}
		}
		return reflect.ValueOf(as), nil
	}
	switch pType.Kind() {
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return reflect.Value{}, errors.Wrap(ErrInvalidArgument, err.Error())
		}
		return reflect.ValueOf(b).Convert(pType), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, pType.Bits())
		if err != nil {
			return reflect.Value{}, errors.Wrap(ErrInvalidArgument, err.Error())
		}
		return reflect.ValueOf(n).Convert(pType), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, pType.Bits())
		if err != nil {
			return reflect.Value{}, errors.Wrap(ErrInvalidArgument, err.Error())
		}
		return reflect.ValueOf(n).Convert(pType), nil
	case reflect.String:
		return reflect.ValueOf(s).Convert(pType), nil
	}
	return reflect.Value{}, errors.Wrapf(ErrInvalidArgument, "cannot parse %q as %v", s, pType)
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isSigned(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

// convertInteger converts between integer kinds and rejects values that do not fit
func convertInteger(param reflect.Value, pType reflect.Type) (reflect.Value, error) {
	if isSigned(param.Kind()) {
		n := param.Int()
		if isSigned(pType.Kind()) {
			if reflect.Zero(pType).OverflowInt(n) {
				return reflect.Value{}, errors.Wrapf(ErrInvalidArgument, "%v overflows %v", n, pType)
			}
			return reflect.ValueOf(n).Convert(pType), nil
		}
		if n < 0 || reflect.Zero(pType).OverflowUint(uint64(n)) {
			return reflect.Value{}, errors.Wrapf(ErrInvalidArgument, "%v overflows %v", n, pType)
		}
		return reflect.ValueOf(uint64(n)).Convert(pType), nil
	}
	n := param.Uint()
	if isSigned(pType.Kind()) {
		if n > 1<<63-1 || reflect.Zero(pType).OverflowInt(int64(n)) {
			return reflect.Value{}, errors.Wrapf(ErrInvalidArgument, "%v overflows %v", n, pType)
		}
		return reflect.ValueOf(int64(n)).Convert(pType), nil
	}
	if reflect.Zero(pType).OverflowUint(n) {
		return reflect.Value{}, errors.Wrapf(ErrInvalidArgument, "%v overflows %v", n, pType)
	}
	return reflect.ValueOf(n).Convert(pType), nil
}

// FormatResult renders a call result for text transports
func FormatResult(v interface{}) string {
	switch rv := v.(type) {
	case common.Address:
		return rv.String()
	case fmt.Stringer:
		return rv.String()
	}
	return fmt.Sprintf("%v", v)
}
