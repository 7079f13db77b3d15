package viewchain

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/core/chain"
	"github.com/meverselabs/partyround/core/types"
)

// ViewCaller runs contract methods against the committed state without persisting them
type ViewCaller struct {
	cn *chain.Chain
}

func NewViewCaller(cn *chain.Chain) *ViewCaller {
	return &ViewCaller{
		cn: cn,
	}
}

// Execute calls the method of the contract as from and formats the results
func (m *ViewCaller) Execute(addr common.Address, from common.Address, method string, inputs []interface{}) ([]interface{}, error) {
	if len(method) < 1 {
		return nil, errors.New("invalid method name")
	}
	if !m.cn.Store().IsContract(addr) {
		return nil, errors.WithStack(chain.ErrNotExistContract)
	}
	args := make([]interface{}, 0, len(inputs))
	for _, v := range inputs {
		if v == nil {
			return nil, errors.New("nil params")
		}
		args = append(args, normalizeParam(v))
	}
	is, err := m.cn.Call(from, addr, method, args)
	if err != nil {
		return nil, err
	}
	result := make([]interface{}, 0, len(is))
	for _, v := range is {
		result = append(result, formatValue(v))
	}
	return result, nil
}

// MultiExecute runs several calls, stopping at the first failure
func (m *ViewCaller) MultiExecute(addr []common.Address, from common.Address, methods []string, inputss [][]interface{}) ([][]interface{}, error) {
	if len(addr) != len(inputss) || len(methods) != len(inputss) {
		return nil, errors.New("not match params count")
	}
	result := make([][]interface{}, len(methods))
	for i, method := range methods {
		r, err := m.Execute(addr[i], from, method, inputss[i])
		if err != nil {
			return nil, err
		}
		result[i] = r
	}
	return result, nil
}

// normalizeParam turns decoded json values into the text form the dispatcher parses
func normalizeParam(v interface{}) interface{} {
	switch pv := v.(type) {
	case string:
		return pv
	case json.Number:
		return pv.String()
	case []interface{}:
		ls := make([]interface{}, 0, len(pv))
		for _, t := range pv {
			ls = append(ls, normalizeParam(t))
		}
		return ls
	}
	return fmt.Sprintf("%v", v)
}

func formatValue(v interface{}) interface{} {
	switch rv := v.(type) {
	case bool, string:
		return rv
	case []common.Address:
		ls := make([]string, 0, len(rv))
		for _, a := range rv {
			ls = append(ls, a.String())
		}
		return ls
	}
	return types.FormatResult(v)
}
