package viewchain

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/meverselabs/partyround/common"
	"github.com/meverselabs/partyround/core/chain"
	"github.com/meverselabs/partyround/core/types"
	"github.com/meverselabs/partyround/service/apiserver"
)

// ClientVersion is reported by view.version
const ClientVersion = "1.0.0"

const maxEventPage = 100

type viewchain struct {
	api    *apiserver.APIServer
	cn     *chain.Chain
	caller *ViewCaller
}

// NewViewchain registers the view methods of the chain on the apiserver
func NewViewchain(api *apiserver.APIServer, cn *chain.Chain) error {
	v := &viewchain{
		api:    api,
		cn:     cn,
		caller: NewViewCaller(cn),
	}

	s, err := v.api.JRPC("view")
	if err != nil {
		return err
	}

	s.Set("version", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		return GetVersion(), nil
	})
	s.Set("seq", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		addr, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		return "0x" + strconv.FormatUint(v.cn.Seq(addr), 16), nil
	})
	s.Set("isContract", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		cont, err := arg.Address(0)
		if err != nil {
			return nil, errors.Wrap(err, "need contract address")
		}
		return v.cn.Store().IsContract(cont), nil
	})
	s.Set("stateHash", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		return v.cn.Store().StateHash().String(), nil
	})
	s.Set("eventCount", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		return v.cn.Store().EventCount(), nil
	})
	s.Set("events", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		offset, err := arg.Uint64(0)
		if err != nil {
			return nil, err
		}
		limit := maxEventPage
		if arg.Len() > 1 {
			if limit, err = arg.Int(1); err != nil {
				return nil, err
			}
			if limit <= 0 || limit > maxEventPage {
				limit = maxEventPage
			}
		}
		return v.cn.Store().Events(offset, limit)
	})
	s.Set("call", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		cont, err := arg.Address(0)
		if err != nil {
			return nil, errors.Wrap(err, "need contract address")
		}
		method, err := arg.String(1)
		if err != nil {
			return nil, errors.New("method not allow")
		}
		param := []interface{}{}
		if arg.Len() > 2 {
			if param, err = arg.Array(2); err != nil {
				return nil, errors.New("parameter not allow")
			}
		}
		from := common.ZeroAddr
		if arg.Len() > 3 {
			if from, err = arg.Address(3); err != nil {
				return nil, err
			}
		}
		return v.caller.Execute(cont, from, method, param)
	})
	s.Set("multiCall", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		cont, err := arg.Address(0)
		if err != nil {
			return nil, errors.Wrap(err, "need contract address")
		}
		methods, err := arg.Strings(1)
		if err != nil {
			return nil, errors.New("method not allow")
		}
		params, err := arg.Array(2)
		if err != nil {
			return nil, errors.New("parameter not allow")
		}
		addrs := make([]common.Address, len(params))
		paramss := make([][]interface{}, len(params))
		for i, p := range params {
			addrs[i] = cont
			if ps, ok := p.([]interface{}); ok {
				paramss[i] = ps
			} else {
				paramss[i] = []interface{}{}
			}
		}
		return v.caller.MultiExecute(addrs, common.ZeroAddr, methods, paramss)
	})
	s.Set("sendTx", func(ID interface{}, arg *apiserver.Argument) (interface{}, error) {
		to, err := arg.Address(0)
		if err != nil {
			return nil, err
		}
		method, err := arg.String(1)
		if err != nil {
			return nil, err
		}
		args, err := arg.Strings(2)
		if err != nil {
			return nil, err
		}
		seq, err := arg.Uint64(3)
		if err != nil {
			return nil, err
		}
		ssig, err := arg.String(4)
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(ssig, "0x") {
			ssig = "0x" + ssig
		}
		bs, err := hexutil.Decode(ssig)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		stx := &types.SignedTransaction{
			Transaction: &types.Transaction{
				Seq:    seq,
				To:     to,
				Method: method,
				Args:   args,
			},
			Signature: common.Signature(bs),
		}
		return v.cn.Execute(stx)
	})
	return nil
}

func GetVersion() string {
	sb := strings.Builder{}
	sb.WriteString("PartyRound/")
	sb.WriteString(ClientVersion)
	sb.WriteString("/")
	sb.WriteString(runtime.GOOS)
	sb.WriteString("-")
	sb.WriteString(runtime.GOARCH)
	sb.WriteString("/")
	sb.WriteString(runtime.Version())
	return sb.String()
}
